package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"scoai/resume-screener/internal/models"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	FindAll() ([]models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Delete(id uuid.UUID) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create implements ProjectRepository.
func (p *projectRepository) Create(project *models.Project) error {
	if err := p.db.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// FindAll implements ProjectRepository.
func (p *projectRepository) FindAll() ([]models.Project, error) {
	var projects []models.Project
	if err := p.db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}

// FindByID implements ProjectRepository.
func (p *projectRepository) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := p.db.Where("id = ?", id).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("project not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return &project, nil
}

// Delete implements ProjectRepository.
func (p *projectRepository) Delete(id uuid.UUID) error {
	result := p.db.Where("id = ?", id).Delete(&models.Project{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete project: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("project not found")
	}

	return nil
}
