package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"scoai/resume-screener/internal/models"
)

type RecommendationRepository interface {
	Create(run *models.RecommendationRun) error
	FindByProject(projectID uuid.UUID) ([]models.RecommendationRun, error)
	DeleteByProject(projectID uuid.UUID) error
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{db: db}
}

// Create implements RecommendationRepository. Runs are insert-only; there is
// deliberately no update method.
func (r *recommendationRepository) Create(run *models.RecommendationRun) error {
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to save recommendation run: %w", err)
	}

	return nil
}

// FindByProject implements RecommendationRepository.
func (r *recommendationRepository) FindByProject(projectID uuid.UUID) ([]models.RecommendationRun, error) {
	var runs []models.RecommendationRun
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation runs: %w", err)
	}

	return runs, nil
}

// DeleteByProject implements RecommendationRepository.
func (r *recommendationRepository) DeleteByProject(projectID uuid.UUID) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&models.RecommendationRun{}).Error; err != nil {
		return fmt.Errorf("failed to delete project recommendations: %w", err)
	}

	return nil
}
