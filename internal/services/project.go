package services

import (
	"context"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/repositories"
)

// ProjectService owns the project lifecycle. Deleting a project cascades to
// everything it isolates: stored resume files, vector index entries,
// recommendation runs and resume rows, in that order, before the project row
// itself goes.
type ProjectService interface {
	Create(ctx context.Context, name, description string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	resumeRepo  repositories.ResumeRepository
	recRepo     repositories.RecommendationRepository
	storage     StorageService
	search      SearchService
}

func NewProjectService(
	projectRepo repositories.ProjectRepository,
	resumeRepo repositories.ResumeRepository,
	recRepo repositories.RecommendationRepository,
	storage StorageService,
	search SearchService,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		resumeRepo:  resumeRepo,
		recRepo:     recRepo,
		storage:     storage,
		search:      search,
	}
}

// Create implements ProjectService.
func (p *projectService) Create(ctx context.Context, name, description string) (*models.Project, error) {
	project := &models.Project{
		ID:          uuid.New(),
		ProjectName: name,
		Description: description,
		Status:      models.ProjectActive,
	}

	if err := p.projectRepo.Create(project); err != nil {
		return nil, err
	}

	return project, nil
}

// List implements ProjectService.
func (p *projectService) List(ctx context.Context) ([]models.Project, error) {
	return p.projectRepo.FindAll()
}

// Get implements ProjectService.
func (p *projectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return p.projectRepo.FindByID(id)
}

// Delete implements ProjectService.
func (p *projectService) Delete(ctx context.Context, id uuid.UUID) error {
	resumes, err := p.resumeRepo.FindByProject(id)
	if err != nil {
		return err
	}

	for _, resume := range resumes {
		if resume.FilePath == "" {
			continue
		}
		stored := filepath.Base(resume.FilePath)
		if err := p.storage.DeleteFile(stored); err != nil {
			// The row is authoritative; a missing file should not block the cascade
			log.Printf("⚠️ Failed to delete stored file %s: %v\n", stored, err)
		}
	}

	if err := p.search.RemoveProject(ctx, id); err != nil {
		log.Printf("⚠️ Failed to clear vector index for project %s: %v\n", id, err)
	}

	if err := p.recRepo.DeleteByProject(id); err != nil {
		return err
	}

	if err := p.resumeRepo.DeleteByProject(id); err != nil {
		return err
	}

	return p.projectRepo.Delete(id)
}
