package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"scoai/resume-screener/internal/models"
)

type ResumeRepository interface {
	Create(resume *models.Resume) error
	FindByID(id uuid.UUID) (*models.Resume, error)
	FindByIDs(ids []uuid.UUID) ([]models.Resume, error)
	FindByProject(projectID uuid.UUID) ([]models.Resume, error)
	FindCandidates(projectID uuid.UUID) ([]models.Resume, error)
	FindSelected(projectID uuid.UUID) ([]models.Resume, error)
	UpdateAnalysis(id uuid.UUID, data *AnalysisUpdateData) error
	MarkSelected(ids []uuid.UUID, note string, selectedAt time.Time) error
	ClearSelected(id uuid.UUID) error
	UpdateNote(id uuid.UUID, note string) error
	Delete(id uuid.UUID) error
	DeleteByProject(projectID uuid.UUID) error
}

// AnalysisUpdateData carries one analysis result. Score is always written;
// the summary fields are written only when non-nil, so fields that were not
// requested for this run keep their previous value.
type AnalysisUpdateData struct {
	Score      float64
	Skills     *string
	Experience *string
	Education  *string
	Projects   *string
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// Create implements ResumeRepository.
func (r *resumeRepository) Create(resume *models.Resume) error {
	if err := r.db.Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	return nil
}

// FindByID implements ResumeRepository.
func (r *resumeRepository) FindByID(id uuid.UUID) (*models.Resume, error) {
	var resume models.Resume
	if err := r.db.Where("id = ?", id).First(&resume).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("resume not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}

// FindByIDs implements ResumeRepository.
func (r *resumeRepository) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := r.db.Where("id IN ?", ids).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to find resumes: %w", err)
	}

	return resumes, nil
}

// FindByProject implements ResumeRepository.
func (r *resumeRepository) FindByProject(projectID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	return resumes, nil
}

// FindCandidates implements ResumeRepository.
func (r *resumeRepository) FindCandidates(projectID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("project_id = ? AND iscandidate = ?", projectID, true).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analyzed resumes: %w", err)
	}

	return resumes, nil
}

// FindSelected implements ResumeRepository.
func (r *resumeRepository) FindSelected(projectID uuid.UUID) ([]models.Resume, error) {
	var resumes []models.Resume
	err := r.db.
		Where("project_id = ? AND is_selected = ?", projectID, true).
		Order("selected_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list selected resumes: %w", err)
	}

	return resumes, nil
}

// UpdateAnalysis implements ResumeRepository.
func (r *resumeRepository) UpdateAnalysis(id uuid.UUID, data *AnalysisUpdateData) error {
	updates := map[string]interface{}{
		"iscandidate": true,
		"score":       data.Score,
		"analyzed_at": time.Now(),
		"updated_at":  time.Now(),
	}

	if data.Skills != nil {
		updates["resume_tech_skills"] = *data.Skills
	}
	if data.Experience != nil {
		updates["resume_experience"] = *data.Experience
	}
	if data.Education != nil {
		updates["resume_education"] = *data.Education
	}
	if data.Projects != nil {
		updates["resume_projects"] = *data.Projects
	}

	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update analysis: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found")
	}

	return nil
}

// MarkSelected implements ResumeRepository. All ids are updated in a single
// statement so a shortlist add is all-or-nothing.
func (r *resumeRepository) MarkSelected(ids []uuid.UUID, note string, selectedAt time.Time) error {
	result := r.db.Model(&models.Resume{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"is_selected":   true,
			"selected_at":   selectedAt,
			"selected_note": note,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark selected: %w", result.Error)
	}

	if result.RowsAffected != int64(len(ids)) {
		return fmt.Errorf("expected to select %d resumes, selected %d", len(ids), result.RowsAffected)
	}

	return nil
}

// ClearSelected implements ResumeRepository. The flag, timestamp and note are
// cleared in one statement so no record is ever left half-unselected.
func (r *resumeRepository) ClearSelected(id uuid.UUID) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_selected":   false,
			"selected_at":   nil,
			"selected_note": nil,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to clear selection: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found")
	}

	return nil
}

// UpdateNote implements ResumeRepository.
func (r *resumeRepository) UpdateNote(id uuid.UUID, note string) error {
	result := r.db.Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"selected_note": note,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update note: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found")
	}

	return nil
}

// Delete implements ResumeRepository.
func (r *resumeRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Resume{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("resume not found")
	}

	return nil
}

// DeleteByProject implements ResumeRepository.
func (r *resumeRepository) DeleteByProject(projectID uuid.UUID) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&models.Resume{}).Error; err != nil {
		return fmt.Errorf("failed to delete project resumes: %w", err)
	}

	return nil
}
