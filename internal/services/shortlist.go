package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/repositories"
)

// ShortlistService maintains the manually promoted subset of a project's
// resumes. Adding is all-or-nothing: if any requested resume is already on
// the shortlist the whole operation is rejected and the conflicting names
// are reported back. Every call is scoped to one project; resumes owned by
// other projects are treated as not found.
type ShortlistService interface {
	Add(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, note string) ([]models.Resume, error)
	Remove(ctx context.Context, id uuid.UUID) error
	UpdateNote(ctx context.Context, id uuid.UUID, note string) error
	Selected(ctx context.Context, projectID uuid.UUID) ([]models.Resume, error)
}

type shortlistService struct {
	resumeRepo repositories.ResumeRepository
}

func NewShortlistService(resumeRepo repositories.ResumeRepository) ShortlistService {
	return &shortlistService{resumeRepo: resumeRepo}
}

// Add implements ShortlistService.
func (s *shortlistService) Add(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, note string) ([]models.Resume, error) {
	ids = dedupeIDs(ids)

	resumes, err := s.resumeRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load resumes: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Resume, len(resumes))
	for i := range resumes {
		byID[resumes[i].ID] = &resumes[i]
	}

	var conflicts []string
	for _, id := range ids {
		resume, ok := byID[id]
		if !ok || resume.ProjectID != projectID {
			return nil, fmt.Errorf("resume %s not found", id)
		}
		if resume.IsSelected {
			name := resume.DisplayName
			if name == "" {
				name = resume.ResumeName
			}
			conflicts = append(conflicts, name)
		}
	}

	if len(conflicts) > 0 {
		return nil, &ShortlistConflictError{Names: conflicts}
	}

	now := time.Now()
	if err := s.resumeRepo.MarkSelected(ids, note, now); err != nil {
		return nil, err
	}

	added := make([]models.Resume, 0, len(ids))
	for _, id := range ids {
		resume := byID[id]
		resume.IsSelected = true
		resume.SelectedAt = &now
		noteCopy := note
		resume.SelectedNote = &noteCopy
		resume.UpdatedAt = now
		added = append(added, *resume)
	}

	return added, nil
}

// Remove implements ShortlistService. The flag, timestamp and note go
// together; a resume is never left unselected with a stale timestamp.
func (s *shortlistService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.resumeRepo.ClearSelected(id)
}

// UpdateNote implements ShortlistService. Allowed only while the resume is
// shortlisted; the selection timestamp is not touched.
func (s *shortlistService) UpdateNote(ctx context.Context, id uuid.UUID, note string) error {
	resume, err := s.resumeRepo.FindByID(id)
	if err != nil {
		return err
	}

	if !resume.IsSelected {
		return ErrNotShortlisted
	}

	return s.resumeRepo.UpdateNote(id, note)
}

// Selected implements ShortlistService.
func (s *shortlistService) Selected(ctx context.Context, projectID uuid.UUID) ([]models.Resume, error) {
	return s.resumeRepo.FindSelected(projectID)
}

// dedupeIDs drops repeated ids, keeping first occurrence order. A repeated
// id would otherwise make the single UPDATE's affected-row count fall short
// of len(ids) after the rows were already written.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
