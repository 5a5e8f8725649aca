package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/repositories"
)

// ProgressFunc receives the running count of resumes processed so far,
// success or failure. Fire-and-forget, no backpressure.
type ProgressFunc func(processed int)

type BatchFailure struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Reason string    `json:"reason"`
}

type BatchResult struct {
	Succeeded []models.Resume `json:"succeeded"`
	Failed    []BatchFailure  `json:"failed"`
}

// AnalyzerService scores a batch of resumes against a criteria set. Resumes
// are processed strictly one at a time: the external service is rate limited
// and a sequential loop keeps the progress counter monotonic. One failing
// resume never aborts the rest of the batch. Ids owned by another project
// are reported as not found.
type AnalyzerService interface {
	AnalyzeBatch(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, criteria Criteria, onProgress ProgressFunc) (*BatchResult, error)
}

type analyzerService struct {
	resumeRepo repositories.ResumeRepository
	scorer     ResumeScorer
}

func NewAnalyzerService(resumeRepo repositories.ResumeRepository, scorer ResumeScorer) AnalyzerService {
	return &analyzerService{
		resumeRepo: resumeRepo,
		scorer:     scorer,
	}
}

// AnalyzeBatch implements AnalyzerService. Re-running analysis on an already
// analyzed resume overwrites its previous result. Cancellation via ctx stops
// the loop before the next resume starts; the in-flight call is never
// interrupted and the partial result is returned alongside ctx.Err().
func (a *analyzerService) AnalyzeBatch(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID, criteria Criteria, onProgress ProgressFunc) (*BatchResult, error) {
	resumes, err := a.resumeRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load resumes: %w", err)
	}

	byID := make(map[uuid.UUID]*models.Resume, len(resumes))
	for i := range resumes {
		if resumes[i].ProjectID != projectID {
			continue
		}
		byID[resumes[i].ID] = &resumes[i]
	}

	result := &BatchResult{}
	processed := 0

	notify := func() {
		processed++
		if onProgress != nil {
			onProgress(processed)
		}
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("batch cancelled: %w", err)
		}

		resume, ok := byID[id]
		if !ok {
			result.Failed = append(result.Failed, BatchFailure{ID: id, Reason: "resume not found"})
			notify()
			continue
		}

		if strings.TrimSpace(resume.ResumeText) == "" {
			result.Failed = append(result.Failed, BatchFailure{
				ID:     id,
				Name:   resume.ResumeName,
				Reason: ErrMissingText.Error(),
			})
			notify()
			continue
		}

		analysis, err := a.scorer.ScoreResume(ctx, resume.ResumeText, criteria)
		if err != nil {
			log.Printf("❌ Analysis failed for %s: %v\n", resume.ResumeName, err)
			result.Failed = append(result.Failed, BatchFailure{
				ID:     id,
				Name:   resume.ResumeName,
				Reason: err.Error(),
			})
			notify()
			continue
		}

		if err := a.storeAnalysis(resume, analysis, criteria.Options); err != nil {
			result.Failed = append(result.Failed, BatchFailure{
				ID:     id,
				Name:   resume.ResumeName,
				Reason: err.Error(),
			})
			notify()
			continue
		}

		result.Succeeded = append(result.Succeeded, *resume)
		notify()
	}

	return result, nil
}

// storeAnalysis persists the result and mirrors it onto the in-memory record.
// Only the fields selected in the analysis options are written; a field that
// was not requested keeps whatever value it had before.
func (a *analyzerService) storeAnalysis(resume *models.Resume, analysis *ResumeAnalysis, options AnalysisOptions) error {
	data := &repositories.AnalysisUpdateData{
		Score: *analysis.Score,
	}

	if options.Skills {
		skills := strings.Join(analysis.Skills, ", ")
		data.Skills = &skills
	}
	if options.Experience {
		experience := analysis.Experience
		data.Experience = &experience
	}
	if options.Education {
		education := analysis.Education
		data.Education = &education
	}
	if options.Projects {
		projects := analysis.Projects
		data.Projects = &projects
	}

	if err := a.resumeRepo.UpdateAnalysis(resume.ID, data); err != nil {
		return err
	}

	now := time.Now()
	resume.IsCandidate = true
	resume.Score = analysis.Score
	resume.AnalyzedAt = &now
	resume.UpdatedAt = now
	if data.Skills != nil {
		resume.ResumeTechSkills = data.Skills
	}
	if data.Experience != nil {
		resume.ResumeExperience = data.Experience
	}
	if data.Education != nil {
		resume.ResumeEducation = data.Education
	}
	if data.Projects != nil {
		resume.ResumeProjects = data.Projects
	}

	return nil
}
