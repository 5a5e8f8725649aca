package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/repositories"
)

// fakeResumeRepo is an in-memory ResumeRepository for service tests.
type fakeResumeRepo struct {
	resumes map[uuid.UUID]*models.Resume
	order   []uuid.UUID

	failUpdateFor map[uuid.UUID]bool
}

func newFakeResumeRepo(resumes ...*models.Resume) *fakeResumeRepo {
	repo := &fakeResumeRepo{
		resumes:       make(map[uuid.UUID]*models.Resume),
		failUpdateFor: make(map[uuid.UUID]bool),
	}
	for _, r := range resumes {
		repo.resumes[r.ID] = r
		repo.order = append(repo.order, r.ID)
	}
	return repo
}

func (f *fakeResumeRepo) Create(resume *models.Resume) error {
	f.resumes[resume.ID] = resume
	f.order = append(f.order, resume.ID)
	return nil
}

func (f *fakeResumeRepo) FindByID(id uuid.UUID) (*models.Resume, error) {
	resume, ok := f.resumes[id]
	if !ok {
		return nil, fmt.Errorf("resume not found")
	}
	copied := *resume
	return &copied, nil
}

func (f *fakeResumeRepo) FindByIDs(ids []uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, id := range f.order {
		r, ok := f.resumes[id]
		if !ok {
			continue
		}
		for _, want := range ids {
			if id == want {
				out = append(out, *r)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) FindByProject(projectID uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, id := range f.order {
		r, ok := f.resumes[id]
		if ok && r.ProjectID == projectID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) FindCandidates(projectID uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, id := range f.order {
		r, ok := f.resumes[id]
		if !ok {
			continue
		}
		if r.ProjectID == projectID && r.IsCandidate {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResumeRepo) FindSelected(projectID uuid.UUID) ([]models.Resume, error) {
	var out []models.Resume
	for _, id := range f.order {
		r, ok := f.resumes[id]
		if !ok {
			continue
		}
		if r.ProjectID == projectID && r.IsSelected {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		var ti, tj int64
		if out[i].SelectedAt != nil {
			ti = out[i].SelectedAt.UnixNano()
		}
		if out[j].SelectedAt != nil {
			tj = out[j].SelectedAt.UnixNano()
		}
		return ti > tj
	})
	return out, nil
}

func (f *fakeResumeRepo) UpdateAnalysis(id uuid.UUID, data *repositories.AnalysisUpdateData) error {
	resume, ok := f.resumes[id]
	if !ok {
		return fmt.Errorf("resume not found")
	}
	if f.failUpdateFor[id] {
		return fmt.Errorf("update failed")
	}

	now := time.Now()
	resume.IsCandidate = true
	score := data.Score
	resume.Score = &score
	resume.AnalyzedAt = &now
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

func (f *fakeResumeRepo) MarkSelected(ids []uuid.UUID, note string, selectedAt time.Time) error {
	for _, id := range ids {
		resume, ok := f.resumes[id]
		if !ok {
			return fmt.Errorf("resume not found")
		}
		resume.IsSelected = true
		at := selectedAt
		resume.SelectedAt = &at
		noteCopy := note
		resume.SelectedNote = &noteCopy
	}
	return nil
}

func (f *fakeResumeRepo) ClearSelected(id uuid.UUID) error {
	resume, ok := f.resumes[id]
	if !ok {
		return fmt.Errorf("resume not found")
	}
	resume.IsSelected = false
	resume.SelectedAt = nil
	resume.SelectedNote = nil
	return nil
}

func (f *fakeResumeRepo) UpdateNote(id uuid.UUID, note string) error {
	resume, ok := f.resumes[id]
	if !ok {
		return fmt.Errorf("resume not found")
	}
	resume.SelectedNote = &note
	return nil
}

func (f *fakeResumeRepo) Delete(id uuid.UUID) error {
	delete(f.resumes, id)
	return nil
}

func (f *fakeResumeRepo) DeleteByProject(projectID uuid.UUID) error {
	for id, r := range f.resumes {
		if r.ProjectID == projectID {
			delete(f.resumes, id)
		}
	}
	return nil
}

// fakeRecommendationRepo records created runs in memory.
type fakeRecommendationRepo struct {
	runs      []models.RecommendationRun
	createErr error
}

func (f *fakeRecommendationRepo) Create(run *models.RecommendationRun) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.runs = append(f.runs, *run)
	return nil
}

func (f *fakeRecommendationRepo) FindByProject(projectID uuid.UUID) ([]models.RecommendationRun, error) {
	var out []models.RecommendationRun
	for _, run := range f.runs {
		if run.ProjectID == projectID {
			out = append(out, run)
		}
	}
	return out, nil
}

func (f *fakeRecommendationRepo) DeleteByProject(projectID uuid.UUID) error {
	var kept []models.RecommendationRun
	for _, run := range f.runs {
		if run.ProjectID != projectID {
			kept = append(kept, run)
		}
	}
	f.runs = kept
	return nil
}

// stubScorer scores with a fixed analysis, or errors for chosen texts.
type stubScorer struct {
	analysis *ResumeAnalysis
	failFor  map[string]error
	calls    int
}

func (s *stubScorer) ScoreResume(_ context.Context, resumeText string, _ Criteria) (*ResumeAnalysis, error) {
	s.calls++
	if err, ok := s.failFor[resumeText]; ok {
		return nil, err
	}
	copied := *s.analysis
	return &copied, nil
}

// stubRanker returns a canned ranking result.
type stubRanker struct {
	result     *RecommendationResult
	err        error
	candidates []models.Resume
}

func (s *stubRanker) RankCandidates(_ context.Context, candidates []models.Resume, _ string) (*RecommendationResult, error) {
	s.candidates = candidates
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// stubGemini serves canned text generations.
type stubGemini struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGemini) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return s.GenerateText(ctx, prompt, temperature)
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }
