package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/repositories"
)

// RankedCandidate is one AI recommendation joined back to a stored resume.
// When reconciliation misses, Matched is false and the item is still shown
// under its raw name; it just cannot be joined to stored fields.
type RankedCandidate struct {
	Name           string         `json:"name"`
	ResumeID       *uuid.UUID     `json:"resume_id,omitempty"`
	Resume         *models.Resume `json:"resume,omitempty"`
	Matched        bool           `json:"matched"`
	RelevanceScore float64        `json:"relevance_score"`
	Reason         string         `json:"reason"`
	MatchingPoints []string       `json:"matching_points"`
	Concerns       []string       `json:"concerns"`
}

// RecommendationView is the result of one ranking run: the explainable
// per-candidate items plus the full shortlist reordered recommended-first.
type RecommendationView struct {
	RunID           uuid.UUID         `json:"run_id"`
	Requirements    string            `json:"requirements"`
	Recommendations []RankedCandidate `json:"recommendations"`
	Shortlist       []models.Resume   `json:"shortlist"`
	Summary         string            `json:"summary"`
	CreatedAt       time.Time         `json:"created_at"`
}

type RecommenderService interface {
	Recommend(ctx context.Context, projectID uuid.UUID, requirements string) (*RecommendationView, error)
	History(ctx context.Context, projectID uuid.UUID) ([]models.RecommendationRun, error)
}

type recommenderService struct {
	resumeRepo repositories.ResumeRepository
	recRepo    repositories.RecommendationRepository
	ranker     CandidateRanker
}

func NewRecommenderService(
	resumeRepo repositories.ResumeRepository,
	recRepo repositories.RecommendationRepository,
	ranker CandidateRanker,
) RecommenderService {
	return &recommenderService{
		resumeRepo: resumeRepo,
		recRepo:    recRepo,
		ranker:     ranker,
	}
}

// Recommend implements RecommenderService. The run is persisted before the
// view is returned; a malformed ranking response fails the run and persists
// nothing.
func (r *recommenderService) Recommend(ctx context.Context, projectID uuid.UUID, requirements string) (*RecommendationView, error) {
	shortlist, err := r.resumeRepo.FindSelected(projectID)
	if err != nil {
		return nil, err
	}
	if len(shortlist) == 0 {
		return nil, ErrEmptyShortlist
	}

	result, err := r.ranker.RankCandidates(ctx, shortlist, requirements)
	if err != nil {
		return nil, err
	}

	ranked := make([]RankedCandidate, 0, len(result.Recommendations))
	recommendedIDs := make(map[uuid.UUID]float64)

	for _, item := range result.Recommendations {
		candidate := RankedCandidate{
			Name:           item.Name,
			RelevanceScore: *item.Score,
			Reason:         item.Reason,
			MatchingPoints: item.MatchingPoints,
			Concerns:       item.Concerns,
		}

		resume, err := Reconcile(item.Name, shortlist)
		if err != nil {
			if !errors.Is(err, ErrCandidateNotFound) {
				return nil, err
			}
			log.Printf("⚠️ Recommended candidate %q not found in shortlist\n", item.Name)
		} else {
			candidate.Matched = true
			candidate.ResumeID = &resume.ID
			candidate.Resume = resume
			if _, seen := recommendedIDs[resume.ID]; !seen {
				recommendedIDs[resume.ID] = *item.Score
			}
		}

		ranked = append(ranked, candidate)
	}

	run := &models.RecommendationRun{
		ID:           uuid.New(),
		ProjectID:    projectID,
		Requirements: requirements,
		Summary:      result.Summary,
		CreatedAt:    time.Now(),
	}

	raw, err := json.Marshal(result.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommendations: %w", err)
	}
	run.Recommendations = string(raw)

	if err := r.recRepo.Create(run); err != nil {
		return nil, err
	}

	return &RecommendationView{
		RunID:           run.ID,
		Requirements:    requirements,
		Recommendations: ranked,
		Shortlist:       orderShortlist(shortlist, recommendedIDs),
		Summary:         result.Summary,
		CreatedAt:       run.CreatedAt,
	}, nil
}

// History implements RecommenderService.
func (r *recommenderService) History(ctx context.Context, projectID uuid.UUID) ([]models.RecommendationRun, error) {
	return r.recRepo.FindByProject(projectID)
}

// orderShortlist reorders the full shortlist: resumes with a matching
// recommendation first, sorted by relevance score descending; the rest keep
// their original relative order.
func orderShortlist(shortlist []models.Resume, recommendedIDs map[uuid.UUID]float64) []models.Resume {
	ordered := make([]models.Resume, len(shortlist))
	copy(ordered, shortlist)

	sort.SliceStable(ordered, func(i, j int) bool {
		scoreI, recI := recommendedIDs[ordered[i].ID]
		scoreJ, recJ := recommendedIDs[ordered[j].ID]

		if recI != recJ {
			return recI
		}
		if recI && recJ {
			return scoreI > scoreJ
		}
		return false
	})

	return ordered
}
