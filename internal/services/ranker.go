package services

import (
	"context"
	"fmt"

	"scoai/resume-screener/internal/models"
)

// RecommendationItem is one ranked candidate as returned by the AI. The
// candidate is identified by name string, not by id; reconciliation back to a
// stored resume happens in the recommender.
type RecommendationItem struct {
	Name           string   `json:"name"`
	Score          *float64 `json:"score"`
	Reason         string   `json:"reason"`
	MatchingPoints []string `json:"matching_points"`
	Concerns       []string `json:"concerns"`
}

type RecommendationResult struct {
	Recommendations []RecommendationItem `json:"recommendations"`
	Summary         string               `json:"summary"`
}

// CandidateRanker ranks a shortlist against a free-text requirement.
type CandidateRanker interface {
	RankCandidates(ctx context.Context, candidates []models.Resume, requirements string) (*RecommendationResult, error)
}

type geminiRanker struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewCandidateRanker(gemini GeminiService, maxRetries int) CandidateRanker {
	return &geminiRanker{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// RankCandidates implements CandidateRanker. A response that fails validation
// fails the whole run; there is no partial acceptance of a malformed ranking.
func (r *geminiRanker) RankCandidates(ctx context.Context, candidates []models.Resume, requirements string) (*RecommendationResult, error) {
	prompt := r.promptBuilder.BuildRecommendationPrompt(candidates, requirements)

	response, err := r.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, r.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendations: %w", err)
	}

	result, err := parseRecommendationResponse(response)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func parseRecommendationResponse(response string) (*RecommendationResult, error) {
	var result RecommendationResult
	if err := parseJSONResponse(response, &result); err != nil {
		return nil, fmt.Errorf("failed to parse recommendation response: %w", err)
	}

	if result.Recommendations == nil {
		return nil, fmt.Errorf("invalid recommendation response: missing recommendations list")
	}
	if result.Summary == "" {
		return nil, fmt.Errorf("invalid recommendation response: missing summary")
	}

	for i, rec := range result.Recommendations {
		if rec.Name == "" {
			return nil, fmt.Errorf("invalid recommendation response: item %d missing name", i+1)
		}
		if rec.Score == nil {
			return nil, fmt.Errorf("invalid recommendation response: item %d missing score", i+1)
		}
		if rec.Reason == "" {
			return nil, fmt.Errorf("invalid recommendation response: item %d missing reason", i+1)
		}
		if rec.MatchingPoints == nil {
			return nil, fmt.Errorf("invalid recommendation response: item %d missing matching_points", i+1)
		}
		if rec.Concerns == nil {
			return nil, fmt.Errorf("invalid recommendation response: item %d missing concerns", i+1)
		}
	}

	return &result, nil
}
