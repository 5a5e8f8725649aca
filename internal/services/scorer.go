package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Criteria drives what the scorer computes for each resume: the three term
// lists plus the field-selection options.
type Criteria struct {
	Mandatory []string
	Optional  []string
	Excluded  []string
	Options   AnalysisOptions
}

type AnalysisOptions struct {
	Skills     bool
	Experience bool
	Education  bool
	Projects   bool
}

// ResumeAnalysis is one validated scorer response.
type ResumeAnalysis struct {
	Score             *float64 `json:"score"`
	Skills            []string `json:"skills"`
	Experience        string   `json:"experience"`
	Education         string   `json:"education"`
	Projects          string   `json:"projects"`
	MeetsRequirements bool     `json:"meetsRequirements"`
	MatchedOptional   []string `json:"matchedOptional"`
	HasExclusions     bool     `json:"hasExclusions"`
	Evaluation        string   `json:"evaluation"`
}

// ResumeScorer scores one resume text against a criteria set.
type ResumeScorer interface {
	ScoreResume(ctx context.Context, resumeText string, criteria Criteria) (*ResumeAnalysis, error)
}

type geminiScorer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewResumeScorer(gemini GeminiService, maxRetries int) ResumeScorer {
	return &geminiScorer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// ScoreResume implements ResumeScorer. The raw model output is parsed and
// validated here; any contract violation comes back as an error so the batch
// loop can record the resume as failed and move on.
func (s *geminiScorer) ScoreResume(ctx context.Context, resumeText string, criteria Criteria) (*ResumeAnalysis, error) {
	prompt := s.promptBuilder.BuildResumeAnalysisPrompt(resumeText, criteria)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.5, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	analysis, err := parseAnalysisResponse(response, criteria)
	if err != nil {
		return nil, err
	}

	return analysis, nil
}

func parseAnalysisResponse(response string, criteria Criteria) (*ResumeAnalysis, error) {
	var analysis ResumeAnalysis
	if err := parseJSONResponse(response, &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	if analysis.Score == nil {
		return nil, fmt.Errorf("invalid analysis response: missing score")
	}

	if criteria.Options.Skills && analysis.Skills == nil {
		return nil, fmt.Errorf("invalid analysis response: missing skills list")
	}

	return &analysis, nil
}

func parseJSONResponse(response string, target interface{}) error {
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w\nResponse: %s", err, response)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
