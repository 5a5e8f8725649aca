package services

import (
	"context"
	"strings"
	"testing"
)

func TestScoreResumeParsesFencedJSON(t *testing.T) {
	gemini := &stubGemini{
		response: "```json\n" + `{
  "score": 78,
  "skills": ["Go", "PostgreSQL"],
  "experience": "5 年後端開發",
  "meetsRequirements": true,
  "matchedOptional": ["Docker"],
  "hasExclusions": false,
  "evaluation": "符合必要條件"
}` + "\n```",
	}

	scorer := NewResumeScorer(gemini, 3)
	criteria := Criteria{
		Mandatory: []string{"Go"},
		Optional:  []string{"Docker"},
		Options:   AnalysisOptions{Skills: true, Experience: true},
	}

	analysis, err := scorer.ScoreResume(context.Background(), "resume text", criteria)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Score == nil || *analysis.Score != 78 {
		t.Fatalf("score not parsed: %v", analysis.Score)
	}
	if len(analysis.Skills) != 2 || analysis.Skills[0] != "Go" {
		t.Fatalf("skills not parsed: %v", analysis.Skills)
	}
	if !analysis.MeetsRequirements || analysis.HasExclusions {
		t.Fatalf("flags not parsed: %+v", analysis)
	}
}

func TestScoreResumeMissingScore(t *testing.T) {
	gemini := &stubGemini{response: `{"skills": ["Go"]}`}
	scorer := NewResumeScorer(gemini, 3)

	_, err := scorer.ScoreResume(context.Background(), "text", Criteria{Options: AnalysisOptions{Skills: true}})
	if err == nil || !strings.Contains(err.Error(), "missing score") {
		t.Fatalf("expected a missing score error, got %v", err)
	}
}

func TestScoreResumeMissingSkillsWhenRequested(t *testing.T) {
	gemini := &stubGemini{response: `{"score": 60}`}
	scorer := NewResumeScorer(gemini, 3)

	_, err := scorer.ScoreResume(context.Background(), "text", Criteria{Options: AnalysisOptions{Skills: true}})
	if err == nil || !strings.Contains(err.Error(), "missing skills") {
		t.Fatalf("expected a missing skills error, got %v", err)
	}

	// The same response is fine when skills were not requested.
	if _, err := scorer.ScoreResume(context.Background(), "text", Criteria{}); err != nil {
		t.Fatalf("unexpected error without the skills option: %v", err)
	}
}

func TestScoreResumeMalformedJSON(t *testing.T) {
	gemini := &stubGemini{response: "sorry, I cannot help with that"}
	scorer := NewResumeScorer(gemini, 3)

	if _, err := scorer.ScoreResume(context.Background(), "text", Criteria{}); err == nil {
		t.Fatalf("expected a parse error for non-JSON output")
	}
}

func TestScoreResumePromptReflectsCriteria(t *testing.T) {
	gemini := &stubGemini{response: `{"score": 50, "skills": []}`}
	scorer := NewResumeScorer(gemini, 3)

	criteria := Criteria{
		Mandatory: []string{"Kubernetes"},
		Excluded:  []string{"PHP"},
		Options:   AnalysisOptions{Skills: true},
	}
	if _, err := scorer.ScoreResume(context.Background(), "some resume text", criteria); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(gemini.lastPrompt, "Kubernetes") {
		t.Fatalf("mandatory terms missing from prompt")
	}
	if !strings.Contains(gemini.lastPrompt, "PHP") {
		t.Fatalf("excluded terms missing from prompt")
	}
	if !strings.Contains(gemini.lastPrompt, "some resume text") {
		t.Fatalf("resume text missing from prompt")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"fenced object", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding prose", `Here you go: {"a": 1} Hope that helps!`, `{"a": 1}`},
		{"array", `[1, 2, 3]`, `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.input); got != tt.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
