package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"scoai/resume-screener/internal/models"
	"scoai/resume-screener/internal/repositories"
)

const (
	embedChunkSize    = 1500
	embedChunkOverlap = 200
)

// CandidateMatch is one semantic search result joined to its stored resume.
type CandidateMatch struct {
	Resume  models.Resume `json:"resume"`
	Score   float32       `json:"score"`
	Snippet string        `json:"snippet"`
}

// SearchService keeps the vector index in step with stored resumes and
// answers free-text queries over a project's candidate pool.
type SearchService interface {
	IndexResume(ctx context.Context, resume *models.Resume) error
	RemoveResume(ctx context.Context, resumeID uuid.UUID) error
	RemoveProject(ctx context.Context, projectID uuid.UUID) error
	Search(ctx context.Context, projectID uuid.UUID, query string, limit int) ([]CandidateMatch, error)
}

type searchService struct {
	resumeRepo repositories.ResumeRepository
	gemini     GeminiService
	qdrant     QdrantService
}

func NewSearchService(resumeRepo repositories.ResumeRepository, gemini GeminiService, qdrant QdrantService) SearchService {
	return &searchService{
		resumeRepo: resumeRepo,
		gemini:     gemini,
		qdrant:     qdrant,
	}
}

// IndexResume implements SearchService.
func (s *searchService) IndexResume(ctx context.Context, resume *models.Resume) error {
	chunks := ChunkResumeText(resume.ResumeText, embedChunkSize, embedChunkOverlap)
	if len(chunks) == 0 {
		return fmt.Errorf("nothing to index: %w", ErrMissingText)
	}

	embeddings := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		embedding, err := s.gemini.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed resume chunk: %w", err)
		}
		embeddings = append(embeddings, embedding)
	}

	return s.qdrant.IndexResume(ctx, resume.ID, resume.ProjectID, chunks, embeddings)
}

// RemoveResume implements SearchService.
func (s *searchService) RemoveResume(ctx context.Context, resumeID uuid.UUID) error {
	return s.qdrant.DeleteResume(ctx, resumeID)
}

// RemoveProject implements SearchService.
func (s *searchService) RemoveProject(ctx context.Context, projectID uuid.UUID) error {
	return s.qdrant.DeleteProject(ctx, projectID)
}

// Search implements SearchService.
func (s *searchService) Search(ctx context.Context, projectID uuid.UUID, query string, limit int) ([]CandidateMatch, error) {
	if limit <= 0 {
		limit = 10
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := s.qdrant.SearchResumes(ctx, embedding, projectID, limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		id, err := uuid.Parse(hit.ResumeID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	resumes, err := s.resumeRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Resume, len(resumes))
	for _, resume := range resumes {
		byID[resume.ID.String()] = resume
	}

	matches := make([]CandidateMatch, 0, len(hits))
	for _, hit := range hits {
		resume, ok := byID[hit.ResumeID]
		if !ok {
			// Stale index entry, the row is gone
			continue
		}
		matches = append(matches, CandidateMatch{
			Resume:  resume,
			Score:   hit.Score,
			Snippet: hit.Chunk,
		})
	}

	return matches, nil
}
