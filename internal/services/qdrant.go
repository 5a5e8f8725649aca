package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type QdrantService interface {
	InitCollection() error
	IndexResume(ctx context.Context, resumeID, projectID uuid.UUID, chunks []string, embeddings [][]float32) error
	SearchResumes(ctx context.Context, queryEmbedding []float32, projectID uuid.UUID, limit int) ([]ResumeMatch, error)
	DeleteResume(ctx context.Context, resumeID uuid.UUID) error
	DeleteProject(ctx context.Context, projectID uuid.UUID) error
}

// ResumeMatch is one semantic search hit: the owning resume, the best-scoring
// chunk of its text and that chunk's similarity score.
type ResumeMatch struct {
	ResumeID string
	Score    float32
	Chunk    string
}

type qdrantService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewQdrantService(urlStr, apiKey, collectionName string) (QdrantService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QdrantService.
func (q *qdrantService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// IndexResume implements QdrantService. One point per text chunk, all tagged
// with the owning resume and project so deletion and search can filter.
func (q *qdrantService) IndexResume(ctx context.Context, resumeID, projectID uuid.UUID, chunks []string, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(embeddings[i]...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"resume_id":  resumeID.String(),
				"project_id": projectID.String(),
				"text":       chunk,
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// SearchResumes implements QdrantService. Hits are deduplicated per resume,
// keeping each resume's best-scoring chunk.
func (q *qdrantService) SearchResumes(ctx context.Context, queryEmbedding []float32, projectID uuid.UUID, limit int) ([]ResumeMatch, error) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("project_id", projectID.String()),
		},
	}

	// Overfetch so per-resume deduplication still fills the limit
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit * 4)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	seen := make(map[string]bool)
	var results []ResumeMatch

	for _, point := range searchResult {
		match := ResumeMatch{Score: point.Score}

		if id, ok := point.Payload["resume_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				match.ResumeID = val.StringValue
			}
		}
		if text, ok := point.Payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				match.Chunk = val.StringValue
			}
		}

		if match.ResumeID == "" || seen[match.ResumeID] {
			continue
		}
		seen[match.ResumeID] = true

		results = append(results, match)
		if len(results) >= limit {
			break
		}
	}

	return results, nil
}

// DeleteResume implements QdrantService.
func (q *qdrantService) DeleteResume(ctx context.Context, resumeID uuid.UUID) error {
	return q.deleteByFilter(ctx, "resume_id", resumeID.String())
}

// DeleteProject implements QdrantService.
func (q *qdrantService) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	return q.deleteByFilter(ctx, "project_id", projectID.String())
}

func (q *qdrantService) deleteByFilter(ctx context.Context, field, value string) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch(field, value),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})

	if err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}

	return nil
}
