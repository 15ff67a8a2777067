package identity

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"

	"meetscribe/internal/app/model"
)

// Gallery is the searchable collection of enrolled voiceprints.
type Gallery interface {
	// Search returns up to k candidates ranked by similarity descending,
	// similarity = 1 - cosine distance.
	Search(ctx context.Context, tenant string, embedding []float32, k int) ([]model.Candidate, error)

	// Enroll adds or replaces a voiceprint.
	Enroll(ctx context.Context, record *model.VoiceprintRecord) error
}

// MemoryGallery is an in-process Gallery for on-premises single-node
// deployments and tests.
type MemoryGallery struct {
	mu      sync.RWMutex
	records []*model.VoiceprintRecord
	nextID  int
}

func NewMemoryGallery() *MemoryGallery {
	return &MemoryGallery{nextID: 1}
}

func (g *MemoryGallery) Enroll(ctx context.Context, record *model.VoiceprintRecord) error {
	if len(record.Embedding) != EmbeddingDim {
		return errors.New("voiceprint embedding has wrong dimension")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, existing := range g.records {
		if existing.Tenant == record.Tenant && existing.Name == record.Name {
			existing.Embedding = record.Embedding
			existing.Email = record.Email
			existing.Department = record.Department
			existing.Position = record.Position
			record.PersonID = existing.PersonID
			return nil
		}
	}

	record.PersonID = g.nextID
	g.nextID++
	g.records = append(g.records, record)
	return nil
}

func (g *MemoryGallery) Search(ctx context.Context, tenant string, embedding []float32, k int) ([]model.Candidate, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var candidates []model.Candidate
	for _, record := range g.records {
		if record.Tenant != tenant {
			continue
		}
		candidates = append(candidates, model.Candidate{
			PersonID:   record.PersonID,
			Name:       record.Name,
			Email:      record.Email,
			Department: record.Department,
			Position:   record.Position,
			Similarity: CosineSimilarity(embedding, record.Embedding),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Similarity > candidates[j].Similarity
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// CosineSimilarity returns 1 - cosine distance. Zero vectors score 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
