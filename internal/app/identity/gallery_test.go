package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetscribe/internal/app/model"
)

func vectorAt(index int) []float32 {
	v := make([]float32, EmbeddingDim)
	v[index] = 1
	return v
}

func TestCosineSimilarity(t *testing.T) {
	a := vectorAt(0)
	b := vectorAt(1)

	assert.InDelta(t, 1.0, CosineSimilarity(a, a), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
	assert.Zero(t, CosineSimilarity(ZeroEmbedding(), a))
	assert.Zero(t, CosineSimilarity(a, []float32{1}))
}

func TestMemoryGallerySearchRanksAndLimits(t *testing.T) {
	gallery := NewMemoryGallery()
	ctx := context.Background()

	for i, name := range []string{"Alice", "Bob", "Carol", "Dave"} {
		require.NoError(t, gallery.Enroll(ctx, &model.VoiceprintRecord{
			Name:      name,
			Tenant:    "acme",
			Embedding: vectorAt(i),
		}))
	}

	// Probe closest to Alice, with a small Bob component.
	probe := make([]float32, EmbeddingDim)
	probe[0] = 1
	probe[1] = 0.3

	candidates, err := gallery.Search(ctx, "acme", probe, 3)
	require.NoError(t, err)

	require.Len(t, candidates, 3)
	assert.Equal(t, "Alice", candidates[0].Name)
	assert.Equal(t, "Bob", candidates[1].Name)
	assert.Greater(t, candidates[0].Similarity, candidates[1].Similarity)
}

func TestMemoryGalleryTenantIsolation(t *testing.T) {
	gallery := NewMemoryGallery()
	ctx := context.Background()

	require.NoError(t, gallery.Enroll(ctx, &model.VoiceprintRecord{
		Name: "Alice", Tenant: "acme", Embedding: vectorAt(0),
	}))

	candidates, err := gallery.Search(ctx, "globex", vectorAt(0), 3)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestMemoryGalleryEnrollReplacesSameName(t *testing.T) {
	gallery := NewMemoryGallery()
	ctx := context.Background()

	first := &model.VoiceprintRecord{Name: "Alice", Tenant: "acme", Embedding: vectorAt(0)}
	require.NoError(t, gallery.Enroll(ctx, first))

	second := &model.VoiceprintRecord{Name: "Alice", Tenant: "acme", Embedding: vectorAt(5)}
	require.NoError(t, gallery.Enroll(ctx, second))

	assert.Equal(t, first.PersonID, second.PersonID)

	candidates, err := gallery.Search(ctx, "acme", vectorAt(5), 3)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.InDelta(t, 1.0, candidates[0].Similarity, 1e-9)
}

func TestMemoryGalleryRejectsWrongDimension(t *testing.T) {
	gallery := NewMemoryGallery()
	err := gallery.Enroll(context.Background(), &model.VoiceprintRecord{
		Name: "Alice", Tenant: "acme", Embedding: []float32{1, 2, 3},
	})
	assert.Error(t, err)
}
