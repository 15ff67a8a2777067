package identity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "meetscribe/internal/app/errors"
	"meetscribe/internal/app/model"
	"meetscribe/internal/app/scratch"
	"meetscribe/internal/app/storage"
)

type fakeCodec struct {
	extracted []string
	failAll   bool
}

func (c *fakeCodec) Duration(ctx context.Context, path string) (float64, error) {
	return 60, nil
}

func (c *fakeCodec) ExtractSegment(ctx context.Context, src, dst string, startSec, durationSec float64) error {
	if c.failAll {
		return errors.New("ffmpeg exploded")
	}
	c.extracted = append(c.extracted, dst)
	return os.WriteFile(dst, []byte("pcm"), 0o644)
}

type fakeEncoder struct {
	embedding []float32
	err       error
}

func (e *fakeEncoder) Embed(ctx context.Context, wavPath string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.embedding, nil
}

type stubGallery struct {
	candidates []model.Candidate
	err        error
}

func (g *stubGallery) Search(ctx context.Context, tenant string, embedding []float32, k int) ([]model.Candidate, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.candidates, nil
}

func (g *stubGallery) Enroll(ctx context.Context, record *model.VoiceprintRecord) error {
	return nil
}

func newTestResolver(t *testing.T, codec *fakeCodec, gallery Gallery) (*Resolver, *scratch.Workspace) {
	t.Helper()
	ws, err := scratch.NewWorkspace(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	encoder := &fakeEncoder{embedding: unitVector()}
	return NewResolver(codec, encoder, gallery, storage.NewNopClipStore(), zap.NewNop(), 0.8), ws
}

func unitVector() []float32 {
	v := make([]float32, EmbeddingDim)
	v[0] = 1
	return v
}

func evidence(n int) []model.Segment {
	out := make([]model.Segment, n)
	for i := range out {
		out[i] = model.Segment{Start: float64(i * 10), End: float64(i*10 + 5), Duration: 5}
	}
	return out
}

func TestResolveAcceptsAboveThreshold(t *testing.T) {
	codec := &fakeCodec{}
	gallery := &stubGallery{candidates: []model.Candidate{
		{Name: "Alice Wong", Similarity: 0.82},
		{Name: "Bob Chan", Similarity: 0.55},
	}}
	resolver, ws := newTestResolver(t, codec, gallery)

	name, confidence, err := resolver.Resolve(context.Background(), ws, "meeting.wav", "acme", "job-1", 1, evidence(1))

	require.NoError(t, err)
	assert.Equal(t, "Alice Wong", name)
	assert.InDelta(t, 0.82, confidence, 1e-9)
}

func TestResolveRejectsBelowThreshold(t *testing.T) {
	codec := &fakeCodec{}
	gallery := &stubGallery{candidates: []model.Candidate{
		{Name: "Alice Wong", Similarity: 0.79},
	}}
	resolver, ws := newTestResolver(t, codec, gallery)

	name, confidence, err := resolver.Resolve(context.Background(), ws, "meeting.wav", "acme", "job-1", 1, evidence(1))

	require.NoError(t, err)
	assert.Equal(t, Unknown, name)
	assert.InDelta(t, 0.79, confidence, 1e-9)
}

func TestResolveEmptyGallery(t *testing.T) {
	codec := &fakeCodec{}
	resolver, ws := newTestResolver(t, codec, &stubGallery{})

	name, confidence, err := resolver.Resolve(context.Background(), ws, "meeting.wav", "acme", "job-1", 1, evidence(2))

	require.NoError(t, err)
	assert.Equal(t, Unknown, name)
	assert.Zero(t, confidence)
}

func TestResolveNoEvidence(t *testing.T) {
	codec := &fakeCodec{}
	resolver, ws := newTestResolver(t, codec, &stubGallery{})

	name, confidence, err := resolver.Resolve(context.Background(), ws, "meeting.wav", "acme", "job-1", 1, nil)

	require.NoError(t, err)
	assert.Equal(t, Unknown, name)
	assert.Zero(t, confidence)
	assert.Empty(t, codec.extracted)
}

func TestResolveTakesBestAcrossClips(t *testing.T) {
	codec := &fakeCodec{}
	gallery := &countingGallery{similarities: []float64{0.70, 0.91, 0.83}}
	resolver, ws := newTestResolver(t, codec, gallery)

	name, confidence, err := resolver.Resolve(context.Background(), ws, "meeting.wav", "acme", "job-1", 2, evidence(3))

	require.NoError(t, err)
	assert.Equal(t, "hit-2", name)
	assert.InDelta(t, 0.91, confidence, 1e-9)
}

func TestResolveCleansUpClips(t *testing.T) {
	codec := &fakeCodec{}
	gallery := &stubGallery{candidates: []model.Candidate{{Name: "Alice Wong", Similarity: 0.9}}}
	resolver, ws := newTestResolver(t, codec, gallery)

	_, _, err := resolver.Resolve(context.Background(), ws, "meeting.wav", "acme", "job-1", 1, evidence(3))
	require.NoError(t, err)

	require.Len(t, codec.extracted, 3)
	for _, clip := range codec.extracted {
		_, statErr := os.Stat(clip)
		assert.True(t, os.IsNotExist(statErr), "clip %s should be removed", filepath.Base(clip))
	}
}

func TestResolveCleansUpOnGalleryError(t *testing.T) {
	codec := &fakeCodec{}
	gallery := &stubGallery{err: errors.New("pgvector offline")}
	resolver, ws := newTestResolver(t, codec, gallery)

	_, _, err := resolver.Resolve(context.Background(), ws, "meeting.wav", "acme", "job-1", 1, evidence(1))

	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindIdentityLookup))
	require.Len(t, codec.extracted, 1)
	_, statErr := os.Stat(codec.extracted[0])
	assert.True(t, os.IsNotExist(statErr))
}

func TestResolveEncoderFailureDegradesToUnknown(t *testing.T) {
	codec := &fakeCodec{}
	gallery := &stubGallery{candidates: []model.Candidate{{Name: "Alice Wong", Similarity: 0}}}

	ws, err := scratch.NewWorkspace(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	encoder := &fakeEncoder{err: errors.New("encoder unreachable")}
	resolver := NewResolver(codec, encoder, gallery, storage.NewNopClipStore(), zap.NewNop(), 0.8)

	name, confidence, resolveErr := resolver.Resolve(context.Background(), ws, "meeting.wav", "acme", "job-1", 1, evidence(1))

	require.NoError(t, resolveErr)
	assert.Equal(t, Unknown, name)
	assert.Zero(t, confidence)
}

// countingGallery returns a different similarity per successive search.
type countingGallery struct {
	similarities []float64
	calls        int
}

func (g *countingGallery) Search(ctx context.Context, tenant string, embedding []float32, k int) ([]model.Candidate, error) {
	similarity := g.similarities[g.calls%len(g.similarities)]
	g.calls++
	return []model.Candidate{{
		Name:       "hit-" + string(rune('1'+g.calls-1)),
		Similarity: similarity,
	}}, nil
}

func (g *countingGallery) Enroll(ctx context.Context, record *model.VoiceprintRecord) error {
	return nil
}
