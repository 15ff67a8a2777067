// Package testutil provides shared fakes for pipeline tests.
package testutil

import (
	"context"
	"os"
	"sync"

	"meetscribe/internal/app/model"
	"meetscribe/internal/app/provider"
)

// MockAdapter returns a scripted PollResult without any HTTP.
type MockAdapter struct {
	ProviderName string
	Result       *provider.PollResult
	Err          error

	mu    sync.Mutex
	calls int
}

func (a *MockAdapter) Name() string {
	if a.ProviderName == "" {
		return "mock"
	}
	return a.ProviderName
}

func (a *MockAdapter) Poll(ctx context.Context, jobURL string) (*provider.PollResult, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()

	if a.Err != nil {
		return nil, a.Err
	}
	return a.Result, nil
}

// Calls reports how many times Poll ran.
func (a *MockAdapter) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// MockCodec records extraction requests and writes placeholder clips.
type MockCodec struct {
	DurationSec float64
	Err         error

	mu        sync.Mutex
	extracted []string
}

func (c *MockCodec) Duration(ctx context.Context, path string) (float64, error) {
	if c.Err != nil {
		return 0, c.Err
	}
	return c.DurationSec, nil
}

func (c *MockCodec) ExtractSegment(ctx context.Context, src, dst string, startSec, durationSec float64) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	c.extracted = append(c.extracted, dst)
	c.mu.Unlock()
	return os.WriteFile(dst, []byte("pcm"), 0o644)
}

// Extracted returns the clip paths written so far.
func (c *MockCodec) Extracted() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.extracted...)
}

// MockEncoder returns a fixed embedding for every clip.
type MockEncoder struct {
	Embedding []float32
	Err       error
}

func (e *MockEncoder) Embed(ctx context.Context, wavPath string) ([]float32, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Embedding, nil
}

// MockGallery returns scripted candidates for every search.
type MockGallery struct {
	Candidates []model.Candidate
	Err        error

	mu       sync.Mutex
	searches int
}

func (g *MockGallery) Search(ctx context.Context, tenant string, embedding []float32, k int) ([]model.Candidate, error) {
	g.mu.Lock()
	g.searches++
	g.mu.Unlock()

	if g.Err != nil {
		return nil, g.Err
	}
	return g.Candidates, nil
}

func (g *MockGallery) Enroll(ctx context.Context, record *model.VoiceprintRecord) error {
	return g.Err
}

// Searches reports how many gallery queries ran.
func (g *MockGallery) Searches() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.searches
}
