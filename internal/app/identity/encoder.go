package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// EmbeddingDim is the fixed voiceprint vector length.
const EmbeddingDim = 256

// Encoder turns an audio clip into a voiceprint embedding.
type Encoder interface {
	Embed(ctx context.Context, wavPath string) ([]float32, error)
}

// ZeroEmbedding is the sentinel used when embedding extraction fails.
// It never matches anything in the gallery, so the speaker degrades to
// unknown instead of failing the job.
func ZeroEmbedding() []float32 {
	return make([]float32, EmbeddingDim)
}

// HTTPEncoder calls an external voice encoder service.
type HTTPEncoder struct {
	baseURL string
	client  *http.Client
}

func NewHTTPEncoder(baseURL string) *HTTPEncoder {
	return &HTTPEncoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Embed posts the raw WAV bytes and expects a JSON embedding back.
func (e *HTTPEncoder) Embed(ctx context.Context, wavPath string) ([]float32, error) {
	data, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, fmt.Errorf("read clip: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/embed", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("encoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("encoder returned %d: %s", resp.StatusCode, body)
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode encoder response: %w", err)
	}
	if len(out.Embedding) != EmbeddingDim {
		return nil, fmt.Errorf("encoder returned %d dims, want %d", len(out.Embedding), EmbeddingDim)
	}
	return out.Embedding, nil
}
