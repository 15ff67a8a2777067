package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeClip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFFpcm"), 0o644))
	return path
}

func TestHTTPEncoderEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/embed", r.URL.Path)
		assert.Equal(t, "audio/wav", r.Header.Get("Content-Type"))

		embedding := make([]float32, EmbeddingDim)
		embedding[0] = 0.5
		json.NewEncoder(w).Encode(map[string]interface{}{"embedding": embedding})
	}))
	defer server.Close()

	encoder := NewHTTPEncoder(server.URL)
	embedding, err := encoder.Embed(context.Background(), writeClip(t))

	require.NoError(t, err)
	require.Len(t, embedding, EmbeddingDim)
	assert.InDelta(t, 0.5, embedding[0], 1e-6)
}

func TestHTTPEncoderRejectsWrongDimension(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"embedding": []float32{1, 2}})
	}))
	defer server.Close()

	encoder := NewHTTPEncoder(server.URL)
	_, err := encoder.Embed(context.Background(), writeClip(t))
	assert.ErrorContains(t, err, "dims")
}

func TestHTTPEncoderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	encoder := NewHTTPEncoder(server.URL)
	_, err := encoder.Embed(context.Background(), writeClip(t))
	assert.ErrorContains(t, err, "500")
}

func TestHTTPEncoderMissingClip(t *testing.T) {
	encoder := NewHTTPEncoder("http://localhost:1")
	_, err := encoder.Embed(context.Background(), "/nonexistent/clip.wav")
	assert.Error(t, err)
}
