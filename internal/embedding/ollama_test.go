package embedding

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newFakeOllama(t *testing.T, vectors map[string][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req ollamaEmbeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		vec, ok := vectors[req.Prompt]
		if !ok {
			vec = []float64{1, 0}
		}
		json.NewEncoder(w).Encode(ollamaEmbeddingResponse{Embedding: vec})
	}))
}

func TestOllamaProvider_EmbedNormalizes(t *testing.T) {
	server := newFakeOllama(t, map[string][]float64{
		"hello": {3, 4},
	})
	defer server.Close()

	p := NewOllamaProvider(server.URL, "test-model")
	vec, err := p.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if len(vec) != 2 {
		t.Fatalf("expected 2 dimensions, got %d", len(vec))
	}
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	if math.Abs(math.Sqrt(magnitude)-1) > 1e-6 {
		t.Fatalf("expected unit-length vector, got magnitude %f", math.Sqrt(magnitude))
	}
}

func TestOllamaProvider_EmbedBatchPreservesOrder(t *testing.T) {
	server := newFakeOllama(t, map[string][]float64{
		"first":  {1, 0},
		"second": {0, 1},
	})
	defer server.Close()

	p := NewOllamaProvider(server.URL, "test-model")
	vectors, err := p.EmbedBatch(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 1 || vectors[1][1] != 1 {
		t.Fatalf("batch order not preserved: %v", vectors)
	}
}

func TestOllamaProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "missing-model")
	if _, err := p.Embed(context.Background(), "text"); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}
