package vectorstore

import (
	"context"
	"testing"

	"github.com/uday3756/rag-assignment/internal/types"
)

func TestMemoryIndex_UpsertAndQuery(t *testing.T) {
	index := NewMemoryIndex()
	ctx := context.Background()

	err := index.Upsert(ctx, []Record{
		{ID: "1", Text: "A", Embedding: []float32{1, 0}, Metadata: types.ChunkMetadata{Section: "Returns"}},
		{ID: "2", Text: "B", Embedding: []float32{0, 1}, Metadata: types.ChunkMetadata{Section: "Shipping"}},
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	hits, err := index.Query(ctx, []float32{0.9, 0.1}, 1)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Text != "A" {
		t.Fatalf("expected best match 'A', got %q", hits[0].Text)
	}
	if hits[0].Metadata.Section != "Returns" {
		t.Fatalf("expected metadata to round-trip, got %+v", hits[0].Metadata)
	}
}

func TestMemoryIndex_OrderedByDistance(t *testing.T) {
	index := NewMemoryIndex()
	ctx := context.Background()

	index.Upsert(ctx, []Record{
		{ID: "far", Text: "far", Embedding: []float32{0, 1}},
		{ID: "near", Text: "near", Embedding: []float32{1, 0}},
		{ID: "mid", Text: "mid", Embedding: []float32{1, 1}},
	})

	hits, err := index.Query(ctx, []float32{1, 0}, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if hits[0].Text != "near" || hits[1].Text != "mid" || hits[2].Text != "far" {
		t.Fatalf("unexpected order: %q %q %q", hits[0].Text, hits[1].Text, hits[2].Text)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Distance < hits[i-1].Distance {
			t.Fatalf("distances not ascending: %v", hits)
		}
	}
}

func TestMemoryIndex_KLargerThanStore(t *testing.T) {
	index := NewMemoryIndex()
	ctx := context.Background()

	index.Upsert(ctx, []Record{
		{ID: "1", Embedding: []float32{1, 0}},
		{ID: "2", Embedding: []float32{0, 1}},
	})

	hits, err := index.Query(ctx, []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits when k exceeds store size, got %d", len(hits))
	}
}

func TestCosineDistance(t *testing.T) {
	if d := cosineDistance([]float32{1, 0}, []float32{1, 0}); d > 0.001 {
		t.Fatalf("expected ~0 for identical vectors, got %f", d)
	}
	if d := cosineDistance([]float32{1, 0}, []float32{0, 1}); d < 0.999 || d > 1.001 {
		t.Fatalf("expected ~1 for orthogonal vectors, got %f", d)
	}
	if d := cosineDistance([]float32{1, 0}, []float32{-1, 0}); d < 1.999 {
		t.Fatalf("expected ~2 for opposite vectors, got %f", d)
	}
	if d := cosineDistance([]float32{0, 0}, []float32{1, 0}); d != 2 {
		t.Fatalf("expected 2 for zero vector, got %f", d)
	}
	if d := cosineDistance([]float32{1}, []float32{1, 0}); d != 2 {
		t.Fatalf("expected 2 for mismatched dimensions, got %f", d)
	}
}
