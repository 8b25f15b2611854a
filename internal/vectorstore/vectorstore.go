package vectorstore

import (
	"context"

	"github.com/uday3756/rag-assignment/internal/types"
)

// Record is one embedded chunk as stored in the index.
type Record struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  types.ChunkMetadata
}

// SearchResult is one nearest-neighbor hit, distance ascending.
type SearchResult struct {
	Text     string
	Distance float64
	Metadata types.ChunkMetadata
}

// VectorIndex defines the interface for vector index operations
type VectorIndex interface {
	// Upsert stores embedded chunks in the index
	Upsert(ctx context.Context, records []Record) error

	// Query returns the k nearest stored records to the given vector,
	// ordered by ascending cosine distance
	Query(ctx context.Context, vector []float32, k int) ([]SearchResult, error)
}
