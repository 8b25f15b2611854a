package embedding

import "context"

// Embedder turns text into fixed-length vectors suitable for cosine
// similarity search.
type Embedder interface {
	// Embed generates an embedding for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, order-preserving
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
