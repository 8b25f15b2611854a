package main

import (
	"context"

	"github.com/schollz/progressbar/v3"

	"github.com/uday3756/rag-assignment/internal/embedding"
)

// progressEmbedder decorates an Embedder with a terminal progress bar
// over batch embedding, which dominates ingestion time.
type progressEmbedder struct {
	inner embedding.Embedder
}

func newProgressEmbedder(inner embedding.Embedder) *progressEmbedder {
	return &progressEmbedder{inner: inner}
}

func (p *progressEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return p.inner.Embed(ctx, text)
}

func (p *progressEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	bar := progressbar.Default(int64(len(texts)), "embedding chunks")
	defer bar.Finish()

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := p.inner.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
		bar.Add(1)
	}
	return vectors, nil
}
