package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/uday3756/rag-assignment/internal/embedding"
	"github.com/uday3756/rag-assignment/internal/types"
	"github.com/uday3756/rag-assignment/internal/vectorstore"
)

// ErrNoChunks is returned by Index when there is nothing to embed.
var ErrNoChunks = errors.New("no chunks provided for embedding")

const (
	// DefaultTopK is how many candidates a query requests from the index.
	DefaultTopK = 5

	// DefaultMaxDistance gates the whole result set: when even the
	// nearest candidate is farther than this, the query has no
	// relevant evidence.
	DefaultMaxDistance = 0.8
)

// Retriever converts queries into ranked evidence chunks, and feeds
// the index during ingestion.
type Retriever struct {
	embedder    embedding.Embedder
	index       vectorstore.VectorIndex
	topK        int
	maxDistance float64
	logger      zerolog.Logger
}

// Option configures a Retriever
type Option func(*Retriever)

// WithTopK sets the default number of candidates per query
func WithTopK(k int) Option {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// WithMaxDistance sets the relevance gate on the nearest candidate
func WithMaxDistance(d float64) Option {
	return func(r *Retriever) {
		r.maxDistance = d
	}
}

// NewRetriever creates a Retriever over the given embedder and index
func NewRetriever(embedder embedding.Embedder, index vectorstore.VectorIndex, logger zerolog.Logger, opts ...Option) *Retriever {
	r := &Retriever{
		embedder:    embedder,
		index:       index,
		topK:        DefaultTopK,
		maxDistance: DefaultMaxDistance,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index embeds every chunk in one batch and upserts the results. It
// does not deduplicate: re-ingesting the same corpus without clearing
// the index duplicates entries.
func (r *Retriever) Index(ctx context.Context, chunks []types.Chunk) error {
	if len(chunks) == 0 {
		return ErrNoChunks
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	vectors, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	records := make([]vectorstore.Record, len(chunks))
	for i, chunk := range chunks {
		records[i] = vectorstore.Record{
			ID:        uuid.NewString(),
			Text:      chunk.Content,
			Embedding: vectors[i],
			Metadata: types.ChunkMetadata{
				Source:     chunk.Source,
				PolicyType: chunk.PolicyType,
				Section:    chunk.Section,
			},
		}
	}

	if err := r.index.Upsert(ctx, records); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}

	r.logger.Info().Int("chunks", len(records)).Msg("indexed chunks")
	return nil
}

// Retrieve returns the top-k chunks for a query, best first. The
// result is empty for blank queries, when the index has nothing, or
// when even the nearest candidate is farther than the relevance gate.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]types.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if topK <= 0 {
		topK = r.topK
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := r.index.Query(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	// All-or-nothing gate on the best candidate, not a per-item filter.
	minDistance := hits[0].Distance
	for _, hit := range hits[1:] {
		if hit.Distance < minDistance {
			minDistance = hit.Distance
		}
	}
	if minDistance > r.maxDistance {
		r.logger.Debug().
			Float64("min_distance", minDistance).
			Str("query", query).
			Msg("no candidate passed the relevance gate")
		return nil, nil
	}

	results := make([]types.RetrievalResult, len(hits))
	for i, hit := range hits {
		results[i] = types.RetrievalResult{
			Content:  hit.Text,
			Distance: hit.Distance,
			Metadata: hit.Metadata,
		}
	}
	return results, nil
}
