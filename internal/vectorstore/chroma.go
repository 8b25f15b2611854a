package vectorstore

import (
	"context"
	"fmt"

	chromago "github.com/amikos-tech/chroma-go"
	"github.com/amikos-tech/chroma-go/collection"
	chromatypes "github.com/amikos-tech/chroma-go/types"
	"github.com/rs/zerolog"

	"github.com/uday3756/rag-assignment/internal/types"
)

// ChromaIndex implements VectorIndex backed by a ChromaDB collection
// using cosine distance.
type ChromaIndex struct {
	client         *chromago.Client
	collectionName string
	logger         zerolog.Logger
}

// NewChromaIndex creates a ChromaIndex talking to the server at url.
// The collection is created on first upsert if it does not exist.
func NewChromaIndex(url, collectionName string, logger zerolog.Logger) (*ChromaIndex, error) {
	client, err := chromago.NewClient(chromago.WithBasePath(url))
	if err != nil {
		return nil, fmt.Errorf("failed to create ChromaDB client: %w", err)
	}
	return &ChromaIndex{
		client:         client,
		collectionName: collectionName,
		logger:         logger,
	}, nil
}

// Upsert implements VectorIndex.Upsert
func (c *ChromaIndex) Upsert(ctx context.Context, records []Record) error {
	col, err := c.client.NewCollection(
		ctx,
		c.collectionName,
		collection.WithHNSWDistanceFunction(chromatypes.COSINE),
		collection.WithCreateIfNotExist(true),
	)
	if err != nil {
		return fmt.Errorf("failed to create or get collection: %w", err)
	}

	ids := make([]string, 0, len(records))
	documents := make([]string, 0, len(records))
	embeddings := make([]*chromatypes.Embedding, 0, len(records))
	metadatas := make([]map[string]interface{}, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
		documents = append(documents, rec.Text)
		embeddings = append(embeddings, chromatypes.NewEmbeddingFromFloat32(rec.Embedding))
		metadatas = append(metadatas, map[string]interface{}{
			"source":      rec.Metadata.Source,
			"policy_type": rec.Metadata.PolicyType,
			"section":     rec.Metadata.Section,
		})
	}

	if _, err := col.Add(ctx, embeddings, metadatas, documents, ids); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}

	c.logger.Info().
		Str("collection", c.collectionName).
		Int("count", len(records)).
		Msg("stored chunks in collection")
	return nil
}

// Query implements VectorIndex.Query
func (c *ChromaIndex) Query(ctx context.Context, vector []float32, k int) ([]SearchResult, error) {
	col, err := c.client.GetCollection(ctx, c.collectionName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}

	results, err := col.QueryWithOptions(
		ctx,
		chromatypes.WithQueryEmbedding(chromatypes.NewEmbeddingFromFloat32(vector)),
		chromatypes.WithNResults(int32(k)),
		chromatypes.WithInclude("documents", "metadatas", "distances"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	var hits []SearchResult
	if len(results.Documents) == 0 {
		return hits, nil
	}
	for i := range results.Documents[0] {
		hit := SearchResult{Text: results.Documents[0][i]}
		if len(results.Distances) > 0 && len(results.Distances[0]) > i {
			hit.Distance = float64(results.Distances[0][i])
		}
		if len(results.Metadatas) > 0 && len(results.Metadatas[0]) > i && results.Metadatas[0][i] != nil {
			hit.Metadata = metadataFromMap(results.Metadatas[0][i])
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func metadataFromMap(m map[string]interface{}) types.ChunkMetadata {
	var meta types.ChunkMetadata
	if v, ok := m["source"].(string); ok {
		meta.Source = v
	}
	if v, ok := m["policy_type"].(string); ok {
		meta.PolicyType = v
	}
	if v, ok := m["section"].(string); ok {
		meta.Section = v
	}
	return meta
}
