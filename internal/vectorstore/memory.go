package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryIndex is an exact cosine-distance index over an in-memory
// slice. It serves tests and small corpora that do not warrant a
// ChromaDB server.
type MemoryIndex struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryIndex creates an empty MemoryIndex
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Upsert implements VectorIndex.Upsert
func (m *MemoryIndex) Upsert(_ context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, records...)
	return nil
}

// Query implements VectorIndex.Query
func (m *MemoryIndex) Query(_ context.Context, vector []float32, k int) ([]SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]SearchResult, 0, len(m.records))
	for _, rec := range m.records {
		results = append(results, SearchResult{
			Text:     rec.Text,
			Distance: cosineDistance(vector, rec.Embedding),
			Metadata: rec.Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Len reports how many records the index holds
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// cosineDistance returns 1 - cosine similarity, in [0, 2]. Mismatched
// or zero vectors count as maximally distant.
func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 2
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 2
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
