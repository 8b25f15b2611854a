package types

// Chunk represents one retrieval unit cut from a policy document.
// Immutable once produced by the chunker.
type Chunk struct {
	Content    string `json:"content"`
	Source     string `json:"source"`
	PolicyType string `json:"policy_type"`
	Section    string `json:"section"`
}

// Document is a raw policy document as loaded from disk.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ChunkMetadata is the metadata stored alongside each chunk in the
// vector index and returned with every retrieval hit.
type ChunkMetadata struct {
	Source     string `json:"source"`
	PolicyType string `json:"policy_type"`
	Section    string `json:"section"`
}

// RetrievalResult is a single ranked hit for a query. Distance is the
// cosine distance reported by the index (0 = identical, 2 = opposite).
type RetrievalResult struct {
	Content  string        `json:"content"`
	Distance float64       `json:"distance"`
	Metadata ChunkMetadata `json:"metadata"`
}

// StructuredAnswer is the pipeline's output for one question.
type StructuredAnswer struct {
	Answer     string            `json:"answer"`
	Sources    string            `json:"sources"`
	Confidence string            `json:"confidence"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
