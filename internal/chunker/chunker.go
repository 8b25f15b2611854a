package chunker

import (
	"strings"
	"unicode"

	"github.com/uday3756/rag-assignment/internal/types"
)

// Chunker splits policy documents into overlapping, sentence-boundary
// aware windows sized for embedding.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a Chunker with the default 512-character window
// and 50-character overlap.
func NewChunker() *Chunker {
	return &Chunker{
		chunkSize: 512,
		overlap:   50,
	}
}

// WithChunkSize sets the window size in characters
func (c *Chunker) WithChunkSize(size int) *Chunker {
	c.chunkSize = size
	return c
}

// WithOverlap sets how many characters consecutive windows share
func (c *Chunker) WithOverlap(overlap int) *Chunker {
	c.overlap = overlap
	return c
}

// ChunkText splits text into overlapping windows, preferring to end
// each window on a sentence boundary. Every returned chunk is trimmed
// and non-empty.
func (c *Chunker) ChunkText(text string) []string {
	runes := []rune(text)
	length := len(runes)
	if length == 0 {
		return nil
	}

	var chunks []string
	start := 0
	for start < length {
		end := start + c.chunkSize
		if end > length {
			end = length
		}
		if end < length {
			end = c.findBoundary(runes, start, end)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == length {
			break
		}
		start = end - c.overlap
		if start < 0 {
			start = 0
		}
	}
	return chunks
}

// findBoundary adjusts the window end so chunks do not split context
// mid-thought. It prefers the last sentence terminator followed by
// whitespace, provided that leaves the chunk past 60% of the window;
// otherwise it falls back to the last space, and as a last resort keeps
// the hard cut.
func (c *Chunker) findBoundary(runes []rune, start, end int) int {
	window := runes[start:end]

	lastSentence := -1
	for i := 0; i+1 < len(window); i++ {
		if isSentenceEnd(window[i]) && unicode.IsSpace(window[i+1]) {
			lastSentence = i + 2
		}
	}
	if lastSentence > c.chunkSize*6/10 {
		return start + lastSentence
	}

	lastSpace := -1
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == ' ' {
			lastSpace = i
			break
		}
	}
	if lastSpace > 10 {
		return start + lastSpace
	}
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// ChunkDocuments loads every .txt document under dir and returns the
// full corpus as chunks carrying source, policy type and section
// metadata.
func (c *Chunker) ChunkDocuments(dir string) ([]types.Chunk, error) {
	docs, err := LoadDocuments(dir)
	if err != nil {
		return nil, err
	}

	var chunks []types.Chunk
	for _, doc := range docs {
		policyType := PolicyType(doc.Name)
		for _, section := range SplitSections(doc.Text) {
			for _, content := range c.ChunkText(section.Body) {
				chunks = append(chunks, types.Chunk{
					Content:    content,
					Source:     doc.Name,
					PolicyType: policyType,
					Section:    section.Title,
				})
			}
		}
	}
	return chunks, nil
}
