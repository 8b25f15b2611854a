package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	c := NewChunker()

	chunks := c.ChunkText("A short policy paragraph.")

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "A short policy paragraph." {
		t.Fatalf("unexpected chunk: %q", chunks[0])
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	c := NewChunker()

	if got := c.ChunkText(""); len(got) != 0 {
		t.Fatalf("expected 0 chunks for empty input, got %d", len(got))
	}
	if got := c.ChunkText("   \n  "); len(got) != 1 && len(got) != 0 {
		// Whitespace-only input produces no non-empty chunks.
		t.Fatalf("expected no content chunks, got %v", got)
	}
}

func TestChunkText_PrefersSentenceBoundary(t *testing.T) {
	c := NewChunker().WithChunkSize(30).WithOverlap(5)
	text := "A bb cc. Dd ee ff gg. Hh iiii jj kk ll."

	chunks := c.ChunkText(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "A bb cc. Dd ee ff gg." {
		t.Fatalf("expected first chunk to end at a sentence boundary, got %q", chunks[0])
	}
}

func TestChunkText_FallsBackToSpace(t *testing.T) {
	// No sentence terminator in the first window, so the chunk breaks
	// at the last space instead of mid-word.
	c := NewChunker().WithChunkSize(20).WithOverlap(4)
	text := "alpha beta gamma delta epsilon zeta"

	chunks := c.ChunkText(text)

	for _, chunk := range chunks[:len(chunks)-1] {
		last := chunk[strings.LastIndex(chunk, " ")+1:]
		if !strings.Contains(text, " "+last+" ") && !strings.HasSuffix(text, last) {
			t.Fatalf("chunk %q appears to cut a word", chunk)
		}
	}
}

func TestChunkText_HardCutWithoutSpaces(t *testing.T) {
	c := NewChunker()
	text := strings.Repeat("a", 1200)

	chunks := c.ChunkText(text)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 512 {
		t.Fatalf("expected a hard cut at 512, got %d", len(chunks[0]))
	}
}

func TestChunkText_CoversAllSentences(t *testing.T) {
	c := NewChunker()

	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "Sentence number %d carries some policy detail. ", i)
	}
	text := strings.TrimSpace(b.String())

	chunks := c.ChunkText(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for long text, got %d", len(chunks))
	}
	joined := strings.Join(chunks, "\n")
	for i := 0; i < 60; i++ {
		sentence := fmt.Sprintf("Sentence number %d carries some policy detail.", i)
		if !strings.Contains(joined, sentence) {
			t.Fatalf("sentence %d missing from chunk output", i)
		}
	}

	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			t.Fatal("emitted an empty chunk")
		}
		if utf8.RuneCountInString(chunk) > 512 {
			t.Fatalf("chunk exceeds window size: %d runes", utf8.RuneCountInString(chunk))
		}
		if !strings.Contains(text, chunk) {
			t.Fatalf("chunk is not a substring of the source: %q", chunk)
		}
	}
}

func TestPolicyType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"refund_policy.txt", "Refund"},
		{"shipping_policy.txt", "Shipping"},
		{"cancellation_policy.txt", "Cancellation"},
		{"terms_of_service.txt", "Terms Of Service"},
		{"FAQ.txt", "Faq"},
		{"privacy_policy", "Privacy"},
	}
	for _, tt := range tests {
		if got := PolicyType(tt.filename); got != tt.want {
			t.Errorf("PolicyType(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestLoadDocuments_FiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "refund_policy.txt", "refund text")
	writeFile(t, dir, "notes.md", "ignored")
	writeFile(t, dir, "SHIPPING_POLICY.TXT", "shipping text")

	docs, err := LoadDocuments(dir)
	if err != nil {
		t.Fatalf("LoadDocuments failed: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}

func TestChunkDocuments_CarriesMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "refund_policy.txt", "Returns:\nYou have 30 days to return a product.\n")

	chunks, err := NewChunker().ChunkDocuments(dir)
	if err != nil {
		t.Fatalf("ChunkDocuments failed: %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	chunk := chunks[0]
	if chunk.Source != "refund_policy.txt" {
		t.Errorf("expected source 'refund_policy.txt', got %q", chunk.Source)
	}
	if chunk.PolicyType != "Refund" {
		t.Errorf("expected policy type 'Refund', got %q", chunk.PolicyType)
	}
	if chunk.Section != "Returns" {
		t.Errorf("expected section 'Returns', got %q", chunk.Section)
	}
	if !strings.Contains(chunk.Content, "30 days") {
		t.Errorf("expected content to mention '30 days', got %q", chunk.Content)
	}
}

func TestChunkDocuments_EmptyDir(t *testing.T) {
	chunks, err := NewChunker().ChunkDocuments(t.TempDir())
	if err != nil {
		t.Fatalf("ChunkDocuments failed: %v", err)
	}
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
