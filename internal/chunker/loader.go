package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uday3756/rag-assignment/internal/types"
)

// LoadDocuments reads every .txt file directly under dir, in directory
// order. Other files and subdirectories are ignored.
func LoadDocuments(dir string) ([]types.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	var docs []types.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".txt") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read document %s: %w", name, err)
		}
		docs = append(docs, types.Document{Name: name, Text: string(data)})
	}
	return docs, nil
}
