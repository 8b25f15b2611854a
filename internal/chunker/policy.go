package chunker

import (
	"path/filepath"
	"strings"
	"unicode"
)

// PolicyType derives a display label from a document filename:
// "refund_policy.txt" becomes "Refund".
func PolicyType(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	base = strings.TrimSuffix(base, "_policy")
	base = strings.ReplaceAll(base, "_", " ")
	return titleCase(strings.TrimSpace(base))
}

func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
