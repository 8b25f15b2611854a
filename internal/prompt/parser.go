package prompt

import (
	"regexp"
	"strings"
)

// Parsed holds the fields extracted from a grounded response.
type Parsed struct {
	Answer     string
	Sources    string
	Confidence string
}

var tagPatterns = map[string]*regexp.Regexp{
	"answer":     tagPattern("answer"),
	"sources":    tagPattern("sources"),
	"confidence": tagPattern("confidence"),
}

func tagPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)<` + tag + `>(.*?)</` + tag + `>`)
}

// ParseGrounded extracts the tagged fields from a grounded response.
// A missing tag pair yields an empty string for that field, never an
// error; the caller decides how to degrade.
func ParseGrounded(response string) Parsed {
	return Parsed{
		Answer:     extractTag(response, "answer"),
		Sources:    extractTag(response, "sources"),
		Confidence: extractTag(response, "confidence"),
	}
}

func extractTag(response, tag string) string {
	match := tagPatterns[tag].FindStringSubmatch(response)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
