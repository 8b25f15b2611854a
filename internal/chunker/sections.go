package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Section is a contiguous span of a document between two detected
// headers. Sections only exist while chunking; they are not persisted.
type Section struct {
	Title string
	Body  string
}

// SplitSections partitions raw document text into titled sections using
// lightweight header heuristics. A line is treated as a header when,
// after trimming, it starts with "##", is a short all-caps line, or is
// a short line ending with ":". Text before the first header is titled
// "General". Sections whose body trims to nothing are dropped.
func SplitSections(text string) []Section {
	type rawSection struct {
		title string
		lines []string
	}

	var sections []rawSection
	currentTitle := "General"
	var buffer []string

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		sections = append(sections, rawSection{title: currentTitle, lines: buffer})
		buffer = nil
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			// Keep blank lines so paragraph breaks survive into chunks.
			buffer = append(buffer, "")
			continue
		}
		if isHeaderLine(line) {
			flush()
			title := strings.TrimSpace(strings.TrimLeft(line, "#"))
			// "Returns:" labels the section "Returns".
			title = strings.TrimSpace(strings.TrimSuffix(title, ":"))
			if title == "" {
				title = "General"
			}
			currentTitle = title
			continue
		}
		buffer = append(buffer, rawLine)
	}
	flush()

	result := make([]Section, 0, len(sections))
	for _, s := range sections {
		body := strings.TrimSpace(strings.Join(s.lines, "\n"))
		if body == "" {
			continue
		}
		result = append(result, Section{Title: s.title, Body: body})
	}
	return result
}

func isHeaderLine(line string) bool {
	if strings.HasPrefix(line, "##") {
		return true
	}
	n := utf8.RuneCountInString(line)
	if isAllUpper(line) && n >= 3 && n <= 80 {
		return true
	}
	if strings.HasSuffix(line, ":") && n <= 80 {
		return true
	}
	return false
}

// isAllUpper reports whether the string has at least one cased rune and
// no lowercase runes.
func isAllUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
