package prompt

import (
	"fmt"
	"strings"

	"github.com/uday3756/rag-assignment/internal/types"
)

// Variant selects which prompt format the pipeline renders and how the
// model's response is interpreted.
type Variant string

const (
	// Baseline is a short unstructured prompt with no citation or
	// refusal instructions. Kept as a weak comparison point; its
	// responses are returned verbatim.
	Baseline Variant = "baseline"

	// Grounded restricts the model to the supplied documents and
	// demands a tagged, parseable response with sources and a
	// confidence label.
	Grounded Variant = "grounded"
)

// Refusal is the exact phrase the grounded prompt mandates when the
// documents do not contain the answer. The pipeline emits it verbatim
// when retrieval finds nothing; downstream consumers match on it.
const Refusal = "I don't have information about that in the provided policies."

// NoContext is emitted in place of the context blocks when no chunks
// were supplied.
const NoContext = "No relevant documents found."

// Build renders the prompt for the given variant.
func Build(variant Variant, query string, chunks []types.RetrievalResult) string {
	if variant == Baseline {
		return buildBaseline(query, chunks)
	}
	return buildGrounded(query, chunks)
}

func buildBaseline(query string, chunks []types.RetrievalResult) string {
	var b strings.Builder
	b.WriteString("You are a helpful customer service assistant. Answer the following question ")
	b.WriteString("based on the provided policy documents.\n\n")
	fmt.Fprintf(&b, "Question: %s\n\n", query)
	fmt.Fprintf(&b, "Policy Documents:\n%s\n\n", FormatContext(chunks))
	b.WriteString("Answer:")
	return b.String()
}

func buildGrounded(query string, chunks []types.RetrievalResult) string {
	var b strings.Builder
	b.WriteString("<instructions>\n")
	b.WriteString("1) Answer using ONLY the provided policy documents.\n")
	fmt.Fprintf(&b, "2) If the documents do not contain the information, say %q\n", Refusal)
	b.WriteString("3) Always cite sources by filename and section.\n")
	b.WriteString("4) Provide a confidence level: High, Medium, or Low.\n")
	b.WriteString("5) Maintain a professional, concise tone.\n")
	b.WriteString("</instructions>\n\n")
	fmt.Fprintf(&b, "<question>%s</question>\n\n", query)
	fmt.Fprintf(&b, "<policy_documents>\n%s\n</policy_documents>\n\n", FormatContext(chunks))
	b.WriteString("<response>\n")
	b.WriteString("<answer></answer>\n")
	b.WriteString("<sources></sources>\n")
	b.WriteString("<confidence></confidence>\n")
	b.WriteString("</response>")
	return b.String()
}

// FormatContext renders retrieved chunks as numbered blocks with their
// source, policy type and section, separated by blank lines.
func FormatContext(chunks []types.RetrievalResult) string {
	if len(chunks) == 0 {
		return NoContext
	}

	blocks := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		source := chunk.Metadata.Source
		if source == "" {
			source = "unknown"
		}
		policyType := chunk.Metadata.PolicyType
		if policyType == "" {
			policyType = "Policy"
		}
		section := chunk.Metadata.Section
		if section == "" {
			section = "General"
		}
		blocks = append(blocks, fmt.Sprintf("[%d] Source: %s | Policy: %s | Section: %s\n%s",
			i+1, source, policyType, section, chunk.Content))
	}
	return strings.Join(blocks, "\n\n")
}
