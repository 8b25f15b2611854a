package llm

import "context"

// Completer sends a prompt to a language model and returns its text
// response. One opaque call; no streaming, no retry.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
