package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/uday3756/rag-assignment/internal/chunker"
	"github.com/uday3756/rag-assignment/internal/llm"
	"github.com/uday3756/rag-assignment/internal/prompt"
	"github.com/uday3756/rag-assignment/internal/retriever"
	"github.com/uday3756/rag-assignment/internal/types"
)

// ErrEmptyCorpus is returned by Ingest when the document directory
// yields no chunkable content.
var ErrEmptyCorpus = errors.New("no valid documents found to ingest")

// Pipeline sequences ingestion and question answering.
type Pipeline struct {
	chunker   *chunker.Chunker
	retriever *retriever.Retriever
	completer llm.Completer
	logger    zerolog.Logger
}

// NewPipeline wires the chunker, retriever and completion provider
// into one pipeline.
func NewPipeline(c *chunker.Chunker, r *retriever.Retriever, completer llm.Completer, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		chunker:   c,
		retriever: r,
		completer: completer,
		logger:    logger,
	}
}

// Ingest chunks every document under dir, embeds the chunks and stores
// them in the index. It is a one-shot batch: the corpus is re-ingested
// wholesale, never updated incrementally.
func (p *Pipeline) Ingest(ctx context.Context, dir string) (int, error) {
	chunks, err := p.chunker.ChunkDocuments(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to chunk documents: %w", err)
	}
	if len(chunks) == 0 {
		return 0, ErrEmptyCorpus
	}

	p.logger.Info().Int("chunks", len(chunks)).Str("dir", dir).Msg("chunked documents")

	if err := p.retriever.Index(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Answer retrieves evidence for the question, prompts the model and
// returns a structured answer. When retrieval finds nothing the canned
// refusal is returned with Low confidence and no model call is made.
// Model failures propagate to the caller unchanged.
func (p *Pipeline) Answer(ctx context.Context, question string, variant prompt.Variant, topK int) (types.StructuredAnswer, error) {
	retrieved, err := p.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		return types.StructuredAnswer{}, err
	}
	if len(retrieved) == 0 {
		return types.StructuredAnswer{
			Answer:     prompt.Refusal,
			Sources:    "",
			Confidence: "Low",
			Metadata:   map[string]string{"reason": "no_relevant_docs"},
		}, nil
	}

	rendered := prompt.Build(variant, question, retrieved)

	response, err := p.completer.Complete(ctx, rendered)
	if err != nil {
		return types.StructuredAnswer{}, err
	}

	if variant == prompt.Baseline {
		return types.StructuredAnswer{
			Answer:   strings.TrimSpace(response),
			Metadata: map[string]string{"raw_response": response},
		}, nil
	}

	parsed := prompt.ParseGrounded(response)
	answer := parsed.Answer
	if answer == "" {
		// The user never sees a blank answer: fall back to the raw text.
		answer = strings.TrimSpace(response)
	}
	return types.StructuredAnswer{
		Answer:     answer,
		Sources:    parsed.Sources,
		Confidence: parsed.Confidence,
		Metadata:   map[string]string{"raw_response": response},
	}, nil
}
