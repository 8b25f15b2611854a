package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/uday3756/rag-assignment/internal/chunker"
	"github.com/uday3756/rag-assignment/internal/config"
	"github.com/uday3756/rag-assignment/internal/embedding"
	"github.com/uday3756/rag-assignment/internal/eval"
	"github.com/uday3756/rag-assignment/internal/llm"
	"github.com/uday3756/rag-assignment/internal/pipeline"
	"github.com/uday3756/rag-assignment/internal/prompt"
	"github.com/uday3756/rag-assignment/internal/retriever"
	"github.com/uday3756/rag-assignment/internal/vectorstore"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help || flag.NArg() == 0 {
		showHelp()
		if *help {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// The API key usually lives in a .env file next to the binary.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	args := flag.Args()
	subcommand := args[0]
	subcommandArgs := args[1:]

	switch subcommand {
	case "config":
		showConfig(cfg)
	case "ingest":
		handleIngest(cfg, logger, subcommandArgs)
	case "ask":
		handleAsk(cfg, logger, subcommandArgs)
	case "chat":
		handleChat(cfg, logger, subcommandArgs)
	case "eval":
		handleEval(cfg, logger, subcommandArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", subcommand)
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	helpText := `Policy RAG Assistant CLI

Usage:
  rag-assignment [flags] <command> [arguments]

Flags:
  --config string   Path to config file
  --help            Show this help message

Commands:
  config                 Show current configuration
  ingest <dir>           Chunk, embed and index policy documents
  ask <question>         Answer a single question
  chat                   Start interactive chat mode
  eval <dir>             Ingest and score both prompt variants

Ask/chat/eval flags:
  --variant string       Prompt variant: baseline or grounded (default grounded)
  --top-k int            Number of chunks to retrieve (default from config)
`
	fmt.Print(helpText)
}

func showConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Printf("  ChromaDB URL:    %s\n", cfg.ChromaDB.URL)
	fmt.Printf("  Collection:      %s\n", cfg.ChromaDB.Collection)
	fmt.Printf("  Embedding model: %s\n", cfg.Embedding.Model)
	fmt.Printf("  LLM model:       %s\n", cfg.LLM.Model)
	fmt.Printf("  Chunk size:      %d (overlap %d)\n", cfg.Chunking.ChunkSize, cfg.Chunking.Overlap)
	fmt.Printf("  Top-k:           %d (max distance %.2f)\n", cfg.Retrieval.TopK, cfg.Retrieval.MaxDistance)
}

func buildPipeline(cfg *config.Config, logger zerolog.Logger, withProgress bool) (*pipeline.Pipeline, error) {
	var embedder embedding.Embedder = embedding.NewOllamaProvider(cfg.Embedding.BaseURL, cfg.Embedding.Model)
	if withProgress {
		embedder = newProgressEmbedder(embedder)
	}

	index, err := vectorstore.NewChromaIndex(cfg.ChromaDB.URL, cfg.ChromaDB.Collection, logger)
	if err != nil {
		return nil, err
	}

	rtv := retriever.NewRetriever(embedder, index, logger,
		retriever.WithTopK(cfg.Retrieval.TopK),
		retriever.WithMaxDistance(cfg.Retrieval.MaxDistance),
	)

	completer := llm.NewAnthropicProvider(cfg.LLM.APIKey, cfg.LLM.Model,
		llm.WithTemperature(cfg.LLM.Temperature),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
		llm.WithTimeout(cfg.LLM.Timeout),
	)

	chk := chunker.NewChunker().
		WithChunkSize(cfg.Chunking.ChunkSize).
		WithOverlap(cfg.Chunking.Overlap)

	return pipeline.NewPipeline(chk, rtv, completer, logger), nil
}

func handleIngest(cfg *config.Config, logger zerolog.Logger, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: rag-assignment ingest <dir>")
		os.Exit(1)
	}

	p, err := buildPipeline(cfg, logger, true)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	count, err := p.Ingest(context.Background(), args[0])
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to ingest documents")
	}
	fmt.Printf("Ingestion complete: %d chunks indexed.\n", count)
}

func parseAskFlags(name string, cfg *config.Config, args []string) (prompt.Variant, int, []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	variant := fs.String("variant", string(prompt.Grounded), "Prompt variant: baseline or grounded")
	topK := fs.Int("top-k", cfg.Retrieval.TopK, "Number of chunks to retrieve")
	fs.Parse(args)

	switch prompt.Variant(*variant) {
	case prompt.Baseline, prompt.Grounded:
	default:
		fmt.Fprintf(os.Stderr, "Unknown variant %q, expected baseline or grounded\n", *variant)
		os.Exit(1)
	}
	return prompt.Variant(*variant), *topK, fs.Args()
}

func handleAsk(cfg *config.Config, logger zerolog.Logger, args []string) {
	variant, topK, rest := parseAskFlags("ask", cfg, args)
	if len(rest) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: rag-assignment ask [--variant v] [--top-k n] <question>")
		os.Exit(1)
	}
	question := strings.Join(rest, " ")

	p, err := buildPipeline(cfg, logger, false)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	answer, err := p.Answer(context.Background(), question, variant, topK)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to answer question")
	}
	printAnswer(answer.Answer, answer.Sources, answer.Confidence)
}

func handleChat(cfg *config.Config, logger zerolog.Logger, args []string) {
	variant, topK, _ := parseAskFlags("chat", cfg, args)

	p, err := buildPipeline(cfg, logger, false)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	fmt.Println("Ask a question (type 'exit' to quit).")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := p.Answer(context.Background(), question, variant, topK)
		if err != nil {
			logger.Error().Err(err).Msg("failed to answer question")
			continue
		}
		printAnswer(answer.Answer, answer.Sources, answer.Confidence)
	}
}

func handleEval(cfg *config.Config, logger zerolog.Logger, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: rag-assignment eval <dir>")
		os.Exit(1)
	}

	p, err := buildPipeline(cfg, logger, true)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}

	ctx := context.Background()
	if _, err := p.Ingest(ctx, args[0]); err != nil {
		logger.Fatal().Err(err).Msg("failed to ingest documents")
	}

	evaluator := eval.NewEvaluator(p)
	fmt.Println("\nComparison Results:")
	for _, variant := range []prompt.Variant{prompt.Baseline, prompt.Grounded} {
		results, err := evaluator.Run(ctx, variant, cfg.Retrieval.TopK)
		if err != nil {
			logger.Fatal().Err(err).Str("variant", string(variant)).Msg("evaluation failed")
		}
		fmt.Printf("%s: score %d%%, hallucinations %d (correct %d, partial %d, incorrect %d)\n",
			variant, results.Score(), results.Hallucinations,
			results.Correct, results.Partial, results.Incorrect)
	}
}

func printAnswer(answer, sources, confidence string) {
	fmt.Printf("\nAnswer: %s\n", answer)
	if sources != "" {
		fmt.Printf("Sources: %s\n", sources)
	}
	if confidence != "" {
		fmt.Printf("Confidence: %s\n", confidence)
	}
	fmt.Println()
}
