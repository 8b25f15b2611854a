package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/uday3756/rag-assignment/internal/chunker"
	"github.com/uday3756/rag-assignment/internal/config"
	"github.com/uday3756/rag-assignment/internal/embedding"
	"github.com/uday3756/rag-assignment/internal/llm"
	"github.com/uday3756/rag-assignment/internal/pipeline"
	"github.com/uday3756/rag-assignment/internal/prompt"
	"github.com/uday3756/rag-assignment/internal/retriever"
	"github.com/uday3756/rag-assignment/internal/vectorstore"
)

// Server exposes the pipeline over HTTP.
type Server struct {
	pipeline *pipeline.Pipeline
	logger   zerolog.Logger
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := config.LoadConfig(os.Getenv("RAG_CONFIG"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	index, err := vectorstore.NewChromaIndex(cfg.ChromaDB.URL, cfg.ChromaDB.Collection, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create vector index")
	}

	embedder := embedding.NewOllamaProvider(cfg.Embedding.BaseURL, cfg.Embedding.Model)
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

	server := &Server{
		pipeline: pipeline.NewPipeline(chk, rtv, completer, logger),
		logger:   logger,
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: server.routes(),
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/ingest", s.ingestHandler)
	mux.HandleFunc("/ask", s.askHandler)
	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

type ingestRequest struct {
	Dir string `json:"dir"`
}

// POST /ingest  { "dir": "path/to/policies" }
func (s *Server) ingestHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Dir == "" {
		http.Error(w, "dir is required", http.StatusBadRequest)
		return
	}

	count, err := s.pipeline.Ingest(r.Context(), req.Dir)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyCorpus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error().Err(err).Msg("ingestion failed")
		http.Error(w, "ingestion failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"chunks_indexed": count,
	})
}

type askRequest struct {
	Question string `json:"question"`
	Variant  string `json:"variant,omitempty"`
	TopK     int    `json:"top_k,omitempty"`
}

// POST /ask  { "question": "...", "variant": "grounded", "top_k": 5 }
func (s *Server) askHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	variant := prompt.Variant(req.Variant)
	switch variant {
	case prompt.Baseline, prompt.Grounded:
	case "":
		variant = prompt.Grounded
	default:
		http.Error(w, "unknown variant", http.StatusBadRequest)
		return
	}

	answer, err := s.pipeline.Answer(r.Context(), req.Question, variant, req.TopK)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to answer question")
		http.Error(w, "failed to answer question", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(answer)
}
