package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	ChromaDB  ChromaDBConfig  `mapstructure:"chromadb"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Embedding EmbeddingConfig `mapstructure:"embeddings"`
	Chunking  ChunkingConfig  `mapstructure:"chunking"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
}

// ServerConfig holds HTTP server related configuration
type ServerConfig struct {
	Port  int    `mapstructure:"port"`
	Host  string `mapstructure:"host"`
	Debug bool   `mapstructure:"debug"`
}

// ChromaDBConfig holds ChromaDB related configuration
type ChromaDBConfig struct {
	URL        string `mapstructure:"url"`
	Collection string `mapstructure:"collection"`
}

// LLMConfig holds completion model related configuration
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// EmbeddingConfig holds embedding related configuration
type EmbeddingConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	BatchSize int    `mapstructure:"batch_size"`
}

// ChunkingConfig holds document chunking related configuration
type ChunkingConfig struct {
	ChunkSize int `mapstructure:"chunk_size"`
	Overlap   int `mapstructure:"overlap"`
}

// RetrievalConfig holds retrieval related configuration
type RetrievalConfig struct {
	TopK        int     `mapstructure:"top_k"`
	MaxDistance float64 `mapstructure:"max_distance"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("RAG")
	v.AutomaticEnv()
	v.BindEnv("llm.api_key", "ANTHROPIC_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.debug", false)

	v.SetDefault("chromadb.url", "http://localhost:8000")
	v.SetDefault("chromadb.collection", "policy_chunks")

	// LLM defaults
	v.SetDefault("llm.model", "claude-3-5-sonnet-20241022")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.timeout", "2m")

	// Embedding defaults
	v.SetDefault("embeddings.base_url", "http://localhost:11434")
	v.SetDefault("embeddings.model", "nomic-embed-text")
	v.SetDefault("embeddings.batch_size", 32)

	// Chunking defaults: 512 chars with 50 overlap balances retrieval
	// specificity against enough surrounding context for the embedding.
	v.SetDefault("chunking.chunk_size", 512)
	v.SetDefault("chunking.overlap", 50)

	// Retrieval defaults
	v.SetDefault("retrieval.top_k", 5)
	v.SetDefault("retrieval.max_distance", 0.8)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("missing ANTHROPIC_API_KEY: set it in the environment or a .env file")
	}
	if c.ChromaDB.URL == "" {
		return fmt.Errorf("chromadb url is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.Chunking.ChunkSize)
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("overlap must be in [0, chunk_size), got %d", c.Chunking.Overlap)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.Retrieval.TopK)
	}
	return nil
}
