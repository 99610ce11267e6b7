package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic application information.
type AppInfo struct {
	Name        string `yaml:"name"`        // application name
	Version     string `yaml:"version"`     // application version
	Environment string `yaml:"environment"` // "development" or "production"
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn" or "error"
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Address string `yaml:"address"` // listen address, e.g. ":8080"
}

// PostgresConfig configures the pgvector-backed store.
type PostgresConfig struct {
	URL          string `yaml:"url"`          // connection string; DATABASE_URL overrides
	MaxOpenConns int    `yaml:"maxOpenConns"` // connection pool upper bound
	EmbeddingDim int    `yaml:"embeddingDim"` // fixed vector dimension of the store
}

// ModelConfig configures one model capability (embedding or generation).
type ModelConfig struct {
	Provider string `yaml:"provider"` // "ollama" or "openai"
	Model    string `yaml:"model"`    // model name
	BaseURL  string `yaml:"baseURL"`  // backend address, provider default when empty
	APIKey   string `yaml:"apiKey"`   // provider API key where needed
}

// ChunkingConfig configures document splitting.
type ChunkingConfig struct {
	ChunkSize          int  `yaml:"chunkSize"`
	ChunkOverlap       int  `yaml:"chunkOverlap"`
	PreserveParagraphs bool `yaml:"preserveParagraphs"`
}

// RetrievalConfig configures similarity search.
type RetrievalConfig struct {
	MaxResults          int     `yaml:"maxResults"`
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
}

// AppConfig is the root of the YAML configuration file. It is loaded once at
// startup and passed by value into constructors; components never read
// process state themselves.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Logger    LoggerConfig    `yaml:"logger"`
	Server    ServerConfig    `yaml:"server"`
	Database  PostgresConfig  `yaml:"database"`
	Embedding ModelConfig     `yaml:"embedding"`
	LLM       ModelConfig     `yaml:"llm"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
}

// LoadConfig reads and parses the YAML configuration file, applies defaults
// and environment overrides, and validates the result.
func LoadConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := &AppConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.EmbeddingDim <= 0 {
		c.Database.EmbeddingDim = 1024
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "ollama"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "nomic-embed-text"
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemma3:1b"
	}
	if c.Chunking.ChunkSize <= 0 {
		c.Chunking.ChunkSize = 1000
		c.Chunking.ChunkOverlap = 200
		c.Chunking.PreserveParagraphs = true
	}
	if c.Retrieval.MaxResults <= 0 {
		c.Retrieval.MaxResults = 5
	}
	if c.Retrieval.SimilarityThreshold <= 0 {
		c.Retrieval.SimilarityThreshold = 0.7
	}
}

// applyEnvOverrides lets deployment secrets stay out of the config file.
func (c *AppConfig) applyEnvOverrides() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		if c.Embedding.Provider == "ollama" {
			c.Embedding.BaseURL = v
		}
		if c.LLM.Provider == "ollama" {
			c.LLM.BaseURL = v
		}
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		if c.Embedding.Provider == "openai" {
			c.Embedding.APIKey = v
		}
		if c.LLM.Provider == "openai" {
			c.LLM.APIKey = v
		}
	}
}

func (c *AppConfig) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is not configured: set database.url or DATABASE_URL")
	}
	if c.Chunking.ChunkOverlap < 0 {
		return fmt.Errorf("chunking.chunkOverlap must not be negative")
	}
	if c.Retrieval.SimilarityThreshold > 1 {
		return fmt.Errorf("retrieval.similarityThreshold must be at most 1")
	}
	if c.Retrieval.MaxResults > 20 {
		return fmt.Errorf("retrieval.maxResults must be at most 20")
	}
	return nil
}
