package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/docuquery/rag-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Chunking configuration
	ChunkSize    int `env:"CHUNK_SIZE" envDefault:"200"`
	ChunkOverlap int `env:"CHUNK_OVERLAP" envDefault:"50"`

	// Vector index configuration
	QdrantCfg QdrantConfig `envPrefix:"QDRANT_"`

	// External service configurations
	EmbedderCfg  EmbedderConnectorConfig  `envPrefix:"EMBEDDER_"`
	LLMCfg       LLMConfig                `envPrefix:"LLM_"`
	RerankerCfg  RerankConnectorConfig    `envPrefix:"RERANKER_"`
	ExtractorCfg ExtractorConnectorConfig `envPrefix:"EXTRACTOR_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// QdrantConfig holds the vector index connection and collection settings.
type QdrantConfig struct {
	HTTPClientConfig
	Collection string `env:"COLLECTION" envDefault:"pdf_chunks"`
	Dimension  int    `env:"DIMENSION" envDefault:"384"`
}

type EmbedderConnectorConfig struct {
	HTTPClientConfig
	EmbedEndpoint string               `env:"EMBED_ENDPOINT" envDefault:"/embed"`
	Retry         pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// LLMConfig configures the OpenAI-compatible chat completion client.
type LLMConfig struct {
	BaseURL        string        `env:"BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	APIKey         string        `env:"API_KEY"`
	Model          string        `env:"MODEL" envDefault:"llama3-70b-8192"`
	RequestTimeout time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

type RerankConnectorConfig struct {
	HTTPClientConfig
	RerankEndpoint string               `env:"ENDPOINT" envDefault:"/v1/rerank"`
	Model          string               `env:"MODEL" envDefault:"jina-reranker-v1-base-en"`
	Retry          pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type ExtractorConnectorConfig struct {
	HTTPClientConfig
	ExtractEndpoint string               `env:"ENDPOINT" envDefault:"/extract"`
	Retry           pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"26214400"`   // 25 MiB
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB multipart memory
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.ChunkSize < 1 {
		errors = append(errors, fmt.Sprintf("CHUNK_SIZE must be at least 1, got %d", cfg.ChunkSize))
	}

	// An overlap >= chunk size would make the chunking step non-positive and
	// the window would never advance.
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		errors = append(errors, fmt.Sprintf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", cfg.ChunkOverlap))
	}

	if cfg.QdrantCfg.Dimension < 1 {
		errors = append(errors, fmt.Sprintf("QDRANT_DIMENSION must be positive, got %d", cfg.QdrantCfg.Dimension))
	}

	// Real connectors need their endpoints; in mock mode they stay unused.
	if !cfg.EnableMocks {
		if cfg.QdrantCfg.Url == "" {
			errors = append(errors, "QDRANT_SERVICE_URL is required when mocks are disabled")
		}
		if cfg.EmbedderCfg.Url == "" {
			errors = append(errors, "EMBEDDER_SERVICE_URL is required when mocks are disabled")
		}
		if cfg.RerankerCfg.Url == "" {
			errors = append(errors, "RERANKER_SERVICE_URL is required when mocks are disabled")
		}
		if cfg.ExtractorCfg.Url == "" {
			errors = append(errors, "EXTRACTOR_SERVICE_URL is required when mocks are disabled")
		}
		if cfg.LLMCfg.APIKey == "" {
			errors = append(errors, "LLM_API_KEY is required when mocks are disabled")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
