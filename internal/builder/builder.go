package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/docuquery/rag-backend/internal/api"
	benchmarkapi "github.com/docuquery/rag-backend/internal/api/benchmark"
	documentapi "github.com/docuquery/rag-backend/internal/api/document"
	queryapi "github.com/docuquery/rag-backend/internal/api/query"
	"github.com/docuquery/rag-backend/internal/config"
	"github.com/docuquery/rag-backend/internal/integration/embedding"
	"github.com/docuquery/rag-backend/internal/integration/extractor"
	"github.com/docuquery/rag-backend/internal/integration/llm"
	"github.com/docuquery/rag-backend/internal/integration/rerank"
	"github.com/docuquery/rag-backend/internal/pkg/chunker"
	"github.com/docuquery/rag-backend/internal/pkg/validator"
	"github.com/docuquery/rag-backend/internal/repository"
	"github.com/docuquery/rag-backend/internal/usecase/benchmark"
	"github.com/docuquery/rag-backend/internal/usecase/ingest"
	"github.com/docuquery/rag-backend/internal/usecase/query"
	"github.com/docuquery/rag-backend/internal/vectorstore"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// VectorStore is the full surface both store implementations provide.
type VectorStore interface {
	ingest.VectorStore
	query.VectorSearcher
}

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Initialize chunker
	textChunker, err := chunker.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("setup chunker: %w", err)
	}

	// Initialize benchmark state store
	benchmarkCache := repository.NewBenchmarkCache()

	// Initialize external service connectors (with mock support)
	var extractorConnector ingest.Extractor
	var embedderConnector ingest.Embedder
	var llmConnector query.LLMConnector
	var rerankConnector query.RerankConnector
	var store VectorStore

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		extractorConnector = extractor.NewMockConnector(logger)
		embedderConnector = embedding.NewMockConnector(cfg.QdrantCfg.Dimension, logger)
		llmConnector = llm.NewMockConnector(logger)
		rerankConnector = rerank.NewMockConnector(logger)
		store = vectorstore.NewMemoryStore(logger)
	} else {
		logger.Info("Using real connectors for external services")
		extractorConnector = extractor.NewConnector(cfg.ExtractorCfg, logger)
		embedderConnector = embedding.NewConnector(cfg.EmbedderCfg, logger)
		llmConnector = llm.NewConnector(cfg.LLMCfg, logger)
		rerankConnector = rerank.NewConnector(cfg.RerankerCfg, logger)
		store = vectorstore.NewQdrantStore(cfg.QdrantCfg, logger)
	}

	// Bootstrap the vector collection. Destructive: a restart starts from an
	// empty index, matching the benchmark slot which is not persisted either.
	setupCtx := ctxzap.ToContext(context.Background(), logger)
	if err := store.Recreate(setupCtx); err != nil {
		return nil, fmt.Errorf("setup vector collection: %w", err)
	}
	logger.Info("Vector collection ready",
		zap.String("collection", cfg.QdrantCfg.Collection),
		zap.Int("dimension", cfg.QdrantCfg.Dimension),
	)

	// Initialize validators
	fileValidator := validator.NewFileValidator(cfg.FileUploadCfg)
	logger.Info("Validators initialized")

	// Initialize use cases
	ingestUC := ingest.NewUsecase(
		extractorConnector,
		textChunker,
		embedderConnector,
		store,
		benchmarkCache,
		logger,
	)

	queryUC := query.NewUsecase(
		embedderConnector,
		store,
		llmConnector,
		rerankConnector,
		benchmarkCache,
		logger,
	)

	benchmarkUC := benchmark.NewUsecase(
		llmConnector,
		embedderConnector,
		benchmarkCache,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	documentHandler := documentapi.NewHandler(ingestUC, fileValidator, cfg.FileUploadCfg)
	queryHandler := queryapi.NewHandler(queryUC)
	benchmarkHandler := benchmarkapi.NewHandler(benchmarkUC)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(documentHandler, queryHandler, benchmarkHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}
