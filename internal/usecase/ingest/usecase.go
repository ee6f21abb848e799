package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/pkg/chunker"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase implements document ingestion: extract pages, chunk, embed,
// replace the vector collection, and stash the full text for benchmarking.
type Usecase struct {
	extractor Extractor
	chunker   *chunker.Chunker
	embedder  Embedder
	store     VectorStore
	sessions  BenchmarkStore
	logger    *zap.Logger
}

// NewUsecase creates a new ingestion use case
func NewUsecase(
	extractor Extractor,
	chunker *chunker.Chunker,
	embedder Embedder,
	store VectorStore,
	sessions BenchmarkStore,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		store:     store,
		sessions:  sessions,
		logger:    logger,
	}
}

// Ingest processes one uploaded document end to end. Re-ingestion fully
// replaces the previously indexed document: the collection is recreated,
// not merged.
func (uc *Usecase) Ingest(ctx context.Context, file entity.FileData) (*entity.IngestResult, error) {
	pages, err := uc.extractor.ExtractPages(ctx, file.Content, file.Filename)
	if err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}

	chunks := uc.chunker.Chunk(pages)
	ctxzap.Info(ctx, "document chunked",
		zap.Int("page_count", len(pages)),
		zap.Int("chunk_count", len(chunks)),
	)

	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i := range chunks {
			texts[i] = chunks[i].Text
		}

		// One batched call for the whole document; any failure aborts the
		// ingestion with nothing indexed.
		vectors, err := uc.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks: %w", err)
		}
		if len(vectors) != len(chunks) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
		}
		for i := range chunks {
			chunks[i].Embedding = vectors[i]
		}
	}

	if err := uc.store.Recreate(ctx); err != nil {
		return nil, fmt.Errorf("recreate collection: %w", err)
	}

	if len(chunks) > 0 {
		if err := uc.store.Upload(ctx, chunks); err != nil {
			return nil, fmt.Errorf("upload chunks: %w", err)
		}
	} else {
		ctxzap.Warn(ctx, "document produced no chunks, index left empty")
	}

	uc.sessions.SetDocument(joinPages(pages))

	result := &entity.IngestResult{
		DocumentID: uuid.New().String(),
		Pages:      len(pages),
		Chunks:     len(chunks),
	}

	ctxzap.Info(ctx, "document ingested",
		zap.String("document_id", result.DocumentID),
		zap.Int("page_count", result.Pages),
		zap.Int("chunk_count", result.Chunks),
	)

	return result, nil
}

func joinPages(pages []entity.PageText) string {
	texts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
