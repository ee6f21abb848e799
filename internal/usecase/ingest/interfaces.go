package ingest

import (
	"context"

	"github.com/docuquery/rag-backend/internal/entity"
)

type Extractor interface {
	ExtractPages(ctx context.Context, content []byte, filename string) ([]entity.PageText, error)
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type VectorStore interface {
	Recreate(ctx context.Context) error
	Upload(ctx context.Context, chunks []entity.Chunk) error
}

type BenchmarkStore interface {
	SetDocument(text string)
}
