package query

import (
	"context"

	"github.com/docuquery/rag-backend/internal/entity"
)

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type VectorSearcher interface {
	Search(ctx context.Context, vector []float32, k int, filter *entity.SearchFilter) ([]entity.RetrievalResult, error)
}

type LLMConnector interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type RerankConnector interface {
	Rerank(ctx context.Context, query string, documents []string) ([]entity.RerankScore, error)
}

type BenchmarkStore interface {
	SetLastQuery(query string)
}
