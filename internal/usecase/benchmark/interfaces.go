package benchmark

import (
	"context"

	"github.com/docuquery/rag-backend/internal/entity"
)

type LLMConnector interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

type BenchmarkStore interface {
	Get() (entity.BenchmarkState, bool)
	SetBenchmark(query, answer string)
}
