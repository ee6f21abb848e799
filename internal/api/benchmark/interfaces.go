package benchmark

import (
	"context"

	"github.com/docuquery/rag-backend/internal/entity"
)

type BenchmarkUsecase interface {
	Evaluate(ctx context.Context, req *entity.EvaluateRequest) (*entity.EvaluateResponse, error)
}
