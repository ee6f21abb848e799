package benchmark

import (
	"context"
	"math"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/pkg/similarity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Evaluator scores a candidate answer against the reference answer by
// embedding both and comparing cosine similarity.
type Evaluator struct {
	embedder Embedder
	logger   *zap.Logger
}

func NewEvaluator(embedder Embedder, logger *zap.Logger) *Evaluator {
	return &Evaluator{
		embedder: embedder,
		logger:   logger,
	}
}

// Score embeds the pair and returns similarity-based scores rounded to four
// decimals. Empty texts score zero, and any embedding failure is converted
// to a zero score so one bad candidate cannot block the rest of a batch.
// Correctness mirrors similarity; the mean is kept as an aggregation seam
// for a future distinct correctness signal.
func (e *Evaluator) Score(ctx context.Context, candidate, reference string) entity.EvaluationScore {
	if candidate == "" || reference == "" {
		return entity.EvaluationScore{}
	}

	vectors, err := e.embedder.Embed(ctx, []string{candidate, reference})
	if err != nil || len(vectors) != 2 {
		ctxzap.Warn(ctx, "similarity computation failed, scoring zero", zap.Error(err))
		return entity.EvaluationScore{}
	}

	sim := round4(similarity.Cosine(vectors[0], vectors[1]))
	correctness := sim
	total := round4((sim + correctness) / 2)

	return entity.EvaluationScore{
		Similarity:  sim,
		Correctness: correctness,
		Total:       total,
	}
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
