package benchmark

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const referencePromptTemplate = `You are a helpful assistant whose sole purpose is to answer questions
based ONLY on the provided context. Do NOT use any prior knowledge.
If the answer cannot be found in the context, state "The information needed to answer this question is not available in the document."

Context:
---
%s
---

Question:
%s

Answer:
`

// Usecase generates a reference answer from the whole ingested document and
// scores candidate answers against it by semantic similarity.
type Usecase struct {
	llm       LLMConnector
	evaluator *Evaluator
	sessions  BenchmarkStore
	logger    *zap.Logger
}

// NewUsecase creates a new benchmark use case
func NewUsecase(
	llm LLMConnector,
	embedder Embedder,
	sessions BenchmarkStore,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		llm:       llm,
		evaluator: NewEvaluator(embedder, logger),
		sessions:  sessions,
		logger:    logger,
	}
}

// GenerateReference produces the benchmark answer for a question from the
// full document text, with no retrieval step. Documents exceeding the
// model's context window are a known limitation and not handled here.
func (uc *Usecase) GenerateReference(ctx context.Context, question string) (string, error) {
	state, ok := uc.sessions.Get()
	if !ok || state.DocumentText == "" {
		return "", entity.ErrNoDocument
	}

	prompt := fmt.Sprintf(referencePromptTemplate, state.DocumentText, question)

	answer, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generate reference answer: %w", err)
	}
	answer = strings.TrimSpace(answer)

	uc.sessions.SetBenchmark(question, answer)

	ctxzap.Info(ctx, "reference answer generated",
		zap.Int("document_length", len(state.DocumentText)),
		zap.Int("answer_length", len(answer)),
	)

	return answer, nil
}

// Evaluate generates the reference answer for the question and scores every
// candidate against it. A failing candidate scores zero instead of aborting
// the batch.
func (uc *Usecase) Evaluate(ctx context.Context, req *entity.EvaluateRequest) (*entity.EvaluateResponse, error) {
	reference, err := uc.GenerateReference(ctx, req.Question)
	if err != nil {
		return nil, err
	}

	scores := make([]entity.CandidateScore, len(req.Candidates))
	bestID := ""
	bestTotal := 0.0
	for i, candidate := range req.Candidates {
		score := uc.evaluator.Score(ctx, candidate.Answer, reference)
		scores[i] = entity.CandidateScore{
			ID:          candidate.ID,
			Similarity:  score.Similarity,
			Correctness: score.Correctness,
			Total:       score.Total,
		}
		// Strict comparison: ties keep the first-seen candidate.
		if bestID == "" || score.Total > bestTotal {
			bestID = candidate.ID
			bestTotal = score.Total
		}
	}

	ctxzap.Info(ctx, "candidates evaluated",
		zap.Int("candidate_count", len(scores)),
		zap.String("best_id", bestID),
	)

	return &entity.EvaluateResponse{
		ReferenceAnswer: reference,
		Scores:          scores,
		BestID:          bestID,
	}, nil
}
