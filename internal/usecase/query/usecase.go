package query

import (
	"context"
	"fmt"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase answers questions through one of three interchangeable retrieval
// strategies. Retrieval differs per strategy; the grounded answering step
// is shared. No state survives between requests and nothing is retried:
// any external failure surfaces to the caller.
type Usecase struct {
	llm       LLMConnector
	sessions  BenchmarkStore
	basic     Strategy
	selfQuery Strategy
	rerank    Strategy
	logger    *zap.Logger
}

// NewUsecase creates a new query use case
func NewUsecase(
	embedder Embedder,
	store VectorSearcher,
	llm LLMConnector,
	reranker RerankConnector,
	sessions BenchmarkStore,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		llm:       llm,
		sessions:  sessions,
		basic:     &basicStrategy{embedder: embedder, store: store},
		selfQuery: &selfQueryStrategy{llm: llm, embedder: embedder, store: store},
		rerank:    &rerankStrategy{embedder: embedder, store: store, reranker: reranker},
		logger:    logger,
	}
}

// Answer runs the basic similarity pipeline.
func (uc *Usecase) Answer(ctx context.Context, question string) (*entity.AskResult, error) {
	return uc.answer(ctx, question, uc.basic)
}

// AnswerWithSelfQuery runs the self-query pipeline: the LLM first extracts
// a structured search intent, then retrieval is filtered by it.
func (uc *Usecase) AnswerWithSelfQuery(ctx context.Context, question string) (*entity.AskResult, error) {
	return uc.answer(ctx, question, uc.selfQuery)
}

// AnswerWithRerank runs the rerank pipeline: over-fetched candidates are
// rescored by the external reranker before grounding.
func (uc *Usecase) AnswerWithRerank(ctx context.Context, question string) (*entity.AskResult, error) {
	return uc.answer(ctx, question, uc.rerank)
}

func (uc *Usecase) answer(ctx context.Context, question string, strategy Strategy) (*entity.AskResult, error) {
	uc.sessions.SetLastQuery(question)

	retrieved, err := strategy.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "context retrieved",
		zap.Int("source_count", len(retrieved.Sources)),
		zap.Int("context_length", len(retrieved.Context)),
	)

	answer, err := uc.llm.Generate(ctx, buildGroundingPrompt(retrieved.Context, question))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &entity.AskResult{
		Answer:       answer,
		Context:      retrieved.Context,
		Sources:      retrieved.Sources,
		FiltersUsed:  retrieved.FiltersUsed,
		RerankScores: retrieved.RerankScores,
	}, nil
}
