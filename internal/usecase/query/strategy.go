package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	// searchTopK is the number of chunks that ends up in the grounding
	// context.
	searchTopK = 3
	// rerankFetchK over-fetches first-stage candidates for the reranker.
	rerankFetchK = 10
)

// retrievedContext is what a retrieval strategy hands to the shared
// answering step.
type retrievedContext struct {
	Context      string
	Sources      []entity.SourcePayload
	FiltersUsed  map[string]any
	RerankScores []entity.RerankScore
}

// Strategy retrieves grounding context for a question. The three
// implementations are interchangeable; the answering step is shared.
type Strategy interface {
	Retrieve(ctx context.Context, question string) (*retrievedContext, error)
}

// basicStrategy embeds the question and takes the top-k nearest chunks.
type basicStrategy struct {
	embedder Embedder
	store    VectorSearcher
}

func (s *basicStrategy) Retrieve(ctx context.Context, question string) (*retrievedContext, error) {
	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	results, err := s.store.Search(ctx, vectors[0], searchTopK, nil)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	texts := make([]string, len(results))
	sources := make([]entity.SourcePayload, len(results))
	for i, r := range results {
		texts[i] = r.Payload.Text
		sources[i] = r.Payload
	}

	return &retrievedContext{
		Context: joinTexts(texts),
		Sources: sources,
	}, nil
}

// rerankStrategy over-fetches candidates, has an external reranker score
// them, and keeps the most relevant ones.
type rerankStrategy struct {
	embedder Embedder
	store    VectorSearcher
	reranker RerankConnector
}

func (s *rerankStrategy) Retrieve(ctx context.Context, question string) (*retrievedContext, error) {
	vectors, err := s.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	candidates, err := s.store.Search(ctx, vectors[0], rerankFetchK, nil)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if len(candidates) == 0 {
		return &retrievedContext{RerankScores: []entity.RerankScore{}}, nil
	}

	passages := make([]string, len(candidates))
	for i, r := range candidates {
		passages[i] = r.Payload.Text
	}

	scores, err := s.reranker.Rerank(ctx, question, passages)
	if err != nil {
		return nil, fmt.Errorf("rerank candidates: %w", err)
	}

	// Highest relevance first; stable so ties keep the reranker's order.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].RelevanceScore > scores[j].RelevanceScore
	})
	if len(scores) > searchTopK {
		scores = scores[:searchTopK]
	}

	// Score indices point into the original candidate list, not rerank
	// order: resolve texts and sources through them.
	texts := make([]string, len(scores))
	sources := make([]entity.SourcePayload, len(scores))
	for i, sc := range scores {
		if sc.Index < 0 || sc.Index >= len(candidates) {
			return nil, fmt.Errorf("rerank index %d out of range for %d candidates", sc.Index, len(candidates))
		}
		texts[i] = passages[sc.Index]
		sources[i] = candidates[sc.Index].Payload
	}

	ctxzap.Debug(ctx, "candidates reranked",
		zap.Int("candidate_count", len(candidates)),
		zap.Int("kept", len(scores)),
	)

	return &retrievedContext{
		Context:      joinTexts(texts),
		Sources:      sources,
		RerankScores: scores,
	}, nil
}
