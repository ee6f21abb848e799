package rerank

import (
	"context"
	"strings"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector scores documents by naive query-term overlap. Deterministic
// and good enough to exercise the rerank pipeline locally.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Rerank(ctx context.Context, query string, documents []string) ([]entity.RerankScore, error) {
	ctxzap.Info(ctx, "[MOCK] reranking candidates", zap.Int("document_count", len(documents)))

	terms := strings.Fields(strings.ToLower(query))

	results := make([]entity.RerankScore, len(documents))
	for i, doc := range documents {
		lower := strings.ToLower(doc)
		hits := 0
		for _, term := range terms {
			if strings.Contains(lower, term) {
				hits++
			}
		}
		score := 0.0
		if len(terms) > 0 {
			score = float64(hits) / float64(len(terms))
		}
		results[i] = entity.RerankScore{Index: i, RelevanceScore: score}
	}

	return results, nil
}
