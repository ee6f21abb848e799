package rerank

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/docuquery/rag-backend/internal/config"
	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/integration/common"
	pkghttp "github.com/docuquery/rag-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.RerankConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.RerankConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Rerank scores each document against the query. Result indices refer to
// positions in the submitted document list; the result order is the
// service's own and callers must sort by relevance themselves.
func (c *Connector) Rerank(ctx context.Context, query string, documents []string) ([]entity.RerankScore, error) {
	ctxzap.Debug(ctx, "reranking candidates",
		zap.String("model", c.config.Model),
		zap.Int("document_count", len(documents)),
	)

	req := entity.RerankRequest{
		Model:     c.config.Model,
		Query:     query,
		Documents: documents,
	}

	var resp entity.RerankResponse
	err := retry.Do(func() error {
		resp = entity.RerankResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.RerankEndpoint, req, &resp)
	}, c.config.Retry.ToRetryOptions()...)
	if err != nil {
		ctxzap.Error(ctx, "rerank request failed", zap.Error(err))
		return nil, fmt.Errorf("rerank: %w", err)
	}

	for _, r := range resp.Results {
		if r.Index < 0 || r.Index >= len(documents) {
			return nil, fmt.Errorf("rerank: result index %d out of range for %d documents", r.Index, len(documents))
		}
	}

	ctxzap.Debug(ctx, "candidates reranked", zap.Int("result_count", len(resp.Results)))

	return resp.Results, nil
}
