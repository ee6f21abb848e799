package embedding

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
	config    config.EmbedderConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbedderConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Embed encodes all texts in a single batched call to the embedding service
// and returns one vector per text, in input order.
func (c *Connector) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctxzap.Debug(ctx, "encoding texts via embedding service", zap.Int("text_count", len(texts)))

	req := entity.EmbedRequest{Inputs: texts}

	var vectors [][]float32
	err := retry.Do(func() error {
		vectors = nil
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.EmbedEndpoint, req, &vectors)
	}, c.config.Retry.ToRetryOptions()...)
	if err != nil {
		ctxzap.Error(ctx, "embedding request failed", zap.Error(err))
		return nil, fmt.Errorf("embed texts: %w", err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding service returned %d vectors for %d texts", len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("embedding service returned empty vector at index %d", i)
		}
	}

	ctxzap.Debug(ctx, "texts encoded",
		zap.Int("vector_count", len(vectors)),
		zap.Int("dimension", len(vectors[0])),
	)

	return vectors, nil
}
