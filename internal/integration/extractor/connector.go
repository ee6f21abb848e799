package extractor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime/multipart"
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
	config    config.ExtractorConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ExtractorConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// ExtractPages sends the document to the extraction/OCR service and returns
// the ordered per-page text. Page text may be empty for pages the service
// could not read.
func (c *Connector) ExtractPages(ctx context.Context, content []byte, filename string) ([]entity.PageText, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty document provided")
	}

	hash := sha256.Sum256(content)
	checksum := hex.EncodeToString(hash[:])

	ctxzap.Info(ctx, "extracting text via extraction service",
		zap.String("filename", filename),
		zap.String("checksum", checksum),
		zap.Int("size", len(content)),
	)

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}

		if _, err := part.Write(content); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}

		if err := writer.WriteField("checksum", checksum); err != nil {
			return fmt.Errorf("write checksum field: %w", err)
		}

		return nil
	}

	var resp entity.ExtractResponse
	err := retry.Do(func() error {
		resp = entity.ExtractResponse{}
		return c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.ExtractEndpoint, prepareBody, &resp)
	}, c.config.Retry.ToRetryOptions()...)
	if err != nil {
		ctxzap.Error(ctx, "extraction request failed", zap.Error(err))
		return nil, fmt.Errorf("extract document text: %w", err)
	}

	ctxzap.Info(ctx, "text extracted", zap.Int("page_count", len(resp.Pages)))

	return resp.Pages, nil
}
