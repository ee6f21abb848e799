package extractor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector extracts text without an OCR backend: plain-text uploads
// are split into pages on form feeds, anything binary gets one canned page.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) ExtractPages(ctx context.Context, content []byte, filename string) ([]entity.PageText, error) {
	ctxzap.Info(ctx, "[MOCK] extracting text",
		zap.String("filename", filename),
		zap.Int("size", len(content)),
	)

	if !utf8.Valid(content) {
		return []entity.PageText{
			{Page: 1, Text: "Mock extracted text for binary document " + filename + "."},
		}, nil
	}

	var pages []entity.PageText
	for i, text := range strings.Split(string(content), "\f") {
		pages = append(pages, entity.PageText{Page: i + 1, Text: strings.TrimSpace(text)})
	}
	return pages, nil
}
