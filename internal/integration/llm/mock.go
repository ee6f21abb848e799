package llm

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a canned LLM for local runs without an API key.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating completion", zap.Int("prompt_length", len(prompt)))

	// The self-query extraction prompt demands bare JSON; honor it so the
	// self-query pipeline stays usable in mock mode.
	if strings.Contains(prompt, "Return only valid JSON") {
		return `{"query": "mock search query", "filters": {}}`, nil
	}

	return "This is a mock answer generated without consulting a language model. " +
		"Enable a real LLM connector to get grounded answers.", nil
}
