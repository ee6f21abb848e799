package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/docuquery/rag-backend/internal/config"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Connector generates text through an OpenAI-compatible chat completion
// API (Groq, OpenAI, or any compatible gateway).
type Connector struct {
	config config.LLMConfig
	client *openai.Client
	logger *zap.Logger
}

func NewConnector(
	cfg config.LLMConfig,
	logger *zap.Logger,
) *Connector {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}

	return &Connector{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger,
	}
}

// Generate performs one stateless completion of the given prompt. No
// conversation memory is kept across calls.
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Debug(ctx, "generating completion via LLM service",
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		ctxzap.Error(ctx, "LLM completion failed", zap.Error(err))
		return "", fmt.Errorf("llm completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm completion: empty choices in response")
	}

	answer := resp.Choices[0].Message.Content
	ctxzap.Debug(ctx, "completion generated", zap.Int("answer_length", len(answer)))

	return answer, nil
}
