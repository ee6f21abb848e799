package benchmark

import (
	"context"
	"errors"
	"testing"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/integration/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLLM struct {
	answer  string
	err     error
	prompts []string
}

func (s *stubLLM) Generate(_ context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.prompts = append(s.prompts, prompt)
	return s.answer, nil
}

type stubSessions struct {
	state          entity.BenchmarkState
	hasState       bool
	storedQuery    string
	storedAnswer   string
}

func (s *stubSessions) Get() (entity.BenchmarkState, bool) { return s.state, s.hasState }

func (s *stubSessions) SetBenchmark(query, answer string) {
	s.storedQuery = query
	s.storedAnswer = answer
}

func TestGenerateReference(t *testing.T) {
	llm := &stubLLM{answer: "  The revenue was 4.2 million.  "}
	sessions := &stubSessions{
		state:    entity.BenchmarkState{DocumentText: "full document text about revenue"},
		hasState: true,
	}

	uc := NewUsecase(llm, embedding.NewMockConnector(64, zap.NewNop()), sessions, zap.NewNop())

	answer, err := uc.GenerateReference(context.Background(), "what was the revenue?")
	require.NoError(t, err)

	assert.Equal(t, "The revenue was 4.2 million.", answer)
	assert.Equal(t, "what was the revenue?", sessions.storedQuery)
	assert.Equal(t, "The revenue was 4.2 million.", sessions.storedAnswer)

	// The prompt is built from the whole document, not retrieved chunks.
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "full document text about revenue")
	assert.Contains(t, llm.prompts[0], "what was the revenue?")
}

func TestGenerateReference_NoDocument(t *testing.T) {
	uc := NewUsecase(&stubLLM{answer: "x"}, embedding.NewMockConnector(64, zap.NewNop()), &stubSessions{}, zap.NewNop())

	_, err := uc.GenerateReference(context.Background(), "q")
	assert.ErrorIs(t, err, entity.ErrNoDocument)
}

func TestGenerateReference_LLMFailureSurfaces(t *testing.T) {
	sessions := &stubSessions{
		state:    entity.BenchmarkState{DocumentText: "doc"},
		hasState: true,
	}
	uc := NewUsecase(&stubLLM{err: errors.New("model unavailable")}, embedding.NewMockConnector(64, zap.NewNop()), sessions, zap.NewNop())

	_, err := uc.GenerateReference(context.Background(), "q")
	require.Error(t, err)
	assert.Empty(t, sessions.storedAnswer)
}

func TestEvaluate(t *testing.T) {
	reference := "the capital of france is paris"
	llm := &stubLLM{answer: reference}
	sessions := &stubSessions{
		state:    entity.BenchmarkState{DocumentText: "geography facts"},
		hasState: true,
	}

	uc := NewUsecase(llm, embedding.NewMockConnector(64, zap.NewNop()), sessions, zap.NewNop())

	resp, err := uc.Evaluate(context.Background(), &entity.EvaluateRequest{
		Question: "what is the capital of france?",
		Candidates: []entity.Candidate{
			{ID: "model-a", Answer: "berlin is the capital of germany"},
			{ID: "model-b", Answer: reference},
			{ID: "model-c", Answer: ""},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, reference, resp.ReferenceAnswer)
	require.Len(t, resp.Scores, 3)

	// Exact match scores highest; the empty answer scores zero.
	assert.Equal(t, "model-b", resp.BestID)
	assert.InDelta(t, 1.0, resp.Scores[1].Total, 1e-3)
	assert.Zero(t, resp.Scores[2].Total)
	assert.Greater(t, resp.Scores[1].Total, resp.Scores[0].Total)
}

func TestEvaluate_TieKeepsFirstCandidate(t *testing.T) {
	reference := "forty two"
	sessions := &stubSessions{
		state:    entity.BenchmarkState{DocumentText: "doc"},
		hasState: true,
	}
	uc := NewUsecase(&stubLLM{answer: reference}, embedding.NewMockConnector(64, zap.NewNop()), sessions, zap.NewNop())

	resp, err := uc.Evaluate(context.Background(), &entity.EvaluateRequest{
		Question: "q",
		Candidates: []entity.Candidate{
			{ID: "first", Answer: reference},
			{ID: "second", Answer: reference},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, resp.Scores[0].Total, resp.Scores[1].Total)
	assert.Equal(t, "first", resp.BestID)
}
