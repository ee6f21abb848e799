package query

import (
	"context"
	"errors"
	"testing"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

type stubSearcher struct {
	results   []entity.RetrievalResult
	err       error
	gotK      int
	gotFilter *entity.SearchFilter
}

func (s *stubSearcher) Search(_ context.Context, _ []float32, k int, filter *entity.SearchFilter) ([]entity.RetrievalResult, error) {
	s.gotK = k
	s.gotFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

type stubLLM struct {
	responses []string
	prompts   []string
	err       error
}

func (s *stubLLM) Generate(_ context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.prompts = append(s.prompts, prompt)
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

type stubReranker struct {
	scores []entity.RerankScore
	err    error
}

func (s *stubReranker) Rerank(_ context.Context, _ string, _ []string) ([]entity.RerankScore, error) {
	return s.scores, s.err
}

type stubSessions struct {
	lastQuery string
}

func (s *stubSessions) SetLastQuery(q string) { s.lastQuery = q }

func results(texts ...string) []entity.RetrievalResult {
	out := make([]entity.RetrievalResult, len(texts))
	for i, t := range texts {
		out[i] = entity.RetrievalResult{
			Payload: entity.SourcePayload{Text: t, Page: i + 1},
			Score:   1 - float32(i)*0.1,
		}
	}
	return out
}

func TestAnswer_Basic(t *testing.T) {
	searcher := &stubSearcher{results: results("alpha", "beta", "gamma")}
	llm := &stubLLM{responses: []string{"grounded answer"}}
	sessions := &stubSessions{}

	uc := NewUsecase(&stubEmbedder{}, searcher, llm, &stubReranker{}, sessions, zap.NewNop())

	res, err := uc.Answer(context.Background(), "what is alpha?")
	require.NoError(t, err)

	assert.Equal(t, "grounded answer", res.Answer)
	assert.Equal(t, "alpha\n\nbeta\n\ngamma", res.Context)
	require.Len(t, res.Sources, 3)
	assert.Equal(t, 3, searcher.gotK)
	assert.Nil(t, searcher.gotFilter)
	assert.Nil(t, res.FiltersUsed)
	assert.Nil(t, res.RerankScores)
	assert.Equal(t, "what is alpha?", sessions.lastQuery)

	// The grounding prompt carries the retrieved context and the question.
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "alpha\n\nbeta\n\ngamma")
	assert.Contains(t, llm.prompts[0], "what is alpha?")
}

func TestAnswer_LLMFailureSurfaces(t *testing.T) {
	searcher := &stubSearcher{results: results("alpha")}
	llm := &stubLLM{err: errors.New("upstream down")}

	uc := NewUsecase(&stubEmbedder{}, searcher, llm, &stubReranker{}, &stubSessions{}, zap.NewNop())

	_, err := uc.Answer(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestAnswer_EmbedFailureSurfaces(t *testing.T) {
	uc := NewUsecase(&stubEmbedder{err: errors.New("encode failed")}, &stubSearcher{}, &stubLLM{responses: []string{"x"}}, &stubReranker{}, &stubSessions{}, zap.NewNop())

	_, err := uc.Answer(context.Background(), "q")
	require.Error(t, err)
}

func TestAnswerWithSelfQuery(t *testing.T) {
	searcher := &stubSearcher{results: results("page three text")}
	llm := &stubLLM{responses: []string{
		`Sure! {"query": "revenue", "filters": {"page": 3}}`,
		"filtered answer",
	}}

	uc := NewUsecase(&stubEmbedder{}, searcher, llm, &stubReranker{}, &stubSessions{}, zap.NewNop())

	res, err := uc.AnswerWithSelfQuery(context.Background(), "what was the revenue on page 3?")
	require.NoError(t, err)

	assert.Equal(t, "filtered answer", res.Answer)
	assert.Equal(t, map[string]any{"page": float64(3)}, res.FiltersUsed)
	require.NotNil(t, searcher.gotFilter)
	require.Len(t, searcher.gotFilter.Must, 1)
	assert.Equal(t, "page", searcher.gotFilter.Must[0].Key)
}

func TestAnswerWithSelfQuery_BadModelOutput(t *testing.T) {
	llm := &stubLLM{responses: []string{"no json here, sorry"}}

	uc := NewUsecase(&stubEmbedder{}, &stubSearcher{}, llm, &stubReranker{}, &stubSessions{}, zap.NewNop())

	_, err := uc.AnswerWithSelfQuery(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, entity.ErrFilterParse))
}

func TestAnswerWithRerank_RemapsByOriginalIndex(t *testing.T) {
	searcher := &stubSearcher{results: results("A", "B", "C")}
	reranker := &stubReranker{scores: []entity.RerankScore{
		{Index: 2, RelevanceScore: 0.9},
		{Index: 0, RelevanceScore: 0.5},
	}}
	llm := &stubLLM{responses: []string{"answer"}}

	uc := NewUsecase(&stubEmbedder{}, searcher, llm, reranker, &stubSessions{}, zap.NewNop())

	res, err := uc.AnswerWithRerank(context.Background(), "q")
	require.NoError(t, err)

	// Over-fetch for the reranker.
	assert.Equal(t, 10, searcher.gotK)

	// Index 2 refers to "C" in the original candidate list.
	assert.Equal(t, "C\n\nA", res.Context)
	require.Len(t, res.Sources, 2)
	assert.Equal(t, "C", res.Sources[0].Text)
	assert.Equal(t, "A", res.Sources[1].Text)
	require.Len(t, res.RerankScores, 2)
	assert.Equal(t, 2, res.RerankScores[0].Index)
	assert.InDelta(t, 0.9, res.RerankScores[0].RelevanceScore, 1e-9)
}

func TestAnswerWithRerank_SortsAndKeepsTopThree(t *testing.T) {
	searcher := &stubSearcher{results: results("A", "B", "C", "D", "E")}
	reranker := &stubReranker{scores: []entity.RerankScore{
		{Index: 0, RelevanceScore: 0.1},
		{Index: 1, RelevanceScore: 0.8},
		{Index: 2, RelevanceScore: 0.3},
		{Index: 3, RelevanceScore: 0.95},
		{Index: 4, RelevanceScore: 0.2},
	}}
	llm := &stubLLM{responses: []string{"answer"}}

	uc := NewUsecase(&stubEmbedder{}, searcher, llm, reranker, &stubSessions{}, zap.NewNop())

	res, err := uc.AnswerWithRerank(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, "D\n\nB\n\nC", res.Context)
	require.Len(t, res.RerankScores, 3)
}

func TestAnswerWithRerank_RerankerFailureSurfaces(t *testing.T) {
	searcher := &stubSearcher{results: results("A")}
	reranker := &stubReranker{err: errors.New("rerank service down")}

	uc := NewUsecase(&stubEmbedder{}, searcher, &stubLLM{responses: []string{"x"}}, reranker, &stubSessions{}, zap.NewNop())

	_, err := uc.AnswerWithRerank(context.Background(), "q")
	require.Error(t, err)
}
