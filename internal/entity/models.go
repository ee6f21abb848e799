package entity

// PageText is one page of extracted document text. Page numbers start at 1.
type PageText struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Chunk is a word-window of a single document page. The embedding is
// attached once by the embedder and never mutated afterwards.
type Chunk struct {
	Page      int
	Text      string
	Embedding []float32
}

// SourcePayload is the metadata stored with every indexed point and
// returned to the client as a retrieval source.
type SourcePayload struct {
	Text string `json:"text"`
	Page int    `json:"page"`
}

// RetrievalResult is a single nearest-neighbor hit, ordered by decreasing
// similarity.
type RetrievalResult struct {
	Payload SourcePayload
	Score   float32
}

// FieldCondition is an exact-match condition on a payload field.
type FieldCondition struct {
	Key   string
	Value any
}

// SearchFilter restricts a vector search to points whose payload satisfies
// every condition (conjunctive AND).
type SearchFilter struct {
	Must []FieldCondition
}

// SelfQueryIntent is the structured search intent extracted by the LLM from
// a free-form question.
type SelfQueryIntent struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"filters"`
}

// RerankScore is one reranker result. Index refers to the position in the
// original candidate list submitted for reranking, not to rerank order.
type RerankScore struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
}

// AskResult is the outcome of one retrieval pipeline run.
type AskResult struct {
	Answer       string
	Context      string
	Sources      []SourcePayload
	FiltersUsed  map[string]any
	RerankScores []RerankScore
}

// IngestResult summarizes one document ingestion.
type IngestResult struct {
	DocumentID string
	Pages      int
	Chunks     int
}

// BenchmarkState is the process-wide single-slot benchmarking context.
// It is overwritten on each new upload or chat turn (last writer wins).
type BenchmarkState struct {
	DocumentText    string
	LastQuery       string
	BenchmarkAnswer string
}

// EvaluationScore scores one candidate answer against the benchmark answer.
// Correctness is currently the similarity score verbatim; the separate
// field is kept as an aggregation seam.
type EvaluationScore struct {
	Similarity  float64
	Correctness float64
	Total       float64
}

// FileData is an uploaded file held in memory.
type FileData struct {
	Filename string
	Content  []byte
}
