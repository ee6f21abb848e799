package entity

// ErrorResponse is the JSON error envelope returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// UploadDocumentResponse is returned by POST /documents.
type UploadDocumentResponse struct {
	DocumentID string `json:"document_id"`
	Pages      int    `json:"pages"`
	Chunks     int    `json:"chunks"`
	Message    string `json:"message"`
}

// AskRequest is the body of the three query endpoints.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the answer of one retrieval pipeline. FiltersUsed is set
// only by the self-query pipeline, RerankScores only by the rerank pipeline.
type AskResponse struct {
	Answer       string          `json:"answer"`
	Context      string          `json:"context"`
	Sources      []SourcePayload `json:"sources"`
	FiltersUsed  map[string]any  `json:"filters_used,omitempty"`
	RerankScores []RerankScore   `json:"rerank_scores,omitempty"`
}

// Candidate is one answer submitted for evaluation.
type Candidate struct {
	ID     string `json:"id"`
	Answer string `json:"answer"`
}

// EvaluateRequest is the body of POST /benchmark/evaluate.
type EvaluateRequest struct {
	Question   string      `json:"question"`
	Candidates []Candidate `json:"candidates"`
}

// CandidateScore is the evaluation result for one candidate.
type CandidateScore struct {
	ID          string  `json:"id"`
	Similarity  float64 `json:"similarity_score"`
	Correctness float64 `json:"correctness_score"`
	Total       float64 `json:"total_score"`
}

// EvaluateResponse is returned by POST /benchmark/evaluate.
type EvaluateResponse struct {
	ReferenceAnswer string           `json:"reference_answer"`
	Scores          []CandidateScore `json:"scores"`
	BestID          string           `json:"best_id"`
}
