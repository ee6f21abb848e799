package entity

// RerankRequest is the wire request to the reranking service.
type RerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
}

// RerankResponse is the wire response of the reranking service. Results are
// unordered; callers sort by relevance score.
type RerankResponse struct {
	Results []RerankScore `json:"results"`
}
