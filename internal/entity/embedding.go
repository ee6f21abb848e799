package entity

// EmbedRequest is the wire request to the embedding service. All texts of a
// batch travel in a single call.
type EmbedRequest struct {
	Inputs []string `json:"inputs"`
}
