package entity

// ExtractResponse is the wire response of the text-extraction service:
// the ordered per-page text of one document.
type ExtractResponse struct {
	Pages []PageText `json:"pages"`
}
