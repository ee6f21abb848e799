package chunker

import (
	"fmt"
	"strings"

	"github.com/docuquery/rag-backend/internal/entity"
)

const (
	DefaultChunkSize = 200
	DefaultOverlap   = 50
)

// Chunker splits per-page document text into overlapping word windows.
// Chunks never span pages.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New returns a word-window chunker. The overlap must be smaller than the
// chunk size, otherwise the window would never advance.
func New(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be at least 1, got %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", chunkSize, overlap)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk slides a window of chunkSize words over every non-empty page,
// advancing by chunkSize-overlap words per step. The final window of a page
// may be shorter. Empty pages produce no chunks.
func (c *Chunker) Chunk(pages []entity.PageText) []entity.Chunk {
	step := c.chunkSize - c.overlap

	var chunks []entity.Chunk
	for _, page := range pages {
		words := strings.Fields(page.Text)
		for i := 0; i < len(words); i += step {
			end := i + c.chunkSize
			if end > len(words) {
				end = len(words)
			}
			chunks = append(chunks, entity.Chunk{
				Page: page.Page,
				Text: strings.Join(words[i:end], " "),
			})
		}
	}
	return chunks
}
