package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestNew_RejectsBadParams(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{"defaults", DefaultChunkSize, DefaultOverlap, false},
		{"no overlap", 10, 0, false},
		{"overlap equals size", 10, 10, true},
		{"overlap exceeds size", 10, 15, true},
		{"negative overlap", 10, -1, true},
		{"zero chunk size", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.chunkSize, tt.overlap)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChunk_WindowOffsets(t *testing.T) {
	// 450 words with size 200 / overlap 50 start at offsets 0, 150, 300.
	c, err := New(200, 50)
	require.NoError(t, err)

	chunks := c.Chunk([]entity.PageText{{Page: 1, Text: words(450)}})
	require.Len(t, chunks, 3)

	assert.True(t, strings.HasPrefix(chunks[0].Text, "w0 "))
	assert.True(t, strings.HasPrefix(chunks[1].Text, "w150 "))
	assert.True(t, strings.HasPrefix(chunks[2].Text, "w300 "))

	assert.Len(t, strings.Fields(chunks[0].Text), 200)
	assert.Len(t, strings.Fields(chunks[1].Text), 200)
	// Final window is shorter.
	assert.Len(t, strings.Fields(chunks[2].Text), 150)
}

func TestChunk_NonOverlappingStridesRecoverPage(t *testing.T) {
	c, err := New(200, 50)
	require.NoError(t, err)

	pageWords := 777
	chunks := c.Chunk([]entity.PageText{{Page: 4, Text: words(pageWords)}})

	// Concatenating the first (size-overlap) words of every chunk plus the
	// remainder of the last chunk recovers the page's word count.
	total := 0
	for i, ch := range chunks {
		n := len(strings.Fields(ch.Text))
		if i < len(chunks)-1 && n > 150 {
			n = 150
		}
		total += n
	}
	assert.Equal(t, pageWords, total)
}

func TestChunk_PageTags(t *testing.T) {
	c, err := New(10, 2)
	require.NoError(t, err)

	pages := []entity.PageText{
		{Page: 1, Text: words(25)},
		{Page: 2, Text: ""},
		{Page: 3, Text: words(5)},
	}
	chunks := c.Chunk(pages)
	require.NotEmpty(t, chunks)

	byPage := map[int]int{}
	for _, ch := range chunks {
		byPage[ch.Page]++
		assert.NotEmpty(t, ch.Text)
	}
	assert.Positive(t, byPage[1])
	// Empty page yields zero chunks.
	assert.Zero(t, byPage[2])
	assert.Equal(t, 1, byPage[3])
}

func TestChunk_Degenerate(t *testing.T) {
	c, err := New(DefaultChunkSize, DefaultOverlap)
	require.NoError(t, err)

	assert.Empty(t, c.Chunk(nil))
	assert.Empty(t, c.Chunk([]entity.PageText{}))
	assert.Empty(t, c.Chunk([]entity.PageText{{Page: 1, Text: "   "}}))
}
