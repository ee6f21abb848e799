package query

import (
	"errors"
	"testing"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantQuery   string
		wantFilters map[string]any
		wantErr     bool
	}{
		{
			name:        "bare json",
			raw:         `{"query": "revenue", "filters": {"page": 3}}`,
			wantQuery:   "revenue",
			wantFilters: map[string]any{"page": float64(3)},
		},
		{
			name:        "leading prose",
			raw:         `Sure! {"query": "revenue", "filters": {"page": 3}}`,
			wantQuery:   "revenue",
			wantFilters: map[string]any{"page": float64(3)},
		},
		{
			name:        "trailing prose",
			raw:         `{"query": "revenue", "filters": {}} Hope that helps!`,
			wantQuery:   "revenue",
			wantFilters: map[string]any{},
		},
		{
			name:        "braces inside strings",
			raw:         `{"query": "what is {x}", "filters": {"keyword": "a}b"}}`,
			wantQuery:   "what is {x}",
			wantFilters: map[string]any{"keyword": "a}b"},
		},
		{
			name:    "no json at all",
			raw:     `I cannot extract a filter from that.`,
			wantErr: true,
		},
		{
			name:    "unbalanced object",
			raw:     `{"query": "revenue", "filters": {`,
			wantErr: true,
		},
		{
			name:    "invalid json",
			raw:     `{"query": revenue}`,
			wantErr: true,
		},
		{
			name:    "missing query",
			raw:     `{"filters": {"page": 3}}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := parseIntent(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				// Fails closed with the raw model text preserved for
				// diagnosis, never a silent empty filter.
				assert.True(t, errors.Is(err, entity.ErrFilterParse))
				assert.Contains(t, err.Error(), tt.raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, intent.Query)
			assert.Equal(t, tt.wantFilters, intent.Filters)
		})
	}
}

func TestBuildFilter(t *testing.T) {
	assert.Nil(t, buildFilter(nil))
	assert.Nil(t, buildFilter(map[string]any{}))

	f := buildFilter(map[string]any{"page": float64(3), "keyword": "budget"})
	require.NotNil(t, f)
	require.Len(t, f.Must, 2)
	// Deterministic key order.
	assert.Equal(t, "keyword", f.Must[0].Key)
	assert.Equal(t, "page", f.Must[1].Key)
	assert.Equal(t, float64(3), f.Must[1].Value)
}
