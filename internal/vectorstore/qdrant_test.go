package vectorstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docuquery/rag-backend/internal/config"
	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func qdrantConfig(url string) config.QdrantConfig {
	return config.QdrantConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:                   url,
			RequestTimeout:        5 * time.Second,
			ConnTimeout:           5 * time.Second,
			KeepAlive:             5 * time.Second,
			IdleConnTimeout:       5 * time.Second,
			ResponseHeaderTimeout: 5 * time.Second,
		},
		Collection: "pdf_chunks",
		Dimension:  4,
	}
}

func TestQdrantStore_Recreate(t *testing.T) {
	var deleted, created bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/pdf_chunks", r.URL.Path)
		switch r.Method {
		case http.MethodDelete:
			deleted = true
			// First startup: nothing to delete.
			w.WriteHeader(http.StatusNotFound)
		case http.MethodPut:
			created = true
			var req struct {
				Vectors struct {
					Size     int    `json:"size"`
					Distance string `json:"distance"`
				} `json:"vectors"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, 4, req.Vectors.Size)
			assert.Equal(t, "Cosine", req.Vectors.Distance)
			w.Write([]byte(`{"result": true}`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	store := NewQdrantStore(qdrantConfig(srv.URL), zap.NewNop())
	require.NoError(t, store.Recreate(context.Background()))
	assert.True(t, deleted)
	assert.True(t, created)
}

func TestQdrantStore_Upload_SequentialIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/collections/pdf_chunks/points", r.URL.Path)
		require.Equal(t, "true", r.URL.Query().Get("wait"))

		var req struct {
			Points []struct {
				ID      int       `json:"id"`
				Vector  []float32 `json:"vector"`
				Payload struct {
					Text string `json:"text"`
					Page int    `json:"page"`
				} `json:"payload"`
			} `json:"points"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Points, 2)
		assert.Equal(t, 0, req.Points[0].ID)
		assert.Equal(t, 1, req.Points[1].ID)
		assert.Equal(t, "alpha", req.Points[0].Payload.Text)
		assert.Equal(t, 2, req.Points[1].Payload.Page)
		w.Write([]byte(`{"result": {"status": "completed"}}`))
	}))
	defer srv.Close()

	store := NewQdrantStore(qdrantConfig(srv.URL), zap.NewNop())
	err := store.Upload(context.Background(), []entity.Chunk{
		{Page: 1, Text: "alpha", Embedding: []float32{1, 0, 0, 0}},
		{Page: 2, Text: "beta", Embedding: []float32{0, 1, 0, 0}},
	})
	require.NoError(t, err)
}

func TestQdrantStore_Search_FilterShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/collections/pdf_chunks/points/search", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(3), req["limit"])
		assert.Equal(t, true, req["with_payload"])

		filter, ok := req["filter"].(map[string]any)
		require.True(t, ok)
		must := filter["must"].([]any)
		require.Len(t, must, 1)
		cond := must[0].(map[string]any)
		assert.Equal(t, "page", cond["key"])
		assert.Equal(t, float64(3), cond["match"].(map[string]any)["value"])

		w.Write([]byte(`{"result": [
			{"score": 0.91, "payload": {"text": "revenue grew", "page": 3}},
			{"score": 0.42, "payload": {"text": "other", "page": 3}}
		]}`))
	}))
	defer srv.Close()

	store := NewQdrantStore(qdrantConfig(srv.URL), zap.NewNop())
	results, err := store.Search(context.Background(), []float32{1, 0, 0, 0}, 3, &entity.SearchFilter{
		Must: []entity.FieldCondition{{Key: "page", Value: float64(3)}},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "revenue grew", results[0].Payload.Text)
	assert.Equal(t, 3, results[0].Payload.Page)
	assert.InDelta(t, 0.91, results[0].Score, 1e-6)
}

func TestQdrantStore_Search_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	store := NewQdrantStore(qdrantConfig(srv.URL), zap.NewNop())
	_, err := store.Search(context.Background(), []float32{1, 0, 0, 0}, 3, nil)
	require.Error(t, err)
}
