package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/docuquery/rag-backend/internal/config"
	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/integration/common"
	pkghttp "github.com/docuquery/rag-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// QdrantStore is the index adapter over Qdrant's REST API. It owns the
// collection lifecycle: destructive recreate, bulk upsert with
// batch-positional ids, and filtered nearest-neighbor search with cosine
// distance.
type QdrantStore struct {
	config    config.QdrantConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewQdrantStore(
	cfg config.QdrantConfig,
	logger *zap.Logger,
) *QdrantStore {
	return &QdrantStore{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type vectorParams struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

type createCollectionRequest struct {
	Vectors vectorParams `json:"vectors"`
}

type point struct {
	ID      int                  `json:"id"`
	Vector  []float32            `json:"vector"`
	Payload entity.SourcePayload `json:"payload"`
}

type upsertRequest struct {
	Points []point `json:"points"`
}

type matchValue struct {
	Value any `json:"value"`
}

type fieldCondition struct {
	Key   string     `json:"key"`
	Match matchValue `json:"match"`
}

type searchFilter struct {
	Must []fieldCondition `json:"must"`
}

type searchRequest struct {
	Vector      []float32     `json:"vector"`
	Limit       int           `json:"limit"`
	WithPayload bool          `json:"with_payload"`
	Filter      *searchFilter `json:"filter,omitempty"`
}

type searchResponse struct {
	Result []struct {
		Score   float32              `json:"score"`
		Payload entity.SourcePayload `json:"payload"`
	} `json:"result"`
}

// Recreate drops and recreates the collection, discarding all previously
// indexed points.
func (s *QdrantStore) Recreate(ctx context.Context) error {
	ctxzap.Info(ctx, "recreating vector collection",
		zap.String("collection", s.config.Collection),
		zap.Int("dimension", s.config.Dimension),
	)

	deleteEndpoint := fmt.Sprintf("/collections/%s", s.config.Collection)
	if err := s.connector.DoRequest(ctx, http.MethodDelete, deleteEndpoint, nil, nil); err != nil {
		// A missing collection is fine on first startup.
		var httpErr *pkghttp.HTTPError
		if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
			return fmt.Errorf("delete collection: %w", err)
		}
	}

	req := createCollectionRequest{
		Vectors: vectorParams{
			Size:     s.config.Dimension,
			Distance: "Cosine",
		},
	}
	createEndpoint := fmt.Sprintf("/collections/%s", s.config.Collection)
	if err := s.connector.DoRequest(ctx, http.MethodPut, createEndpoint, req, nil); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}

	ctxzap.Info(ctx, "vector collection recreated", zap.String("collection", s.config.Collection))
	return nil
}

// Upload upserts the chunk batch as points with sequential ids 0..n-1.
// Ids are batch-local: a later batch with the same positions overwrites.
func (s *QdrantStore) Upload(ctx context.Context, chunks []entity.Chunk) error {
	points := make([]point, len(chunks))
	for i, c := range chunks {
		points[i] = point{
			ID:     i,
			Vector: c.Embedding,
			Payload: entity.SourcePayload{
				Text: c.Text,
				Page: c.Page,
			},
		}
	}

	endpoint := fmt.Sprintf("/collections/%s/points?wait=true", s.config.Collection)
	if err := s.connector.DoRequest(ctx, http.MethodPut, endpoint, upsertRequest{Points: points}, nil); err != nil {
		return fmt.Errorf("upsert points: %w", err)
	}

	ctxzap.Info(ctx, "points uploaded",
		zap.String("collection", s.config.Collection),
		zap.Int("point_count", len(points)),
	)
	return nil
}

// Search returns up to k nearest points by cosine similarity, restricted to
// points matching every filter condition when a filter is given.
func (s *QdrantStore) Search(ctx context.Context, vector []float32, k int, filter *entity.SearchFilter) ([]entity.RetrievalResult, error) {
	req := searchRequest{
		Vector:      vector,
		Limit:       k,
		WithPayload: true,
	}
	if filter != nil && len(filter.Must) > 0 {
		conditions := make([]fieldCondition, len(filter.Must))
		for i, c := range filter.Must {
			conditions[i] = fieldCondition{Key: c.Key, Match: matchValue{Value: c.Value}}
		}
		req.Filter = &searchFilter{Must: conditions}
	}

	endpoint := fmt.Sprintf("/collections/%s/points/search", s.config.Collection)
	var resp searchResponse
	if err := s.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("search points: %w", err)
	}

	results := make([]entity.RetrievalResult, len(resp.Result))
	for i, r := range resp.Result {
		results[i] = entity.RetrievalResult{
			Payload: r.Payload,
			Score:   r.Score,
		}
	}

	ctxzap.Debug(ctx, "search completed",
		zap.String("collection", s.config.Collection),
		zap.Int("result_count", len(results)),
	)
	return results, nil
}
