package vectorstore

import (
	"context"
	"sort"
	"sync"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/pkg/similarity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type memoryPoint struct {
	vector  []float32
	payload entity.SourcePayload
}

// MemoryStore is an in-process index with the same contract as QdrantStore,
// used in mock mode and in tests. Brute-force cosine scan.
type MemoryStore struct {
	mu     sync.RWMutex
	points []memoryPoint
	logger *zap.Logger
}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		logger: logger,
	}
}

func (s *MemoryStore) Recreate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.points = nil
	ctxzap.Info(ctx, "[MOCK] vector collection recreated")
	return nil
}

func (s *MemoryStore) Upload(ctx context.Context, chunks []entity.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Batch-positional ids: position i overwrites any existing point i.
	for i, c := range chunks {
		p := memoryPoint{
			vector:  c.Embedding,
			payload: entity.SourcePayload{Text: c.Text, Page: c.Page},
		}
		if i < len(s.points) {
			s.points[i] = p
		} else {
			s.points = append(s.points, p)
		}
	}

	ctxzap.Info(ctx, "[MOCK] points uploaded", zap.Int("point_count", len(chunks)))
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, vector []float32, k int, filter *entity.SearchFilter) ([]entity.RetrievalResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []entity.RetrievalResult
	for _, p := range s.points {
		if !matchesFilter(p.payload, filter) {
			continue
		}
		results = append(results, entity.RetrievalResult{
			Payload: p.payload,
			Score:   float32(similarity.Cosine(vector, p.vector)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func matchesFilter(payload entity.SourcePayload, filter *entity.SearchFilter) bool {
	if filter == nil {
		return true
	}
	for _, cond := range filter.Must {
		switch cond.Key {
		case "page":
			if !numberEquals(cond.Value, payload.Page) {
				return false
			}
		case "text":
			if str, ok := cond.Value.(string); !ok || str != payload.Text {
				return false
			}
		default:
			// Unknown payload field never matches.
			return false
		}
	}
	return true
}

// numberEquals compares a filter value (often float64 from JSON) to an int
// payload field.
func numberEquals(value any, target int) bool {
	switch v := value.(type) {
	case int:
		return v == target
	case float64:
		return v == float64(target)
	default:
		return false
	}
}
