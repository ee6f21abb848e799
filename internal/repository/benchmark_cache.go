package repository

import (
	"time"

	"github.com/docuquery/rag-backend/internal/entity"
	cache "github.com/patrickmn/go-cache"
)

const benchmarkKey = "benchmark_state"

// BenchmarkCache is the process-wide single-slot benchmark context. The
// underlying cache is safe for concurrent use, but the slot itself has
// last-writer-wins semantics: concurrent upload/query/evaluate requests can
// overwrite each other's document/query/answer. Accepted for single-session
// deployments; the state is not persisted across restarts.
type BenchmarkCache struct {
	cache *cache.Cache
}

func NewBenchmarkCache() *BenchmarkCache {
	return &BenchmarkCache{
		cache: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

// SetDocument replaces the whole slot with a fresh document context,
// clearing any previous query and benchmark answer.
func (c *BenchmarkCache) SetDocument(text string) {
	c.cache.Set(benchmarkKey, entity.BenchmarkState{DocumentText: text}, cache.NoExpiration)
}

// SetLastQuery records the most recent question asked against the document.
func (c *BenchmarkCache) SetLastQuery(query string) {
	state, _ := c.Get()
	state.LastQuery = query
	c.cache.Set(benchmarkKey, state, cache.NoExpiration)
}

// SetBenchmark records the query and its generated reference answer.
func (c *BenchmarkCache) SetBenchmark(query, answer string) {
	state, _ := c.Get()
	state.LastQuery = query
	state.BenchmarkAnswer = answer
	c.cache.Set(benchmarkKey, state, cache.NoExpiration)
}

// Get returns the current slot. The second value reports whether any
// document has been ingested yet.
func (c *BenchmarkCache) Get() (entity.BenchmarkState, bool) {
	v, ok := c.cache.Get(benchmarkKey)
	if !ok {
		return entity.BenchmarkState{}, false
	}
	return v.(entity.BenchmarkState), true
}
