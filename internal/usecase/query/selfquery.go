package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// selfQueryStrategy asks the LLM to turn the free-form question into a
// structured search intent (query text + payload filters) before retrieval.
type selfQueryStrategy struct {
	llm      LLMConnector
	embedder Embedder
	store    VectorSearcher
}

func (s *selfQueryStrategy) Retrieve(ctx context.Context, question string) (*retrievedContext, error) {
	raw, err := s.llm.Generate(ctx, buildSelfQueryPrompt(question))
	if err != nil {
		return nil, fmt.Errorf("extract search intent: %w", err)
	}

	intent, err := parseIntent(raw)
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "search intent extracted",
		zap.String("query", intent.Query),
		zap.Int("filter_count", len(intent.Filters)),
	)

	vectors, err := s.embedder.Embed(ctx, []string{intent.Query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.store.Search(ctx, vectors[0], searchTopK, buildFilter(intent.Filters))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	texts := make([]string, len(results))
	sources := make([]entity.SourcePayload, len(results))
	for i, r := range results {
		texts[i] = r.Payload.Text
		sources[i] = r.Payload
	}

	filtersUsed := intent.Filters
	if filtersUsed == nil {
		filtersUsed = map[string]any{}
	}

	return &retrievedContext{
		Context:     joinTexts(texts),
		Sources:     sources,
		FiltersUsed: filtersUsed,
	}, nil
}

// parseIntent extracts the first balanced JSON object from the model output
// and decodes it. Models often wrap the JSON in prose despite instructions;
// anything that does not contain one valid object fails closed.
func parseIntent(raw string) (*entity.SelfQueryIntent, error) {
	object, err := extractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: no JSON object in model output %q", entity.ErrFilterParse, raw)
	}

	var intent entity.SelfQueryIntent
	if err := json.Unmarshal([]byte(object), &intent); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in model output %q: %v", entity.ErrFilterParse, raw, err)
	}

	if intent.Query == "" {
		return nil, fmt.Errorf("%w: missing query in model output %q", entity.ErrFilterParse, raw)
	}

	return &intent, nil
}

// extractJSONObject returns the first balanced {...} region of s, skipping
// braces inside JSON strings.
func extractJSONObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range s {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], nil
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return "", fmt.Errorf("no balanced JSON object found")
}

// buildFilter turns the extracted filters into one exact-match condition
// per entry, combined conjunctively. Keys are sorted for deterministic
// condition order.
func buildFilter(filters map[string]any) *entity.SearchFilter {
	if len(filters) == 0 {
		return nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]entity.FieldCondition, len(keys))
	for i, k := range keys {
		conditions[i] = entity.FieldCondition{Key: k, Value: filters[k]}
	}
	return &entity.SearchFilter{Must: conditions}
}
