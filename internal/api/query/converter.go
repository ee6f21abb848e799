package query

import (
	"github.com/docuquery/rag-backend/internal/entity"
)

func toAskResponse(result *entity.AskResult) *entity.AskResponse {
	return &entity.AskResponse{
		Answer:       result.Answer,
		Context:      result.Context,
		Sources:      result.Sources,
		FiltersUsed:  result.FiltersUsed,
		RerankScores: result.RerankScores,
	}
}
