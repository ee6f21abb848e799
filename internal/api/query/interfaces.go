package query

import (
	"context"

	"github.com/docuquery/rag-backend/internal/entity"
)

type QueryUsecase interface {
	Answer(ctx context.Context, question string) (*entity.AskResult, error)
	AnswerWithSelfQuery(ctx context.Context, question string) (*entity.AskResult, error)
	AnswerWithRerank(ctx context.Context, question string) (*entity.AskResult, error)
}
