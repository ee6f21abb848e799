package document

import (
	"context"

	"github.com/docuquery/rag-backend/internal/entity"
)

type IngestUsecase interface {
	Ingest(ctx context.Context, file entity.FileData) (*entity.IngestResult, error)
}
