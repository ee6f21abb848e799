package document

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/docuquery/rag-backend/internal/config"
	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/pkg/logger"
	"github.com/docuquery/rag-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   IngestUsecase
	validator *validator.Validator
	uploadCfg config.FileUploadConfig
}

func NewHandler(
	usecase IngestUsecase,
	validator *validator.Validator,
	uploadCfg config.FileUploadConfig,
) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		uploadCfg: uploadCfg,
	}
}

// UploadDocument handles POST /documents - Ingest a PDF document
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadDocument")

	if err := r.ParseMultipartForm(h.uploadCfg.MaxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "failed to parse form", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ctxzap.Error(ctx, "missing document file", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "file is required", err)
		return
	}
	defer file.Close()

	if err := h.validator.ValidateUpload(header); err != nil {
		ctxzap.Error(ctx, "failed to validate upload", zap.Error(err))
		h.handleUsecaseError(ctx, w, err)
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		ctxzap.Error(ctx, "failed to read uploaded file", zap.Error(err))
		h.respondError(ctx, w, http.StatusInternalServerError, "failed to read file", err)
		return
	}

	filename := validator.SanitizeFilename(header.Filename)
	ctx = logger.AddFields(ctx,
		zap.String("filename", filename),
		zap.Int64("size_bytes", header.Size),
	)
	ctxzap.Info(ctx, "ingesting document")

	result, err := h.usecase.Ingest(ctx, entity.FileData{
		Filename: filename,
		Content:  content,
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "document ingested successfully",
		zap.String("document_id", result.DocumentID),
		zap.Int("chunk_count", result.Chunks),
	)

	h.respondJSON(w, http.StatusCreated, entity.UploadDocumentResponse{
		DocumentID: result.DocumentID,
		Pages:      result.Pages,
		Chunks:     result.Chunks,
		Message:    "document indexed successfully",
	})
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrInvalidExtension) || errors.Is(err, entity.ErrFileTooLarge) || errors.Is(err, entity.ErrInvalidFile) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid file", err)
	} else if errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
