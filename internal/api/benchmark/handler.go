package benchmark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase BenchmarkUsecase
}

func NewHandler(usecase BenchmarkUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// Evaluate handles POST /benchmark/evaluate - Score candidate answers
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Evaluate")

	var req entity.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := validateEvaluateRequest(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	ctxzap.Info(ctx, "evaluating candidates", zap.Int("candidate_count", len(req.Candidates)))

	result, err := h.usecase.Evaluate(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "candidates evaluated", zap.String("best_id", result.BestID))

	h.respondJSON(w, http.StatusOK, result)
}

func validateEvaluateRequest(req *entity.EvaluateRequest) error {
	if strings.TrimSpace(req.Question) == "" {
		return fmt.Errorf("%w: question", entity.ErrMissingField)
	}
	if len(req.Candidates) == 0 {
		return fmt.Errorf("%w: candidates", entity.ErrMissingField)
	}
	for i, c := range req.Candidates {
		if c.ID == "" {
			return fmt.Errorf("%w: candidates[%d].id", entity.ErrMissingField, i)
		}
	}
	return nil
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
	if errors.Is(err, entity.ErrNoDocument) {
		h.respondError(ctx, w, http.StatusNotFound, "no document ingested", err)
	} else if errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
