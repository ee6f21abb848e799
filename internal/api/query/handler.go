package query

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/docuquery/rag-backend/internal/entity"
	"github.com/docuquery/rag-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase QueryUsecase
}

func NewHandler(usecase QueryUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// Ask handles POST /query - Answer with basic similarity retrieval
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, "Ask", h.usecase.Answer)
}

// AskSelfQuery handles POST /query/self - Answer with LLM-extracted filters
func (h *Handler) AskSelfQuery(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, "AskSelfQuery", h.usecase.AnswerWithSelfQuery)
}

// AskRerank handles POST /query/rerank - Answer with reranked retrieval
func (h *Handler) AskRerank(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, "AskRerank", h.usecase.AnswerWithRerank)
}

func (h *Handler) ask(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	answer func(ctx context.Context, question string) (*entity.AskResult, error),
) {
	ctx := logger.WithAction(r.Context(), action)

	var req entity.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "question is required",
			entity.ErrMissingField)
		return
	}

	ctxzap.Info(ctx, "answering question", zap.Int("question_length", len(question)))

	result, err := answer(ctx, question)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "question answered",
		zap.Int("source_count", len(result.Sources)),
		zap.Int("answer_length", len(result.Answer)),
	)

	h.respondJSON(w, http.StatusOK, toAskResponse(result))
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
	if errors.Is(err, entity.ErrFilterParse) {
		// The model produced unusable output; the raw text helps the caller
		// rephrase.
		h.respondError(ctx, w, http.StatusBadGateway, err.Error(), err)
	} else if errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
