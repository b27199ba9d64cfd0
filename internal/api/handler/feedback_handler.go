package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/service"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	logger          *logger.Logger
}

func NewFeedbackHandler(feedbackService *service.FeedbackService, logger *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger.Component("handler/feedback"),
	}
}

func (h *FeedbackHandler) Routes(requireManager func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/score", h.SetScore)

	r.Group(func(r chi.Router) {
		r.Use(requireManager)
		r.Patch("/{id}/status", h.UpdateStatus)
	})

	return r
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateFeedbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	fb, err := h.feedbackService.Create(r.Context(), auth.ClaimsFromContext(r.Context()), &input)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, fb, h.logger)
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbackService.List(r.Context(), auth.ClaimsFromContext(r.Context()))
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, feedbacks, h.logger)
}

func (h *FeedbackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w, "invalid feedback id")
		return
	}

	fb, err := h.feedbackService.Get(r.Context(), auth.ClaimsFromContext(r.Context()), id)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, fb, h.logger)
}

type updateStatusRequest struct {
	Status domain.FeedbackStatus `json:"status"`
}

func (h *FeedbackHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w, "invalid feedback id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	fb, err := h.feedbackService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, fb, h.logger)
}

type setScoreRequest struct {
	Score int `json:"score"`
}

func (h *FeedbackHandler) SetScore(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w, "invalid feedback id")
		return
	}

	var req setScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	fb, err := h.feedbackService.SetScore(r.Context(), auth.ClaimsFromContext(r.Context()), id, req.Score)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, fb, h.logger)
}
