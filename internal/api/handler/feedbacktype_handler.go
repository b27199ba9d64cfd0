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

type FeedbackTypeHandler struct {
	typeService *service.FeedbackTypeService
	logger      *logger.Logger
}

func NewFeedbackTypeHandler(typeService *service.FeedbackTypeService, logger *logger.Logger) *FeedbackTypeHandler {
	return &FeedbackTypeHandler{
		typeService: typeService,
		logger:      logger.Component("handler/feedbacktype"),
	}
}

func (h *FeedbackTypeHandler) Routes(requireAdmin func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/", h.Create)
		r.Patch("/{id}", h.Update)
	})

	return r
}

func (h *FeedbackTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	// only administrators may ask for deactivated types as well
	includeInactive := r.URL.Query().Get("all") == "true"
	if includeInactive {
		claims := auth.ClaimsFromContext(r.Context())
		if claims == nil || claims.Role != domain.RoleAdministrator {
			includeInactive = false
		}
	}

	types, err := h.typeService.List(r.Context(), includeInactive)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, types, h.logger)
}

func (h *FeedbackTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.FeedbackTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	ft, err := h.typeService.Create(r.Context(), &input)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, ft, h.logger)
}

func (h *FeedbackTypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		badRequest(w, "invalid feedback type id")
		return
	}

	var input service.FeedbackTypeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	ft, err := h.typeService.Update(r.Context(), id, &input)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ft, h.logger)
}
