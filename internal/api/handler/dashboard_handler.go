package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *logger.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger.Component("handler/dashboard"),
	}
}

func (h *DashboardHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.Summary)

	return r
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Summary(r.Context(), auth.ClaimsFromContext(r.Context()))
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary, h.logger)
}
