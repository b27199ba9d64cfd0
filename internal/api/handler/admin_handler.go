package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/service"
)

// AdminHandler exposes the generic system settings store.
type AdminHandler struct {
	settingsService *service.SettingsService
	logger          *logger.Logger
}

func NewAdminHandler(settingsService *service.SettingsService, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		settingsService: settingsService,
		logger:          logger.Component("handler/admin"),
	}
}

func (h *AdminHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/settings/{key}", h.GetSetting)
	r.Put("/settings/{key}", h.PutSetting)

	return r
}

func (h *AdminHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingsService.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, setting, h.logger)
}

type putSettingRequest struct {
	Value string `json:"value"`
}

func (h *AdminHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	var req putSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	setting, err := h.settingsService.Set(r.Context(), chi.URLParam(r, "key"), req.Value)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, setting, h.logger)
}
