package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/service"
)

type EmailHandler struct {
	emailService *service.EmailService
	logger       *logger.Logger
}

func NewEmailHandler(emailService *service.EmailService, logger *logger.Logger) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
		logger:       logger.Component("handler/email"),
	}
}

// Routes are administrator only; the role guard is applied by the caller.
func (h *EmailHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/test", h.SendTest)
	r.Post("/weekly-report", h.SendWeeklyReport)

	return r
}

func (h *EmailHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	var input service.TestEmailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	if err := h.emailService.SendTest(r.Context(), &input); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "email sent"}, h.logger)
}

func (h *EmailHandler) SendWeeklyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.emailService.SendWeeklyReport(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result, h.logger)
}
