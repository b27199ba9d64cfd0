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

type AuthHandler struct {
	authService *service.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger.Component("handler/auth"),
	}
}

// Routes returns the public register/login routes. The profile route is
// mounted separately behind the authentication middleware.
func (h *AuthHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)

	return r
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	res, err := h.authService.Register(r.Context(), &input)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, res, h.logger)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	res, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, res, h.logger)
}

// Profile returns the caller's own public projection.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		WriteError(w, domain.ErrInvalidToken, h.logger)
		return
	}

	user, err := h.authService.Profile(r.Context(), claims.UserID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user, h.logger)
}
