package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/feedbackhub/feedbackhub/internal/api/handler"
	"github.com/feedbackhub/feedbackhub/internal/api/middleware"
	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	FrontendURL  string
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Team         *handler.TeamHandler
	Feedback     *handler.FeedbackHandler
	FeedbackType *handler.FeedbackTypeHandler
	Dashboard    *handler.DashboardHandler
	Email        *handler.EmailHandler
	Admin        *handler.AdminHandler
}

type HTTPServer struct {
	server *http.Server
	config *ServerConfig
	logger *logger.Logger
}

func NewHTTPServer(config *ServerConfig,
	handlers *Handlers,
	tokens *auth.TokenService,
	logger *logger.Logger) *HTTPServer {

	router := setupRouter(config, handlers, tokens, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &HTTPServer{
		server: server,
		config: config,
		logger: logger.Component("http"),
	}
}

func (s *HTTPServer) Start(_ context.Context) error {
	s.logger.Info("starting http server", "addr", s.server.Addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", "error", err)
		}
	}()

	s.logger.Info("http server started successfully")
	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping http server")

	if err := s.server.Shutdown(ctx); err != nil {
		s.logger.Error("http server shutdown failed", "error", err)
		return err
	}

	s.logger.Info("http server stopped successfully")
	return nil
}

func setupRouter(
	config *ServerConfig,
	h *Handlers,
	tokens *auth.TokenService,
	logger *logger.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Security())
	r.Use(middleware.CORS(config.FrontendURL))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
			logger.Warn("failed to write health response", "error", err)
		}
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("FeedbackHub API is running!")); err != nil {
			logger.Warn("failed to write status response", "error", err)
		}
	})

	authenticate := middleware.Authenticate(tokens, logger)
	requireManager := middleware.RequireRole(logger, domain.RoleManager, domain.RoleAdministrator)
	requireAdmin := middleware.RequireRole(logger, domain.RoleAdministrator)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", h.Auth.Routes())

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/auth/profile", h.Auth.Profile)

			r.Mount("/users", h.User.Routes(requireManager, requireAdmin))
			r.Mount("/teams", h.Team.Routes(requireAdmin))
			r.Mount("/feedback", h.Feedback.Routes(requireManager))
			r.Mount("/feedback-types", h.FeedbackType.Routes(requireAdmin))
			r.Mount("/dashboard", h.Dashboard.Routes())

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Mount("/email", h.Email.Routes())
				r.Mount("/admin", h.Admin.Routes())
			})
		})
	})

	return r
}
