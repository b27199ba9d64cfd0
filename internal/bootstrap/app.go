package bootstrap

import (
	"context"
	"fmt"

	"github.com/feedbackhub/feedbackhub/internal/api"
	"github.com/feedbackhub/feedbackhub/internal/api/handler"
	"github.com/feedbackhub/feedbackhub/internal/auth"
	"github.com/feedbackhub/feedbackhub/internal/notify"
	"github.com/feedbackhub/feedbackhub/internal/pkg/config"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
	"github.com/feedbackhub/feedbackhub/internal/pkg/postgres"
	"github.com/feedbackhub/feedbackhub/internal/repository"
	"github.com/feedbackhub/feedbackhub/internal/service"
)

type Application struct {
	Config   *config.Config
	Logger   *logger.Logger
	Postgres *postgres.Connection
	Migrator *postgres.Migrator

	UserRepo     repository.UserRepository
	TeamRepo     repository.TeamRepository
	TypeRepo     repository.FeedbackTypeRepository
	FeedbackRepo repository.FeedbackRepository
	SettingsRepo repository.SettingsRepository

	Tokens     *auth.TokenService
	Dispatcher *notify.Dispatcher
	Mail       *notify.Service

	AuthService      *service.AuthService
	UserService      *service.UserService
	TeamService      *service.TeamService
	TypeService      *service.FeedbackTypeService
	FeedbackService  *service.FeedbackService
	DashboardService *service.DashboardService
	EmailService     *service.EmailService
	SettingsService  *service.SettingsService

	HTTPServer *api.HTTPServer
}

func New() (*Application, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.LogAddSource,
		Service:   cfg.ServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	pg, err := postgres.New(log, &postgres.Config{
		Host:              cfg.DatabaseHost,
		Port:              cfg.DatabasePort,
		Username:          cfg.DatabaseUser,
		Password:          cfg.DatabasePassword,
		Database:          cfg.DatabaseName,
		Schema:            cfg.DatabaseSchema,
		SSLMode:           cfg.DatabaseSSLMode,
		MaxConns:          cfg.DatabaseMaxConns,
		MinConns:          cfg.DatabaseMinConns,
		MaxConnLifetime:   cfg.DatabaseMaxConnLifetime,
		MaxConnIdleTime:   cfg.DatabaseMaxConnIdleTime,
		HealthCheckPeriod: cfg.DatabaseHealthCheckPeriod,
		ConnectTimeout:    cfg.DatabaseConnectTimeout,
		AcquireTimeout:    cfg.DatabaseAcquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection: %w", err)
	}

	return &Application{
		Config:   cfg,
		Logger:   log,
		Postgres: pg,
	}, nil
}

func (app *Application) Init(ctx context.Context) error {
	app.Logger.Info("initializing application")

	if err := app.Postgres.Connect(ctx); err != nil {
		return fmt.Errorf("postgres connection failed: %w", err)
	}

	app.Migrator = postgres.NewMigrator(app.Postgres.Pool(), &postgres.MigrationConfig{
		Timeout:   app.Config.DatabaseMigrationTimeout,
		TableName: app.Config.DatabaseMigrationTable,
		Enabled:   app.Config.DatabaseMigrationEnabled,
	}, app.Logger)

	if err := app.Migrator.RunMigrations(ctx); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}

	app.UserRepo = repository.NewUserRepo(app.Postgres.Pool(), app.Logger)
	app.TeamRepo = repository.NewTeamRepo(app.Postgres.Pool(), app.Logger)
	app.TypeRepo = repository.NewFeedbackTypeRepo(app.Postgres.Pool(), app.Logger)
	app.FeedbackRepo = repository.NewFeedbackRepo(app.Postgres.Pool(), app.Logger)
	app.SettingsRepo = repository.NewSettingsRepo(app.Postgres.Pool(), app.Logger)

	app.Tokens = auth.NewTokenService(
		[]byte(app.Config.JWTSecret),
		app.Config.JWTIssuer,
		app.Config.JWTTTL,
	)

	var sender notify.Sender
	if app.Config.EmailEnabled {
		sender = notify.NewSMTPSender(&notify.SMTPConfig{
			Host:     app.Config.SMTPHost,
			Port:     app.Config.SMTPPort,
			Username: app.Config.SMTPUser,
			Password: app.Config.SMTPPassword,
			From:     app.Config.EmailFrom,
		}, app.Logger)
	} else {
		sender = notify.NewNopSender(app.Logger)
	}

	app.Dispatcher = notify.NewDispatcher(sender, app.Config.EmailQueueLen, app.Logger)
	app.Dispatcher.Start()

	composer := notify.NewComposer(app.Config.FrontendURL)
	app.Mail = notify.NewService(composer, app.Dispatcher, sender, app.Logger)

	app.AuthService = service.NewAuthService(app.UserRepo, app.TeamRepo, app.Tokens, app.Logger)
	app.UserService = service.NewUserService(app.UserRepo, app.TeamRepo, app.Mail, app.Logger)
	app.TeamService = service.NewTeamService(app.TeamRepo, app.UserRepo, app.Logger)
	app.TypeService = service.NewFeedbackTypeService(app.TypeRepo, app.Logger)
	app.FeedbackService = service.NewFeedbackService(app.FeedbackRepo, app.UserRepo, app.TypeRepo, app.Mail, app.Logger)
	app.DashboardService = service.NewDashboardService(app.FeedbackRepo, app.UserRepo, app.Logger)
	app.EmailService = service.NewEmailService(app.UserRepo, app.FeedbackRepo, app.Mail, app.Logger)
	app.SettingsService = service.NewSettingsService(app.SettingsRepo, app.Logger)

	handlers := &api.Handlers{
		Auth:         handler.NewAuthHandler(app.AuthService, app.Logger),
		User:         handler.NewUserHandler(app.UserService, app.Logger),
		Team:         handler.NewTeamHandler(app.TeamService, app.Logger),
		Feedback:     handler.NewFeedbackHandler(app.FeedbackService, app.Logger),
		FeedbackType: handler.NewFeedbackTypeHandler(app.TypeService, app.Logger),
		Dashboard:    handler.NewDashboardHandler(app.DashboardService, app.Logger),
		Email:        handler.NewEmailHandler(app.EmailService, app.Logger),
		Admin:        handler.NewAdminHandler(app.SettingsService, app.Logger),
	}

	serverConfig := &api.ServerConfig{
		Host:         app.Config.ServerHost,
		Port:         app.Config.ServerPort,
		ReadTimeout:  app.Config.ServerReadTimeout,
		WriteTimeout: app.Config.ServerWriteTimeout,
		IdleTimeout:  app.Config.ServerIdleTimeout,
		FrontendURL:  app.Config.FrontendURL,
	}

	app.HTTPServer = api.NewHTTPServer(serverConfig, handlers, app.Tokens, app.Logger)

	if err := app.HTTPServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start http server: %w", err)
	}

	app.Logger.Info("application initialized successfully")
	return nil
}

func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("shutting down application")

	if app.HTTPServer != nil {
		if err := app.HTTPServer.Stop(ctx); err != nil {
			app.Logger.Error("error stopping http server", "error", err)
		}
	}

	if app.Dispatcher != nil {
		if err := app.Dispatcher.Stop(ctx); err != nil {
			app.Logger.Error("error stopping email dispatcher", "error", err)
		}
	}

	app.Postgres.Close()

	app.Logger.Info("application shutdown completed")
	return nil
}

func (app *Application) Health(ctx context.Context) error {
	if err := app.Postgres.Health(ctx); err != nil {
		return fmt.Errorf("postgres health check failed: %w", err)
	}
	if err := app.Migrator.Health(ctx); err != nil {
		return fmt.Errorf("migrator health check failed: %w", err)
	}
	return nil
}
