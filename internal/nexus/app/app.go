package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/nexus/internal/nexus/blob"
	httpapi "github.com/aussiebroadwan/nexus/internal/nexus/http"
	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/internal/nexus/session"
	"github.com/aussiebroadwan/nexus/internal/nexus/store"
	"github.com/aussiebroadwan/nexus/internal/nexus/store/drivers/sqlite"
	"github.com/aussiebroadwan/nexus/pkg/cryptox"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
	"github.com/aussiebroadwan/nexus/pkg/totpx"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application is the Nexus server with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	sessions *session.Manager
	blobs    blob.Store

	authService         *service.AuthService
	mfaService          *service.MFAService
	userService         *service.UserService
	projectService      *service.ProjectService
	documentService     *service.DocumentService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "nexus",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// OpenStore opens the configured database and brings its schema up to date.
func OpenStore(cfg Config) (*sqlite.Store, error) {
	db, err := sqlite.NewStore(cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// New creates an Application with every dependency initialized and the
// bootstrap Admin seeded.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initBlobs(); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initServices()

	ctx := slogx.WithContext(context.Background(), app.logger)
	if _, err := app.bootstrapService.EnsureAdmin(ctx); err != nil {
		app.closeStores()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("nexus starting", "port", app.cfg.Port, "version", BuildVersion,
		"session_backend", app.cfg.SessionBackend)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		app.closeStores()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down nexus...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.sessions.Backend.Close(); err != nil {
		app.logger.Error("error closing session backend", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("nexus stopped")
	return nil
}

func (app *Application) closeStores() {
	if app.sessions != nil {
		_ = app.sessions.Backend.Close()
	}
	_ = app.db.Close()
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initSessions() error {
	var backend session.Backend

	switch app.cfg.SessionBackend {
	case SessionBackendRedis:
		rb := session.NewRedisBackend(session.RedisConfig{
			Addr:     app.cfg.RedisAddr,
			Password: app.cfg.RedisPassword,
			DB:       app.cfg.RedisDB,
			Prefix:   app.cfg.RedisPrefix,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rb.Ping(ctx); err != nil {
			_ = rb.Close()
			return fmt.Errorf("failed to reach redis at %s: %w", app.cfg.RedisAddr, err)
		}
		backend = rb
	default:
		backend = session.NewMemoryBackend(app.cfg.SessionTTL, app.cfg.HousekeepingInterval)
	}

	mgr := session.NewManager(backend, app.cfg.SessionTTL)
	mgr.CookieName = app.cfg.SessionCookieName
	mgr.CookieSecure = app.cfg.SessionCookieSecure
	mgr.CookieSameSite = session.ParseSameSite(app.cfg.SessionCookieSameSite)
	app.sessions = mgr

	app.logger.Info("session manager ready", "backend", app.cfg.SessionBackend, "ttl", app.cfg.SessionTTL)
	return nil
}

func (app *Application) initBlobs() error {
	fs, err := blob.NewFS(app.cfg.UploadDir)
	if err != nil {
		return err
	}
	app.blobs = fs
	return nil
}

func (app *Application) initServices() {
	engine := totpx.New(app.cfg.MFAIssuer)

	app.userService = &service.UserService{Store: app.db}
	app.authService = &service.AuthService{
		Store:    app.db,
		Sessions: app.sessions,
		TOTP:     engine,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		TOTP:   engine,
		QRSize: 256,
	}
	app.projectService = &service.ProjectService{Store: app.db}
	app.documentService = &service.DocumentService{
		Store:    app.db,
		Blobs:    app.blobs,
		MaxBytes: app.cfg.MaxUploadBytes,
	}
	app.bootstrapService = &service.BootstrapService{
		Users:    app.userService,
		Username: app.cfg.AdminUsername,
		Password: app.cfg.AdminPassword,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.sessions,
		app.blobs,
		app.logger,
	)

	router.AuthService = app.authService
	router.MFAService = app.mfaService
	router.UserService = app.userService
	router.ProjectService = app.projectService
	router.DocumentService = app.documentService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
