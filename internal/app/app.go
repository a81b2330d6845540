package app

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"hostprobe/internal/hostinfo"
	internalhttp "hostprobe/internal/http"
	"hostprobe/internal/instrumentation"
	"hostprobe/internal/shared/configs"
	"hostprobe/internal/shared/filestorages"
	"hostprobe/internal/shared/loggers"
	"hostprobe/internal/shared/metrics"

	"github.com/prometheus/procfs"
)

const appName = "hostprobe"

// Output holds the destinations of the two log channels: one request record
// per line on Requests, operational messages on Ops.
type Output struct {
	Requests io.Writer
	Ops      io.Writer
}

// App holds all application dependencies and manages lifecycle.
type App struct {
	config       *configs.Config
	appLogger    loggers.Logger
	hostIdentity string
	server       *http.Server
}

// New creates and initializes a new App instance.
func New(config *configs.Config, out Output) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level, out.Ops)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, appName).
		Logger()

	hostIdentity := hostinfo.ResolveIdentity()

	// Initialize metrics registry
	registry := metrics.NewRegistry(metrics.Namespace)
	if err := registry.RegisterProcessCollectors(); err != nil {
		return nil, fmt.Errorf("failed to register process collectors: %w", err)
	}

	// Initialize instrumentation
	instrumentationLogger := appLogger.With().Str(loggers.FieldComponent, "instrumentation").Logger()
	requestLog := loggers.NewRequestSink(loggers.NewFailSafeWriter(out.Requests, func(err error) {
		instrumentationLogger.Warn().Err(err).Msg("request log write failed")
	}))
	instrument, err := instrumentation.New(instrumentation.Options{
		Registry:     registry,
		Sampler:      hostinfo.NewSampler(procfs.DefaultMountPoint),
		HostIdentity: hostIdentity,
		RequestLog:   requestLog,
		OpsLog:       instrumentationLogger,
		RequestID:    internalhttp.RequestID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize instrumentation: %w", err)
	}

	// Initialize static assets
	assets, err := filestorages.NewFileStorage(config.Static.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize static assets: %w", err)
	}

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(internalhttp.RouterOptions{
		Registry:     registry,
		Assets:       assets,
		HostIdentity: hostIdentity,
		Logger:       httpLogger,
		Instrument:   instrument.Middleware,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
		ErrorLog:          loggers.NewStdLogger(httpLogger),
	}

	return &App{
		config:       config,
		appLogger:    appLogger,
		hostIdentity: hostIdentity,
		server:       server,
	}, nil
}

// Handler returns the fully wired HTTP handler.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Start starts the HTTP server on the configured port in a blocking manner.
func (app *App) Start() error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.server.Addr, err)
	}
	return app.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (app *App) Serve(ln net.Listener) error {
	app.appLogger.Info().
		Str(loggers.FieldHostIdentity, app.hostIdentity).
		Msgf("Starting %s service on %s (log_level=%s, static_root_dir=%s)",
			appName,
			ln.Addr(),
			app.config.Log.Level,
			app.config.Static.RootDir)

	return app.server.Serve(ln)
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}
