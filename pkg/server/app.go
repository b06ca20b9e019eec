package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "StockLens/internal/domain/repository"
	"StockLens/internal/usecase"
	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	applogger "StockLens/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	publisher  drepo.AnalysisPublisher

	Sessions     *usecase.SessionManager
	Registry     *usecase.Registry
	Orchestrator *usecase.Orchestrator
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	httpServer *xhttp.Server,
	publisher drepo.AnalysisPublisher,
	sessions *usecase.SessionManager,
	registry *usecase.Registry,
	orch *usecase.Orchestrator,
) *App {
	if log == nil {
		log = applogger.Nop()
	}
	if publisher == nil {
		publisher = drepo.NopPublisher{}
	}
	return &App{
		cfg:          cfg,
		log:          log,
		httpServer:   httpServer,
		publisher:    publisher,
		Sessions:     sessions,
		Registry:     registry,
		Orchestrator: orch,
	}
}

// Logger returns the application logger.
func (a *App) Logger() *applogger.Logger { return a.log }

// Run starts the HTTP server and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and blocks until ctx is done.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("stocklens started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("events", a.cfg.Events.Enabled),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// Close releases resources that outlive a single request.
func (a *App) Close() error {
	if err := a.publisher.Close(); err != nil {
		a.log.Warn("publisher close error", applogger.Error(err))
		return err
	}
	return nil
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	// the caller's context is already cancelled here
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	_ = a.Close()

	a.log.Info("shutdown complete")
	return nil
}
