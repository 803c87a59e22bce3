package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"StayPulse/internal/domain/repository"
	"StayPulse/internal/service/stream"
	"StayPulse/internal/usecase"
	"StayPulse/pkg/config"
	xhttp "StayPulse/pkg/http"
	applogger "StayPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	dash       *usecase.Dashboard
	hub        *stream.Hub
	source     repository.ListingSource
	pub        repository.Publisher
	handler    xhttp.Handler
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	dash *usecase.Dashboard,
	hub *stream.Hub,
	source repository.ListingSource,
	pub repository.Publisher,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:     cfg,
		l:       l,
		dash:    dash,
		hub:     hub,
		source:  source,
		pub:     pub,
		handler: handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Publish the initial unfiltered snapshot before serving.
	if _, err := a.dash.Apply(ctx, ""); err != nil {
		a.l.Error("initial snapshot failed", applogger.Error(err))
		return err
	}
	opts := a.dash.Neighbourhoods()
	a.l.Info("dashboard ready",
		applogger.Int("listings", opts.TotalListings),
		applogger.Int("neighbourhoods", len(opts.Neighbourhoods)),
	)

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.l.Error("http shutdown error", applogger.Error(err))
	}

	a.hub.Close()

	if err := a.source.Close(); err != nil {
		a.l.Warn("listing source close error", applogger.Error(err))
	}
	if err := a.pub.Close(); err != nil {
		a.l.Warn("publisher close error", applogger.Error(err))
	}

	a.l.Info("shutdown complete")
	return nil
}
