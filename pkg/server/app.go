package server

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "RankPull/internal/domain/repository"
	"RankPull/internal/usecase"
	"RankPull/pkg/cache"
	"RankPull/pkg/config"
	xhttp "RankPull/pkg/http"
	xlogger "RankPull/pkg/logger"
)

// scheduleEvent is the trigger payload for scheduler-driven invocations.
var scheduleEvent = json.RawMessage(`{"source":"schedule"}`)

// App encapsulates the application lifecycle: the HTTP surface, the
// invocation scheduler, and shutdown of shared clients.
type App struct {
	cfg        *config.Config
	logger     *xlogger.Logger
	runner     *usecase.ReportRunner
	handler    xhttp.Handler
	publisher  drepo.Publisher
	store      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *xlogger.Logger,
	runner *usecase.ReportRunner,
	handler xhttp.Handler,
	publisher drepo.Publisher,
	store cache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		runner:    runner,
		handler:   handler,
		publisher: publisher,
		store:     store,
	}
}

// Run starts the HTTP server and the scheduler, then blocks until a shutdown
// signal arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)
	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", xlogger.Error(err))
		return err
	}
	a.logger.Info("http server started", xlogger.Int("port", a.cfg.Server.Port))

	if a.cfg.Schedule.Enabled {
		go a.schedule(ctx)
		a.logger.Info("scheduler started", xlogger.Duration("interval", a.cfg.Schedule.Interval))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// RunOnce performs a single invocation and exits. Used for cron- or
// lambda-style deployments where the process lives for one report.
func (a *App) RunOnce(ctx context.Context) error {
	_, err := a.runner.Handle(ctx, scheduleEvent)
	if cerr := a.closeClients(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// schedule runs one invocation immediately, then one per interval tick.
func (a *App) schedule(ctx context.Context) {
	if _, err := a.runner.Handle(ctx, scheduleEvent); err != nil {
		a.logger.Error("scheduled invocation failed", xlogger.Error(err))
	}

	ticker := time.NewTicker(a.cfg.Schedule.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.runner.Handle(ctx, scheduleEvent); err != nil {
				a.logger.Error("scheduled invocation failed", xlogger.Error(err))
			}
		}
	}
}

// shutdown gracefully stops the HTTP server and closes shared clients.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("http shutdown error", xlogger.Error(err))
		}
	}

	if err := a.closeClients(); err != nil {
		a.logger.Warn("client close error", xlogger.Error(err))
	}

	a.logger.Info("shutdown complete")
	return nil
}

func (a *App) closeClients() error {
	var firstErr error
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			firstErr = err
		}
	}
	if closer, ok := a.store.(io.Closer); ok && closer != nil {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
