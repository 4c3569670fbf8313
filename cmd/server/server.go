package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// shutdownGrace bounds how long in-flight requests get to finish once a
// stop signal arrives.
const shutdownGrace = 10 * time.Second

// serve runs the HTTP server until the parent context is canceled or a
// SIGINT or SIGTERM arrives, then drains in-flight requests and releases
// the application's background resources.
func (app *application) serve(ctx context.Context, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: handler,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("listening for requests", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		// ListenAndServe only returns on failure here; Shutdown has not
		// been called yet.
		return fmt.Errorf("server stopped unexpectedly: %w", err)
	case <-ctx.Done():
		app.logger.Info("shutdown requested, draining in-flight requests")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("shutdown did not complete cleanly: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listener closed with error: %w", err)
	}

	app.cleanup()
	app.logger.Info("shutdown complete")
	return nil
}
