// ABOUTME: HTTP server lifecycle for the portal API
// ABOUTME: Serves until context cancellation, then shuts down gracefully

package portal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
	maxHeaderBytes  = 1 << 20
)

// Serve starts the portal HTTP server and blocks until the context is
// canceled or the server fails. Graceful shutdown waits up to five seconds
// for in-flight requests.
func (p *Portal) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	p.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:           addr,
		Handler:        mux,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		MaxHeaderBytes: maxHeaderBytes,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p.logger.Info("portal listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		p.logger.Info("shutting down portal", "grace_period", shutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			p.logger.Error("server shutdown error", "error", err)
		}
		return nil
	})

	return g.Wait()
}
