// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/lineup/internal/logging"
)

// HTTPServer is the lifecycle half of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server under a supervisor. Cancelling the
// Serve context drains open connections for up to shutdownTimeout.
//
//	server := &http.Server{Addr: ":8080", Handler: router.Setup()}
//	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	name            string
}

// NewHTTPServerService creates a new HTTP server service wrapper.
// A non-positive shutdownTimeout means 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		name:            "http-server",
	}
}

// Serve implements suture.Service. http.ErrServerClosed is not an error.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(h.name)
	if srv, ok := h.server.(*http.Server); ok {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
	}

	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already cancelled; shutdown needs its own deadline
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		logger.Info().Msg("HTTP server stopped")
		return ctx.Err()
	}
}

// String implements fmt.Stringer for suture's log messages.
func (h *HTTPServerService) String() string {
	return h.name
}
