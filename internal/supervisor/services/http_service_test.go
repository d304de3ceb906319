// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package services

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ suture.Service = (*CacheSweeperService)(nil)
)

// mockHTTPServer is a test double for HTTPServer.
type mockHTTPServer struct {
	listenErr   error
	block       bool
	shutdownErr error
	listens     atomic.Int32
	shutdowns   atomic.Int32
	started     chan struct{}
	stopCh      chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{
		started: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (m *mockHTTPServer) ListenAndServe() error {
	m.listens.Add(1)
	select {
	case m.started <- struct{}{}:
	default:
	}
	if m.listenErr != nil {
		return m.listenErr
	}
	if m.block {
		<-m.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (m *mockHTTPServer) Shutdown(context.Context) error {
	m.shutdowns.Add(1)
	close(m.stopCh)
	return m.shutdownErr
}

func serveUntilStarted(t *testing.T, svc *HTTPServerService, server *mockHTTPServer) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case <-server.started:
	case <-time.After(time.Second):
		cancel()
		t.Fatal("server did not start")
	}
	return cancel, errCh
}

func TestNewHTTPServerService(t *testing.T) {
	server := newMockHTTPServer()

	tests := []struct {
		in, want time.Duration
	}{
		{30 * time.Second, 30 * time.Second},
		{0, 10 * time.Second},
		{-5 * time.Second, 10 * time.Second},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(server, tt.in)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("NewHTTPServerService(%v).shutdownTimeout = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
	}
	if got := NewHTTPServerService(server, 0).String(); got != "http-server" {
		t.Errorf("String() = %q, want http-server", got)
	}
}

func TestHTTPServerService_Serve(t *testing.T) {
	t.Run("shuts down gracefully on context cancellation", func(t *testing.T) {
		server := newMockHTTPServer()
		server.block = true
		svc := NewHTTPServerService(server, time.Second)

		cancel, errCh := serveUntilStarted(t, svc, server)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
		if server.listens.Load() != 1 || server.shutdowns.Load() != 1 {
			t.Errorf("listens = %d, shutdowns = %d, want 1 each", server.listens.Load(), server.shutdowns.Load())
		}
	})

	t.Run("returns error on startup failure", func(t *testing.T) {
		bindErr := errors.New("bind: address already in use")
		server := newMockHTTPServer()
		server.listenErr = bindErr

		err := NewHTTPServerService(server, time.Second).Serve(context.Background())
		if !errors.Is(err, bindErr) {
			t.Errorf("Serve() = %v, want wrapped bind error", err)
		}
	})

	t.Run("returns shutdown error", func(t *testing.T) {
		shutdownErr := errors.New("shutdown timeout")
		server := newMockHTTPServer()
		server.block = true
		server.shutdownErr = shutdownErr
		svc := NewHTTPServerService(server, time.Second)

		cancel, errCh := serveUntilStarted(t, svc, server)
		cancel()

		if err := <-errCh; !errors.Is(err, shutdownErr) {
			t.Errorf("Serve() = %v, want shutdown error", err)
		}
	})
}

func TestHTTPServerService_RealServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	server := &http.Server{
		Addr: addr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	var resp *http.Response
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err = http.Get("http://" + addr + "/")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server never answered: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestHTTPServerService_WithSupervisor(t *testing.T) {
	server := newMockHTTPServer()
	server.block = true

	sup := suture.New("test-sup", suture.Spec{
		FailureThreshold: 3,
		FailureBackoff:   10 * time.Millisecond,
		Timeout:          2 * time.Second,
	})
	sup.Add(NewHTTPServerService(server, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	select {
	case <-server.started:
	case <-time.After(time.Second):
		t.Fatal("server did not start")
	}
	cancel()
	<-errCh

	if server.shutdowns.Load() < 1 {
		t.Error("server Shutdown was not called")
	}
}
