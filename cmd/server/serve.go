package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"nba-stats-mcp/internal/logging"
)

// newMux builds the HTTP surface: the MCP endpoint plus health and
// optional Prometheus metrics.
func newMux(mcpHandler http.Handler, metricsHandler http.Handler, mcpPath string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(mcpPath, mcpHandler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}
	return mux
}

// runHTTP serves MCP over the streamable HTTP transport until the
// context is canceled, then drains in-flight requests.
func runHTTP(ctx context.Context, server *mcp.Server, metricsHandler http.Handler, logger *slog.Logger, addr, mcpPath string) {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: newMux(mcpHandler, metricsHandler, mcpPath),
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info(logger, "serving MCP over http", "addr", addr, "path", mcpPath)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(logger, "http shutdown", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(logger, "http transport failed", err)
		}
	}
}
