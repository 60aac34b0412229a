package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/aiforms/internal/config"
	httpadapter "github.com/aretw0/aiforms/pkg/adapters/http"
	"github.com/aretw0/aiforms/pkg/adapters/mcp"
)

// ServeOptions configures the HTTP server.
type ServeOptions struct {
	Debug bool
}

// NewAPIHandler builds the HTTP API over the forms directory, with its own
// metrics registry served at /metrics.
func NewAPIHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	reg := prometheus.NewRegistry()
	svc, metrics, err := newService(ctx, cfg, logger, reg)
	if err != nil {
		return nil, err
	}
	return httpadapter.NewHandler(svc,
		httpadapter.WithLogger(logger),
		httpadapter.WithMetrics(metrics.Handler()),
	), nil
}

// Serve runs the HTTP API on cfg.Addr until ctx is done.
func Serve(ctx context.Context, cfg *config.Config, opts ServeOptions) error {
	logger := createLogger(cfg.LogLevel, opts.Debug)
	handler, err := NewAPIHandler(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Warn("aiforms server listening", "addr", srv.Addr, "forms", cfg.FormsDir)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		logger.Warn("aiforms server stopped gracefully")
		return nil
	}
}

// MCPOptions configures the MCP server.
type MCPOptions struct {
	Transport string // stdio or sse
	Port      int
	Debug     bool
}

// ServeMCP runs the MCP server until ctx is done (sse) or stdin closes (stdio).
// Logs always go to stderr so they cannot corrupt JSON-RPC on stdout.
func ServeMCP(ctx context.Context, cfg *config.Config, opts MCPOptions) error {
	logger := createLogger(cfg.LogLevel, opts.Debug)
	svc, _, err := newService(ctx, cfg, logger, prometheus.NewRegistry())
	if err != nil {
		return err
	}
	srv := mcp.NewServer(svc, logger)

	switch opts.Transport {
	case "stdio":
		logger.Info("starting aiforms MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		err := srv.ServeSSE(ctx, opts.Port)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
