package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/worldforge/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/worldforge/pkg/adapters/mcp"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/observability"
)

// ShutdownTimeout bounds how long outstanding requests may run after a
// shutdown signal.
const ShutdownTimeout = 5 * time.Second

// NewHTTPHandler builds the HTTP API with history, presets and (if enabled)
// metrics wired in.
func (a *App) NewHTTPHandler(ctx context.Context) (http.Handler, error) {
	var metrics *observability.Metrics
	var hooks []domain.LifecycleHooks
	if a.Config.Metrics.Enabled {
		metrics = observability.NewMetrics()
		hooks = append(hooks, metrics.Hooks())
	}

	eng, err := a.Engine(hooks...)
	if err != nil {
		return nil, err
	}
	rec, err := a.Recorder(eng)
	if err != nil {
		return nil, err
	}
	if err := a.Ping(ctx, rec.Store()); err != nil {
		return nil, err
	}

	opts := []httpAdapter.Option{
		httpAdapter.WithRecorder(rec),
		httpAdapter.WithPresets(eng.PresetLoader()),
		httpAdapter.WithLogger(a.Logger),
	}
	if metrics != nil {
		if n, err := rec.Store().Len(ctx); err == nil {
			metrics.SetHistoryEntries(n)
		}
		opts = append(opts, httpAdapter.WithMetrics(metrics))
	}
	return httpAdapter.NewHandler(eng, opts...)
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func (a *App) Serve(ctx context.Context, port string) error {
	handler, err := a.NewHTTPHandler(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting WorldForge Server", "addr", srv.Addr, "history", a.Config.History.Backend)
		a.printf("Starting WorldForge Server on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.printf("\nStart shutdown...\n")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("Graceful shutdown did not complete", "timeout", ShutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		a.printf("WorldForge Server stopped gracefully\n")
		return nil
	}
}

// Transports supported by ServeMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP runs the MCP server over stdio or SSE.
func (a *App) ServeMCP(ctx context.Context, transport string, port int) error {
	eng, err := a.Engine()
	if err != nil {
		return err
	}
	rec, err := a.Recorder(eng)
	if err != nil {
		return err
	}
	srv := mcpAdapter.NewServer(eng, eng.PresetLoader(),
		mcpAdapter.WithRecorder(rec),
		mcpAdapter.WithLogger(a.Logger),
	)

	switch transport {
	case TransportStdio:
		a.Logger.Info("Starting WorldForge MCP Server (Stdio)")
		return srv.ServeStdio()
	case TransportSSE:
		a.Logger.Info("Starting WorldForge MCP Server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		a.Logger.Info("MCP Server stopped gracefully")
		return nil
	}
	return fmt.Errorf("unknown transport: %s. Supported: %s, %s", transport, TransportStdio, TransportSSE)
}
