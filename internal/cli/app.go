package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/worldforge"
	"github.com/aretw0/worldforge/internal/adapters/file"
	"github.com/aretw0/worldforge/internal/config"
	"github.com/aretw0/worldforge/internal/logging"
	"github.com/aretw0/worldforge/internal/presentation/tui"
	"github.com/aretw0/worldforge/pkg/adapters/memory"
	"github.com/aretw0/worldforge/pkg/adapters/redis"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/observability"
	"github.com/aretw0/worldforge/pkg/ports"
	"github.com/aretw0/worldforge/pkg/session"
)

var tuiRenderer = tui.NewRenderer

// App carries the configuration and output streams shared by every command.
type App struct {
	Config config.Config
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer

	// Rich enables colour and Markdown rendering (stdout is a terminal).
	Rich bool
	// Debug attaches logging hooks to the engine.
	Debug bool

	closers []func() error
}

// NewApp creates an App. A nil logger discards logs.
func NewApp(cfg config.Config, logger *slog.Logger, out, errOut io.Writer) *App {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &App{
		Config: cfg,
		Logger: logger,
		Out:    out,
		Err:    errOut,
	}
}

// Close releases resources opened by the App (e.g. Redis connections).
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// Engine creates a WorldForge engine. Presets come from the configured
// directory when it exists, otherwise the built-ins are served.
func (a *App) Engine(extra ...domain.LifecycleHooks) (*worldforge.Engine, error) {
	hooks := domain.LifecycleHooks{}
	if a.Debug {
		hooks = hooks.Merge(observability.LoggingHooks(a.Logger))
	}
	for _, h := range extra {
		hooks = hooks.Merge(h)
	}

	presetsDir := ""
	if dir := a.Config.Presets.Dir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			presetsDir = dir
		} else {
			a.Logger.Debug("Presets directory not found, using built-in presets", "dir", dir)
		}
	}

	eng, err := worldforge.New(presetsDir,
		worldforge.WithLogger(a.Logger),
		worldforge.WithLifecycleHooks(hooks),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return eng, nil
}

// HistoryStore opens the configured history backend.
func (a *App) HistoryStore() (ports.HistoryStore, ports.DistributedLocker, error) {
	h := a.Config.History
	switch h.Backend {
	case config.BackendMemory:
		return memory.NewStore(h.Limit), nil, nil
	case config.BackendFile:
		return file.New(h.Path, h.Limit), nil, nil
	case config.BackendRedis:
		r := a.Config.Redis
		store := redis.New(r.Addr, r.Password, r.DB,
			redis.WithPrefix(r.Prefix),
			redis.WithLimit(h.Limit),
		)
		a.closers = append(a.closers, store.Close)
		return store, redis.NewLocker(store.Client(), r.Prefix), nil
	}
	return nil, nil, fmt.Errorf("unknown history backend %q", h.Backend)
}

// Recorder wires the converter to the configured history backend.
// converter may be nil for commands that only read or clear history.
func (a *App) Recorder(converter ports.Converter) (*session.Recorder, error) {
	store, locker, err := a.HistoryStore()
	if err != nil {
		return nil, err
	}
	opts := []session.Option{session.WithLogger(a.Logger)}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker))
	}
	return session.NewRecorder(converter, store, opts...), nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

// render prints markdown through glamour in rich mode, as-is otherwise.
func (a *App) render(markdown string) {
	if !a.Rich {
		fmt.Fprint(a.Out, markdown)
		return
	}
	out, err := tuiRenderer()(markdown)
	if err != nil {
		a.Logger.Warn("Markdown rendering failed", "err", err)
		out = markdown
	}
	fmt.Fprint(a.Out, out)
}

// Ping checks connectivity for backends that have it.
func (a *App) Ping(ctx context.Context, store ports.HistoryStore) error {
	if _, err := store.Len(ctx); err != nil {
		return fmt.Errorf("history backend %s unavailable: %w", a.Config.History.Backend, err)
	}
	return nil
}
