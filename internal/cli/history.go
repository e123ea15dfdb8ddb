package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/worldforge/internal/presentation/tui"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/export"
)

// HistoryList prints up to limit entries, newest first.
func (a *App) HistoryList(ctx context.Context, limit int, asJSON bool) error {
	store, _, err := a.HistoryStore()
	if err != nil {
		return err
	}
	entries, err := store.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if asJSON {
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	a.render(tui.HistoryMarkdown(entries))
	return nil
}

// HistoryClear removes every entry, holding the history lock when the
// backend is shared.
func (a *App) HistoryClear(ctx context.Context) error {
	rec, err := a.Recorder(nil)
	if err != nil {
		return err
	}
	n, err := rec.Store().Len(ctx)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if err := rec.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	a.Logger.Info("History cleared", "entries", n)
	a.printf("Removed %d entries.\n", n)
	return nil
}

// HistoryExport writes the whole history as CSV.
func (a *App) HistoryExport(ctx context.Context, w io.Writer) error {
	store, _, err := a.HistoryStore()
	if err != nil {
		return err
	}
	entries, err := store.List(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if err := export.WriteHistoryCSV(w, entries); err != nil {
		return fmt.Errorf("failed to export history: %w", err)
	}
	a.Logger.Info("History exported", "entries", len(entries))
	return nil
}

// HistoryImport appends entries from a CSV export, oldest first so the
// resulting order matches the file.
func (a *App) HistoryImport(ctx context.Context, r io.Reader) (int, error) {
	entries, err := export.ReadHistoryCSV(r)
	if err != nil {
		return 0, err
	}
	store, _, err := a.HistoryStore()
	if err != nil {
		return 0, err
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		e.ID = fmt.Sprintf("import-%d-%d", e.Timestamp.UnixNano(), i)
		if err := store.Append(ctx, e); err != nil {
			return len(entries) - 1 - i, fmt.Errorf("failed to import entry %d: %w", i+1, err)
		}
	}
	a.Logger.Info("History imported", "entries", len(entries))
	return len(entries), nil
}
