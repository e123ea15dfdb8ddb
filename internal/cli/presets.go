package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	loamAdapter "github.com/aretw0/worldforge/pkg/adapters/loam"
	"github.com/aretw0/worldforge/pkg/domain"
)

// PresetsList prints every available preset.
func (a *App) PresetsList(ctx context.Context, asJSON bool) error {
	eng, err := a.Engine()
	if err != nil {
		return err
	}
	presets, err := eng.Presets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(presets)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Presets (%s)\n\n", eng.Name)
	b.WriteString("| Name | Description | Position | Rotation | Scale |\n|---|---|---|---|---|\n")
	for _, p := range presets {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", p.Name, p.Description,
			p.Transform.Position, p.Transform.Rotation, p.Transform.Scale)
	}
	a.render(b.String())
	return nil
}

// PresetsShow prints one preset as JSON.
func (a *App) PresetsShow(ctx context.Context, name string) error {
	eng, err := a.Engine()
	if err != nil {
		return err
	}
	p, err := eng.Preset(ctx, name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// PresetsInit seeds the built-in presets into dir as Markdown documents
// that can then be edited by hand. Existing files are overwritten only with force.
func (a *App) PresetsInit(ctx context.Context, dir string, force bool) error {
	if dir == "" {
		dir = a.Config.Presets.Dir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	presets := domain.BuiltinPresets()
	if !force {
		for _, p := range presets {
			matches, _ := filepath.Glob(filepath.Join(dir, p.Name+".*"))
			if len(matches) > 0 {
				return fmt.Errorf("%s already exists (use --force to overwrite)", matches[0])
			}
		}
	}

	// No versioning: presets are plain files the user owns.
	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return fmt.Errorf("failed to initialize preset library: %w", err)
	}
	loader := loamAdapter.New(loam.NewTypedRepository[loamAdapter.PresetMetadata](repo))
	if err := loader.Seed(ctx, presets...); err != nil {
		return err
	}

	a.Logger.Info("Presets seeded", "dir", dir, "count", len(presets))
	a.printf("Wrote %d presets to %s\n", len(presets), dir)
	return nil
}
