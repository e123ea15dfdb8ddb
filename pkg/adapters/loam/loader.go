package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/worldforge/pkg/domain"
)

// Loader adapts the Loam library to the WorldForge PresetLoader interface.
// Every preset is one document; the frontmatter holds the transform and the
// body is used as description when the frontmatter has none.
type Loader struct {
	Repo *loam.TypedRepository[PresetMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[PresetMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// ListPresets lists all presets in the repository, sorted by name.
func (l *Loader) ListPresets(ctx context.Context) ([]domain.Preset, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	presets := make([]domain.Preset, 0, len(docs))

	for _, doc := range docs {
		p, err := doc.Data.ToPreset(trimExtension(doc.ID))
		if err != nil {
			return nil, err
		}
		if p.Description == "" {
			body, err := l.body(ctx, doc)
			if err != nil {
				return nil, err
			}
			p.Description = body
		}

		// Collision Detection
		if existingPath, ok := seen[p.Name]; ok {
			return nil, fmt.Errorf("collision detected: preset '%s' is defined in both '%s' and '%s'", p.Name, existingPath, doc.ID)
		}
		seen[p.Name] = doc.ID
		presets = append(presets, p)
	}

	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

// GetPreset resolves a preset by name.
// Names come from frontmatter, so lookup goes through the listing rather than by file ID.
func (l *Loader) GetPreset(ctx context.Context, name string) (domain.Preset, error) {
	presets, err := l.ListPresets(ctx)
	if err != nil {
		return domain.Preset{}, err
	}
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Preset{}, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, name)
}

// Seed writes presets into the repository, one document each.
func (l *Loader) Seed(ctx context.Context, presets ...domain.Preset) error {
	for _, p := range presets {
		err := l.Repo.Save(ctx, &loam.DocumentModel[PresetMetadata]{
			ID:      p.Name,
			Content: p.Description,
			Data:    MetadataFromPreset(p),
		})
		if err != nil {
			return fmt.Errorf("failed to save preset %s: %w", p.Name, err)
		}
	}
	return nil
}

// body returns the trimmed document body. Listings come from the cache
// without content, so the document is loaded when needed.
func (l *Loader) body(ctx context.Context, doc *loam.DocumentModel[PresetMetadata]) (string, error) {
	if doc.Content != "" {
		return strings.TrimSpace(doc.Content), nil
	}
	full, err := l.Repo.Get(ctx, doc.ID)
	if err != nil {
		return "", fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
	}
	return strings.TrimSpace(full.Content), nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
