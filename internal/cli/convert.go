package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aretw0/worldforge"
	"github.com/aretw0/worldforge/internal/presentation/tui"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/export"
	"gopkg.in/yaml.v3"
)

// TransformOptions describe the parent transform and direction shared by
// convert, validate and batch. Vector fields hold "x,y,z" strings; empty
// fields keep the preset's (or identity) value.
type TransformOptions struct {
	Direction string
	Preset    string
	Position  string
	Rotation  string
	Scale     string
	Precision int
	// Swap inverts the resolved direction (e.g. run a preset backwards).
	Swap bool
}

// ConvertOptions configures a single conversion.
type ConvertOptions struct {
	TransformOptions

	Point string
	// File is a YAML or JSON request file; flags override its values.
	File string
	// Report writes a plain-text result report to this path.
	Report string
	JSON   bool
	// NoHistory skips recording the conversion.
	NoHistory bool
}

// RequestFile is the on-disk form of a conversion request.
type RequestFile struct {
	Direction string            `yaml:"direction" json:"direction"`
	Preset    string            `yaml:"preset" json:"preset"`
	Parent    *domain.Transform `yaml:"parent" json:"parent"`
	Point     *domain.Vector3   `yaml:"point" json:"point"`
	Precision int               `yaml:"precision" json:"precision"`
}

// LoadRequestFile reads a request file (YAML by default, JSON by extension).
func LoadRequestFile(path string) (RequestFile, error) {
	var rf RequestFile
	data, err := os.ReadFile(path)
	if err != nil {
		return rf, fmt.Errorf("failed to read request file: %w", err)
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		err = json.Unmarshal(data, &rf)
	} else {
		err = yaml.Unmarshal(data, &rf)
	}
	if err != nil {
		return rf, fmt.Errorf("failed to parse request file %s: %w", path, err)
	}
	return rf, nil
}

// buildRequest resolves preset, file and flag values, in that order of
// increasing priority. pointSet reports whether any source supplied a point.
func (a *App) buildRequest(ctx context.Context, eng *worldforge.Engine, opts TransformOptions, point string, rf *RequestFile) (req domain.ConversionRequest, pointSet bool, err error) {
	req = domain.ConversionRequest{
		Direction: domain.LocalToWorld,
		Parent:    domain.IdentityTransform(),
		Precision: a.Config.Precision,
	}

	preset := opts.Preset
	direction := opts.Direction
	if rf != nil {
		if preset == "" {
			preset = rf.Preset
		}
		if direction == "" {
			direction = rf.Direction
		}
	}

	if preset != "" {
		p, err := eng.Preset(ctx, preset)
		if err != nil {
			return req, false, err
		}
		req.Parent = p.Transform
		if p.Direction != "" {
			req.Direction = p.Direction
		}
		if p.Input != nil {
			req.Point = *p.Input
			pointSet = true
		}
	}

	if rf != nil {
		if rf.Parent != nil {
			req.Parent = *rf.Parent
		}
		if rf.Point != nil {
			req.Point = *rf.Point
			pointSet = true
		}
		if rf.Precision != 0 {
			req.Precision = rf.Precision
		}
	}

	if direction != "" {
		d, err := domain.ParseDirection(direction)
		if err != nil {
			return req, false, err
		}
		req.Direction = d
	}

	for _, f := range []struct {
		name string
		raw  string
		dst  *domain.Vector3
	}{
		{"position", opts.Position, &req.Parent.Position},
		{"rotation", opts.Rotation, &req.Parent.Rotation},
		{"scale", opts.Scale, &req.Parent.Scale},
		{"point", point, &req.Point},
	} {
		if f.raw == "" {
			continue
		}
		v, err := domain.ParseVector3(f.raw)
		if err != nil {
			return req, false, fmt.Errorf("--%s: %w", f.name, err)
		}
		*f.dst = v
		if f.name == "point" {
			pointSet = true
		}
	}

	if opts.Precision != 0 {
		req.Precision = opts.Precision
	}
	if opts.Swap {
		req.Direction = req.Direction.Inverse()
	}
	return req, pointSet, nil
}

// RunConvert performs one conversion, prints it and records it in history.
func (a *App) RunConvert(ctx context.Context, opts ConvertOptions) error {
	eng, err := a.Engine()
	if err != nil {
		return err
	}

	var rf *RequestFile
	if opts.File != "" {
		loaded, err := LoadRequestFile(opts.File)
		if err != nil {
			return err
		}
		rf = &loaded
	}

	req, pointSet, err := a.buildRequest(ctx, eng, opts.TransformOptions, opts.Point, rf)
	if err != nil {
		return err
	}
	if !pointSet {
		return fmt.Errorf("a point is required (--point, --file or a preset with an input)")
	}
	if err := domain.ValidatePrecision(req.Precision); err != nil {
		return err
	}
	if err := domain.CheckBounds(req); err != nil {
		return err
	}

	var res domain.ConversionResult
	if opts.NoHistory {
		res, err = eng.Convert(ctx, req)
	} else {
		rec, rerr := a.Recorder(eng)
		if rerr != nil {
			return rerr
		}
		res, err = rec.Convert(ctx, req)
	}
	if err != nil {
		return err
	}

	if opts.Report != "" {
		if err := a.writeReport(opts.Report, req, res); err != nil {
			return err
		}
	}

	switch {
	case opts.JSON:
		c := res.Components()
		return json.NewEncoder(a.Out).Encode(map[string]any{
			"direction": req.Direction,
			"precision": res.Precision,
			"formatted": res.Format(),
			"result":    map[string]string{"x": c[0], "y": c[1], "z": c[2]},
		})
	case a.Rich:
		a.render(tui.ResultMarkdown(req, res))
	default:
		a.printf("%s\n", res.Format())
	}
	return nil
}

func (a *App) writeReport(path string, req domain.ConversionRequest, res domain.ConversionResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	if err := export.WriteResultReport(f, strings.TrimSpace(worldforge.Version), req, res, time.Now()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	a.Logger.Info("Report written", "path", path)
	return f.Close()
}

// RunValidate pre-checks a transform and prints the outcome.
// It returns an error when the conversion would fail.
func (a *App) RunValidate(ctx context.Context, opts TransformOptions) (domain.ValidationResult, error) {
	eng, err := a.Engine()
	if err != nil {
		return domain.ValidationResult{}, err
	}

	if opts.Direction == "" {
		opts.Direction = string(domain.WorldToLocal)
	}
	req, _, err := a.buildRequest(ctx, eng, opts, "", nil)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	res := eng.Validate(ctx, req.Parent, req.Direction)
	label := req.Direction.Label()
	if res.Valid {
		msg := fmt.Sprintf("%s conversion is defined ✅", label)
		if a.Rich {
			msg = tui.Success(msg)
		}
		a.printf("%s\n", msg)
		return res, nil
	}

	msg := fmt.Sprintf("%s conversion is undefined: %s", label, res.Message)
	if a.Rich {
		msg = tui.Failure(msg)
	}
	a.printf("%s\n", msg)
	return res, fmt.Errorf("validation failed: %s", res.Message)
}
