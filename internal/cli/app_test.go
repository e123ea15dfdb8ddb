package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/worldforge/internal/config"
	"github.com/aretw0/worldforge/internal/testutils"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp returns an App with file history and presets under a temp dir.
func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.History.Path = filepath.Join(dir, "history.json")
	cfg.Presets.Dir = filepath.Join(dir, "presets")

	out := &bytes.Buffer{}
	app := NewApp(cfg, nil, out, &bytes.Buffer{})
	t.Cleanup(func() { _ = app.Close() })
	return app, out
}

func TestRunConvert(t *testing.T) {
	ctx := context.Background()

	t.Run("Flags", func(t *testing.T) {
		app, out := newTestApp(t)
		err := app.RunConvert(ctx, ConvertOptions{
			TransformOptions: TransformOptions{
				Position:  "5,0,0",
				Rotation:  "0,90,0",
				Precision: 2,
			},
			Point: "2,0,0",
		})
		require.NoError(t, err)
		assert.Equal(t, "(7.00, 0.00, 0.00)\n", out.String())
	})

	t.Run("ConfigPrecision", func(t *testing.T) {
		app, out := newTestApp(t)
		app.Config.Precision = 3
		require.NoError(t, app.RunConvert(ctx, ConvertOptions{Point: "1,2,3"}))
		assert.Equal(t, "(1.000, 2.000, 3.000)\n", out.String())
	})

	t.Run("PresetWithInput", func(t *testing.T) {
		app, out := newTestApp(t)
		require.NoError(t, app.RunConvert(ctx, ConvertOptions{
			TransformOptions: TransformOptions{Preset: "sample-90-y", Precision: 2},
		}))
		assert.Equal(t, "(7.00, 0.00, 0.00)\n", out.String())
	})

	t.Run("RecordsHistory", func(t *testing.T) {
		app, _ := newTestApp(t)
		require.NoError(t, app.RunConvert(ctx, ConvertOptions{Point: "1,2,3"}))
		require.NoError(t, app.RunConvert(ctx, ConvertOptions{Point: "4,5,6", NoHistory: true}))

		store, _, err := app.HistoryStore()
		require.NoError(t, err)
		entries, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Input.Equal(domain.Vec(1, 2, 3)))
	})

	t.Run("RequestFile", func(t *testing.T) {
		app, out := newTestApp(t)
		path := filepath.Join(t.TempDir(), "req.yaml")
		testutils.WriteFiles(t, filepath.Dir(path), map[string]string{
			"req.yaml": `direction: w2l
parent:
  position: {x: 5, y: 0, z: 0}
  rotation: {x: 0, y: 90, z: 0}
  scale: {x: 1, y: 1, z: 1}
point: {x: "7", y: 0, z: 0}
precision: 4
`,
		})

		require.NoError(t, app.RunConvert(ctx, ConvertOptions{File: path}))
		assert.Equal(t, "(2.0000, 0.0000, 0.0000)\n", out.String())

		// Flags override the file.
		out.Reset()
		require.NoError(t, app.RunConvert(ctx, ConvertOptions{
			File:             path,
			TransformOptions: TransformOptions{Precision: 2},
		}))
		assert.Equal(t, "(2.00, 0.00, 0.00)\n", out.String())
	})

	t.Run("JSONAndReport", func(t *testing.T) {
		app, out := newTestApp(t)
		report := filepath.Join(t.TempDir(), "result.txt")
		require.NoError(t, app.RunConvert(ctx, ConvertOptions{
			TransformOptions: TransformOptions{Preset: "sample-90-y", Precision: 2},
			JSON:             true,
			Report:           report,
		}))

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "(7.00, 0.00, 0.00)", got["formatted"])
		assert.Equal(t, "local_to_world", got["direction"])

		data, err := os.ReadFile(report)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Mode: Local→World | Precision: 2")
		assert.Contains(t, string(data), "Result: X=7.00 Y=0.00 Z=0.00")
	})

	t.Run("Errors", func(t *testing.T) {
		app, out := newTestApp(t)

		err := app.RunConvert(ctx, ConvertOptions{TransformOptions: TransformOptions{Position: "1,2,3"}})
		assert.ErrorContains(t, err, "point is required")

		err = app.RunConvert(ctx, ConvertOptions{Point: "1,2"})
		assert.ErrorContains(t, err, "--point")

		err = app.RunConvert(ctx, ConvertOptions{Point: "1,2,3", TransformOptions: TransformOptions{Precision: 40}})
		assert.ErrorIs(t, err, domain.ErrInvalidPrecision)

		err = app.RunConvert(ctx, ConvertOptions{Point: "1,2,3", TransformOptions: TransformOptions{Rotation: "0,400,0"}})
		assert.ErrorIs(t, err, domain.ErrOutOfBounds)

		err = app.RunConvert(ctx, ConvertOptions{Point: "1,2,3", TransformOptions: TransformOptions{Scale: "1,0,1", Direction: "w2l"}})
		assert.ErrorIs(t, err, domain.ErrDegenerateScale)

		err = app.RunConvert(ctx, ConvertOptions{Point: "1,2,3", TransformOptions: TransformOptions{Preset: "missing"}})
		assert.ErrorIs(t, err, domain.ErrPresetNotFound)

		err = app.RunConvert(ctx, ConvertOptions{Point: "1,2,3", TransformOptions: TransformOptions{Direction: "up"}})
		assert.ErrorIs(t, err, domain.ErrInvalidDirection)

		assert.Empty(t, out.String())

		store, _, err := app.HistoryStore()
		require.NoError(t, err)
		n, err := store.Len(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestRunValidate(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t)

	res, err := app.RunValidate(ctx, TransformOptions{Scale: "1,0,1"})
	assert.Error(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "Y", res.Axis)
	assert.Contains(t, out.String(), "World→Local conversion is undefined: Scale Y is zero")

	out.Reset()
	res, err = app.RunValidate(ctx, TransformOptions{Scale: "1,0,1", Direction: "l2w"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Contains(t, out.String(), "Local→World conversion is defined")
}

func TestRunBatch(t *testing.T) {
	app, _ := newTestApp(t)
	in := strings.NewReader("x,y,z\n2,0,0\n1, 2, 3\n\nfoo,1,2\n2000000000,0,0\n")
	out := &bytes.Buffer{}

	sum, err := app.RunBatch(context.Background(), TransformOptions{Preset: "sample-90-y", Precision: 2}, in, out)
	require.NoError(t, err)
	assert.Equal(t, BatchSummary{Converted: 2, Failed: 2}, sum)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "x,y,z,error", lines[0])
	assert.Equal(t, "7.00,0.00,0.00,", lines[1])
	assert.Equal(t, ",,,invalid_input", lines[3])
	assert.Equal(t, ",,,out_of_bounds", lines[4])

	store, _, err := app.HistoryStore()
	require.NoError(t, err)
	n, err := store.Len(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "batch conversions are not recorded")
}

func TestRunBatch_BadTransformFailsWholeBatch(t *testing.T) {
	app, _ := newTestApp(t)
	ctx := context.Background()

	out := &bytes.Buffer{}
	sum, err := app.RunBatch(ctx, TransformOptions{Direction: "w2l", Scale: "1,0,1"}, strings.NewReader("1,2,3\n4,5,6\n"), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDegenerateScale)
	assert.Equal(t, BatchSummary{}, sum)
	assert.Empty(t, out.String(), "nothing is written when the transform is rejected")

	_, err = app.RunBatch(ctx, TransformOptions{Position: "2000000000,0,0"}, strings.NewReader("1,2,3\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrOutOfBounds)

	// Zero scale is fine in the forward direction.
	out.Reset()
	sum, err = app.RunBatch(ctx, TransformOptions{Scale: "1,0,1", Precision: 2}, strings.NewReader("1,2,3\n"), out)
	require.NoError(t, err)
	assert.Equal(t, BatchSummary{Converted: 1}, sum)
	assert.Contains(t, out.String(), "1.00,0.00,3.00,")
}

func TestRunBatch_Swap(t *testing.T) {
	app, _ := newTestApp(t)
	out := &bytes.Buffer{}

	sum, err := app.RunBatch(context.Background(), TransformOptions{Preset: "sample-90-y", Swap: true, Precision: 2}, strings.NewReader("7,0,0\n"), out)
	require.NoError(t, err)
	assert.Equal(t, BatchSummary{Converted: 1}, sum)
	assert.Contains(t, out.String(), "2.00,0.00,0.00,", "the preset runs world to local")
}

func TestHistoryCommands(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t)
	for _, p := range []string{"1,0,0", "2,0,0", "3,0,0"} {
		require.NoError(t, app.RunConvert(ctx, ConvertOptions{Point: p, TransformOptions: TransformOptions{Precision: 2}}))
	}

	out.Reset()
	require.NoError(t, app.HistoryList(ctx, 2, true))
	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Input.Equal(domain.Vec(3, 0, 0)), "newest first")

	out.Reset()
	require.NoError(t, app.HistoryList(ctx, 0, false))
	assert.Contains(t, out.String(), "| L→W | (3.00, 0.00, 0.00) |")

	csvOut := &bytes.Buffer{}
	require.NoError(t, app.HistoryExport(ctx, csvOut))
	assert.True(t, strings.HasPrefix(csvOut.String(), "Time,Mode,InputX"))

	out.Reset()
	require.NoError(t, app.HistoryClear(ctx))
	assert.Equal(t, "Removed 3 entries.\n", out.String())

	n, err := app.HistoryImport(ctx, bytes.NewReader(csvOut.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	out.Reset()
	require.NoError(t, app.HistoryList(ctx, 0, true))
	entries = nil
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.True(t, entries[0].Input.Equal(domain.Vec(3, 0, 0)), "import keeps file order")
}

func TestHistory_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	app, _ := newTestApp(t)
	app.Config.History.Backend = config.BackendRedis
	app.Config.Redis.Addr = mr.Addr()

	require.NoError(t, app.RunConvert(ctx, ConvertOptions{Point: "1,2,3"}))
	assert.True(t, mr.Exists("worldforge:history"))

	require.NoError(t, app.HistoryClear(ctx))
	assert.False(t, mr.Exists("worldforge:history"))
}

func TestPresetsCommands(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t)

	// Built-ins before the library exists.
	require.NoError(t, app.PresetsList(ctx, false))
	assert.Contains(t, out.String(), "## Presets (builtin)")
	assert.Contains(t, out.String(), "| sample-90-y |")

	out.Reset()
	require.NoError(t, app.PresetsInit(ctx, "", false))
	assert.Contains(t, out.String(), "Wrote 3 presets")
	matches, err := filepath.Glob(filepath.Join(app.Config.Presets.Dir, "identity.*"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	err = app.PresetsInit(ctx, "", false)
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, app.PresetsInit(ctx, "", true))

	// Now served from the library directory.
	out.Reset()
	require.NoError(t, app.PresetsList(ctx, true))
	var presets []domain.Preset
	require.NoError(t, json.Unmarshal(out.Bytes(), &presets))
	require.Len(t, presets, 3)

	out.Reset()
	require.NoError(t, app.PresetsShow(ctx, "sample-90-y"))
	var p domain.Preset
	require.NoError(t, json.Unmarshal(out.Bytes(), &p))
	assert.True(t, p.Transform.Rotation.Equal(domain.Vec(0, 90, 0)))

	assert.ErrorIs(t, app.PresetsShow(ctx, "nope"), domain.ErrPresetNotFound)

	out.Reset()
	require.NoError(t, app.RunConvert(ctx, ConvertOptions{TransformOptions: TransformOptions{Preset: "sample-90-y", Precision: 2}}))
	assert.Equal(t, "(7.00, 0.00, 0.00)\n", out.String())
}

func TestNewHTTPHandler(t *testing.T) {
	app, _ := newTestApp(t)
	app.Config.History.Backend = config.BackendMemory

	h, err := app.NewHTTPHandler(context.Background())
	require.NoError(t, err)

	body := `{"preset": "sample-90-y", "point": {"x": 2, "y": 0, "z": 0}, "precision": 2}`
	req := httptest.NewRequest(http.MethodPost, "/v1/convert", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "worldforge_history_entries 1")
}

func TestNewHTTPHandler_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	app, _ := newTestApp(t)
	app.Config.History.Backend = config.BackendRedis
	app.Config.Redis.Addr = addr

	_, err := app.NewHTTPHandler(context.Background())
	assert.ErrorContains(t, err, "history backend redis unavailable")
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	app, _ := newTestApp(t)
	app.Config.History.Backend = config.BackendMemory
	err := app.ServeMCP(context.Background(), "carrier-pigeon", 0)
	assert.ErrorContains(t, err, "unknown transport")
}
