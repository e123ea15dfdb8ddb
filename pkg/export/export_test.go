package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/aretw0/worldforge/pkg/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries() []domain.HistoryEntry {
	return []domain.HistoryEntry{
		{
			Timestamp: time.Date(2026, 10, 17, 14, 5, 9, 0, time.UTC),
			Direction: domain.WorldToLocal,
			Input:     domain.Vec(7, 0, 0),
			Result:    domain.NewVector3(decimal.RequireFromString("2.000000000000000000000000000001"), decimal.Zero, decimal.Zero),
			Precision: 30,
		},
		{
			Timestamp: time.Date(2026, 10, 17, 14, 5, 1, 0, time.UTC),
			Direction: domain.LocalToWorld,
			Input:     domain.Vec(2, 0, 0),
			Result:    domain.Vec(7, 0, -1),
			Precision: 2,
		},
	}
}

func TestWriteHistoryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteHistoryCSV(&buf, entries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Time,Mode,InputX,InputY,InputZ,ResultX,ResultY,ResultZ,Precision", lines[0])
	assert.Equal(t, "2026-10-17 14:05:09,W→L,7,0,0,2.000000000000000000000000000001,0,0,30", lines[1])
	assert.Equal(t, "2026-10-17 14:05:01,L→W,2,0,0,7,0,-1,2", lines[2])
}

func TestWriteHistoryCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteHistoryCSV(&buf, nil))
	assert.Equal(t, "Time,Mode,InputX,InputY,InputZ,ResultX,ResultY,ResultZ,Precision\n", buf.String())
}

func TestReadHistoryCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := entries()
	require.NoError(t, export.WriteHistoryCSV(&buf, want))

	got, err := export.ReadHistoryCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, got[i].Timestamp.Equal(want[i].Timestamp))
		assert.Equal(t, want[i].Direction, got[i].Direction)
		assert.True(t, got[i].Input.Equal(want[i].Input))
		assert.True(t, got[i].Result.Equal(want[i].Result), "full precision must survive")
		assert.Equal(t, want[i].Precision, got[i].Precision)
	}
}

func TestReadHistoryCSV_Errors(t *testing.T) {
	cases := map[string]string{
		"wrong header":  "When,Mode,InputX,InputY,InputZ,ResultX,ResultY,ResultZ,Precision\n",
		"short row":     "Time,Mode,InputX,InputY,InputZ,ResultX,ResultY,ResultZ,Precision\n2026-10-17 14:05:09,L→W,1\n",
		"bad decimal":   "Time,Mode,InputX,InputY,InputZ,ResultX,ResultY,ResultZ,Precision\n2026-10-17 14:05:09,L→W,x,0,0,0,0,0,2\n",
		"bad mode":      "Time,Mode,InputX,InputY,InputZ,ResultX,ResultY,ResultZ,Precision\n2026-10-17 14:05:09,up,0,0,0,0,0,0,2\n",
		"bad timestamp": "Time,Mode,InputX,InputY,InputZ,ResultX,ResultY,ResultZ,Precision\nyesterday,L→W,0,0,0,0,0,0,2\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := export.ReadHistoryCSV(strings.NewReader(in))
			assert.ErrorIs(t, err, export.ErrMalformedCSV)
		})
	}

	got, err := export.ReadHistoryCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteResultReport(t *testing.T) {
	req := domain.BuiltinPresets()[1].Request(2)
	res := domain.ConversionResult{Output: domain.Vec(7, 0, 0), Precision: 2}
	at := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, export.WriteResultReport(&buf, "1.2.0", req, res, at))
	assert.Equal(t,
		"WorldForge 1.2.0 - 2026-10-17 08:00:00\n"+
			"Mode: Local→World | Precision: 2\n"+
			"Result: X=7.00 Y=0.00 Z=0.00\n",
		buf.String())
}
