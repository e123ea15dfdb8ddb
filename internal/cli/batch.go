package cli

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/worldforge/internal/runtime"
	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/shopspring/decimal"
)

// BatchHeader is the first row written by RunBatch.
var BatchHeader = []string{"x", "y", "z", "error"}

// BatchSummary counts the rows processed by RunBatch.
type BatchSummary struct {
	Converted int
	Failed    int
}

// RunBatch converts every "x,y,z" row of in with the same parent transform,
// direction and precision, writing one result row per input row. A rejected
// row has empty coordinates and carries invalid_input or the error kind. A
// first row that does not parse as numbers is treated as a header and skipped.
// A bad transform or precision fails the whole batch before any row is read.
// Batch conversions are not recorded in history.
func (a *App) RunBatch(ctx context.Context, opts TransformOptions, in io.Reader, out io.Writer) (BatchSummary, error) {
	var sum BatchSummary

	eng, err := a.Engine()
	if err != nil {
		return sum, err
	}
	base, _, err := a.buildRequest(ctx, eng, opts, "", nil)
	if err != nil {
		return sum, err
	}
	if err := domain.ValidatePrecision(base.Precision); err != nil {
		return sum, err
	}
	if err := domain.CheckBounds(base); err != nil {
		return sum, err
	}
	if base.Direction == domain.WorldToLocal {
		if err := runtime.CheckScale(base.Parent.Scale); err != nil {
			return sum, err
		}
	}

	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	w := csv.NewWriter(out)
	if err := w.Write(BatchHeader); err != nil {
		return sum, err
	}

	for line := 1; ; line++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		point, perr := parseRow(row)
		if perr != nil {
			if line == 1 {
				a.Logger.Debug("Skipping batch header", "row", row)
				continue
			}
			sum.Failed++
			if err := w.Write(rejectedRow("invalid_input")); err != nil {
				return sum, err
			}
			a.Logger.Warn("Batch row rejected", "line", line, "err", perr)
			continue
		}

		req := base
		req.Point = point
		if err := domain.CheckBounds(req); err != nil {
			sum.Failed++
			if err := w.Write(rejectedRow(domain.ErrorKind(err))); err != nil {
				return sum, err
			}
			continue
		}

		res, err := eng.Convert(ctx, req)
		if err != nil {
			sum.Failed++
			if err := w.Write(rejectedRow(domain.ErrorKind(err))); err != nil {
				return sum, err
			}
			continue
		}

		c := res.Components()
		sum.Converted++
		if err := w.Write([]string{c[0], c[1], c[2], ""}); err != nil {
			return sum, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return sum, err
	}
	a.Logger.Info("Batch finished", "converted", sum.Converted, "failed", sum.Failed)
	return sum, nil
}

func parseRow(row []string) (domain.Vector3, error) {
	if len(row) != 3 {
		return domain.Vector3{}, fmt.Errorf("expected 3 columns, got %d", len(row))
	}
	var c [3]decimal.Decimal
	for i, field := range row {
		v, err := decimal.NewFromString(strings.TrimSpace(field))
		if err != nil {
			return domain.Vector3{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		c[i] = v
	}
	return domain.NewVector3(c[0], c[1], c[2]), nil
}

func rejectedRow(kind string) []string {
	return []string{"", "", "", kind}
}
