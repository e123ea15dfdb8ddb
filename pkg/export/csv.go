package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/shopspring/decimal"
)

// TimeLayout is the timestamp format of exported rows.
const TimeLayout = "2006-01-02 15:04:05"

// HistoryHeader is the first row of a history export.
var HistoryHeader = []string{"Time", "Mode", "InputX", "InputY", "InputZ", "ResultX", "ResultY", "ResultZ", "Precision"}

// ErrMalformedCSV is returned by ReadHistoryCSV for rows it cannot parse.
var ErrMalformedCSV = errors.New("malformed history csv")

// WriteHistoryCSV writes the header and one row per entry, in the given order.
// Decimal columns carry the full stored value, not the display rounding.
func WriteHistoryCSV(w io.Writer, entries []domain.HistoryEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HistoryHeader); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.Timestamp.Format(TimeLayout),
			e.Direction.Short(),
			e.Input.X.String(), e.Input.Y.String(), e.Input.Z.String(),
			e.Result.X.String(), e.Result.Y.String(), e.Result.Z.String(),
			strconv.Itoa(e.Precision),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadHistoryCSV parses the format written by WriteHistoryCSV. Timestamps are
// read as UTC. Parent transforms are not part of the format and come back zero.
func ReadHistoryCSV(r io.Reader) ([]domain.HistoryEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(HistoryHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return []domain.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	for i, col := range HistoryHeader {
		if header[i] != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrMalformedCSV, i+1, header[i], col)
		}
	}

	entries := []domain.HistoryEntry{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
		}

		e, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedCSV, line, err)
		}
		entries = append(entries, e)
	}
}

func parseRow(row []string) (domain.HistoryEntry, error) {
	ts, err := time.Parse(TimeLayout, row[0])
	if err != nil {
		return domain.HistoryEntry{}, err
	}

	var dir domain.Direction
	switch row[1] {
	case domain.LocalToWorld.Short():
		dir = domain.LocalToWorld
	case domain.WorldToLocal.Short():
		dir = domain.WorldToLocal
	default:
		if dir, err = domain.ParseDirection(row[1]); err != nil {
			return domain.HistoryEntry{}, err
		}
	}

	var d [6]decimal.Decimal
	for i := range d {
		if d[i], err = decimal.NewFromString(row[2+i]); err != nil {
			return domain.HistoryEntry{}, fmt.Errorf("%s: %v", HistoryHeader[2+i], err)
		}
	}

	precision, err := strconv.Atoi(row[8])
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("Precision: %v", err)
	}

	return domain.HistoryEntry{
		ID:        strconv.FormatInt(ts.UnixNano(), 10),
		Timestamp: ts,
		Direction: dir,
		Input:     domain.NewVector3(d[0], d[1], d[2]),
		Result:    domain.NewVector3(d[3], d[4], d[5]),
		Precision: precision,
	}, nil
}
