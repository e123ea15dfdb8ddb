package export

import (
	"fmt"
	"io"
	"time"

	"github.com/aretw0/worldforge/pkg/domain"
)

// WriteResultReport writes the three-line text report for a single conversion.
func WriteResultReport(w io.Writer, version string, req domain.ConversionRequest, res domain.ConversionResult, at time.Time) error {
	c := res.Components()
	_, err := fmt.Fprintf(w, "WorldForge %s - %s\nMode: %s | Precision: %d\nResult: X=%s Y=%s Z=%s\n",
		version, at.Format(TimeLayout),
		req.Direction.Label(), res.Precision,
		c[0], c[1], c[2],
	)
	return err
}
