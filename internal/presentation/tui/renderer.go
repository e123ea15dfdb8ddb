package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/worldforge/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ResultMarkdown describes a single conversion as a markdown table.
func ResultMarkdown(req domain.ConversionRequest, res domain.ConversionResult) string {
	var b strings.Builder
	c := res.Components()

	fmt.Fprintf(&b, "## %s\n\n", req.Direction.Label())
	b.WriteString("| | X | Y | Z |\n|---|---|---|---|\n")
	row := func(label string, v domain.Vector3) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", label, v.X, v.Y, v.Z)
	}
	row("Position", req.Parent.Position)
	row("Rotation", req.Parent.Rotation)
	row("Scale", req.Parent.Scale)
	row("Input", req.Point)
	fmt.Fprintf(&b, "| **Result** | `%s` | `%s` | `%s` |\n", c[0], c[1], c[2])
	fmt.Fprintf(&b, "\nPrecision: %d digits\n", res.Precision)
	return b.String()
}

// HistoryMarkdown lists history entries, newest first, formatted at each
// entry's own precision.
func HistoryMarkdown(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return "_No conversions recorded yet._\n"
	}

	var b strings.Builder
	b.WriteString("| Time | Mode | Input | Result |\n|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Direction.Short(),
			e.Input.Format(e.Precision),
			e.Result.Format(e.Precision),
		)
	}
	return b.String()
}
