package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the WorldForge ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Cool-to-warm gradient (Teal/Amber)
	lines := []struct {
		text  string
		color string
	}{
		{` __        __         _     _ _____                    `, "#2dd4bf"},
		{` \ \      / /__  _ __| | __| |  ___|__  _ __ __ _  ___ `, "#34d399"},
		{`  \ \ /\ / / _ \| '__| |/ _' | |_ / _ \| '__/ _' |/ _ \`, "#a3e635"},
		{`   \ V  V / (_) | |  | | (_| |  _| (_) | | | (_| |  __/`, "#facc15"},
		{`    \_/\_/ \___/|_|  |_|\__,_|_|  \___/|_|  \__, |\___|`, "#fb923c"},
		{`                                            |___/      `, "#f87171"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Success colours a status line green.
func Success(s string) string {
	p := termenv.ColorProfile()
	return termenv.String(s).Foreground(p.Color("#22c55e")).String()
}

// Failure colours a status line red and bold.
func Failure(s string) string {
	p := termenv.ColorProfile()
	return termenv.String(s).Foreground(p.Color("#ef4444")).Bold().String()
}
