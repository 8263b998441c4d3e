package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the cadence ASCII art banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Cool-to-warm gradient (Teal/Amber)
	lines := []struct {
		text, color string
	}{
		{"                 _                    ", "#2dd4bf"},
		{"   ___ __ _  __| | ___ _ __   ___ ___ ", "#34d399"},
		{"  / __/ _` |/ _` |/ _ \\ '_ \\ / __/ _ \\", "#a3e635"},
		{" | (_| (_| | (_| |  __/ | | | (_|  __/", "#facc15"},
		{"  \\___\\__,_|\\__,_|\\___|_| |_|\\___\\___|", "#fb923c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
