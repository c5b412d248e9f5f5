package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Waypoint banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Teal to green, like trail markers.
	lines := []struct {
		text  string
		color string
	}{
		{` __      __                      _       _   `, "#22d3ee"},
		{` \ \    / /_ _ _  _ _ __  ___ (_)_ _ | |_ `, "#2dd4bf"},
		{`  \ \/\/ / _' | || | '_ \/ _ \| | ' \|  _|`, "#34d399"},
		{`   \_/\_/\__,_|\_, | .__/\___/|_|_||_|\__|`, "#4ade80"},
		{`               |__/|_|                     `, "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Target renders a locator the way the terminal highlights targets.
func Target(locator string) string {
	p := termenv.ColorProfile()
	return termenv.String(locator).Foreground(p.Color("#fbbf24")).Bold().String()
}

// Faint renders secondary text such as progress counters.
func Faint(s string) string {
	return termenv.String(s).Faint().String()
}
