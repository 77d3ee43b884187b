package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Tabula ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{" _____     _           _       ", "#818cf8"},
		{"|_   _|_ _| |__  _   _| | __ _ ", "#a78bfa"},
		{"  | |/ _` | '_ \\| | | | |/ _` |", "#c084fc"},
		{"  | | (_| | |_) | |_| | | (_| |", "#e879f9"},
		{"  |_|\\__,_|_.__/ \\__,_|_|\\__,_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  "+version).Faint())
	fmt.Fprintln(w)
}

// Summary describes a finished enumeration in one coloured line.
func Summary(domainName string, states, actions int, elapsed time.Duration) string {
	p := termenv.ColorProfile()
	name := termenv.String(domainName).Bold().Foreground(p.Color("#a78bfa"))
	count := termenv.String(fmt.Sprintf("%d states", states)).Foreground(p.Color("#34d399"))
	return fmt.Sprintf("%s: %s, %d actions (%s)", name, count, actions, elapsed.Round(time.Microsecond))
}
