package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"        _  __",
	"   __ _(_)/ _| ___  _ __ _ __ ___  ___",
	"  / _` | | |_ / _ \\| '__| '_ ` _ \\/ __|",
	" | (_| | |  _| (_) | |  | | | | | \\__ \\",
	"  \\__,_|_|_|  \\___/|_|  |_| |_| |_|___/",
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa"}

// PrintBanner writes the aiforms banner and version to w.
// Colours are dropped when w is not a colour terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, out.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
