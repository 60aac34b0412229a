package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// ProgressBar returns a formatter drawing percent as a bar of width cells,
// coloured for w's terminal.
func ProgressBar(w io.Writer, width int) func(percent float64) string {
	out := termenv.NewOutput(w)
	return func(percent float64) string {
		percent = max(0, min(100, percent))
		filled := int(percent / 100 * float64(width))
		bar := out.String(strings.Repeat("█", filled)).Foreground(out.Color("#34d399")).String() +
			out.String(strings.Repeat("░", width-filled)).Faint().String()
		return fmt.Sprintf("%s %3.0f%%", bar, percent)
	}
}

// Errorf formats a message in the error colour of w's terminal.
func Errorf(w io.Writer, format string, args ...any) string {
	out := termenv.NewOutput(w)
	return out.String(fmt.Sprintf(format, args...)).Foreground(out.Color("#f87171")).String()
}
