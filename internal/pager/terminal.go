package pager

import (
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

var termGetSize = term.GetSize

// TerminalSize reports the width and height of the terminal behind out,
// falling back to $COLUMNS and $LINES. Unknown dimensions are 0.
func TerminalSize(out *os.File) (width, height int) {
	if out != nil {
		if w, h, err := termGetSize(int(out.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return envDimension("COLUMNS"), envDimension("LINES")
}

func envDimension(name string) int {
	if v, err := strconv.Atoi(os.Getenv(name)); err == nil && v > 0 {
		return v
	}
	return 0
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
