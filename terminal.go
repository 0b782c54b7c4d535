package imgprev

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// DefaultGeometry is a reasonable terminal size when none can be detected
var DefaultGeometry = Geometry{Rows: 24, Columns: 80}

// QueryGeometry returns the size of the controlling terminal.
// It tries stdout, then stdin, then the COLUMNS and LINES variables.
func QueryGeometry() (Geometry, error) {
	for _, f := range []*os.File{os.Stdout, os.Stdin} {
		if width, height, err := term.GetSize(int(f.Fd())); err == nil && width > 0 && height > 0 {
			return Geometry{Rows: height, Columns: width}, nil
		}
	}

	if g, ok := geometryFromEnv(); ok {
		return g, nil
	}

	return Geometry{}, fmt.Errorf("%w: terminal size not available", ErrInvalidGeometry)
}

// geometryFromEnv reads the terminal size exported by the shell
func geometryFromEnv() (Geometry, bool) {
	cols, err := strconv.Atoi(os.Getenv("COLUMNS"))
	if err != nil || cols <= 0 {
		return Geometry{}, false
	}
	rows, err := strconv.Atoi(os.Getenv("LINES"))
	if err != nil || rows <= 0 {
		return Geometry{}, false
	}
	return Geometry{Rows: rows, Columns: cols}, true
}

// SupportsTrueColor reports whether the terminal advertises 24-bit color
func SupportsTrueColor() bool {
	termName := strings.ToLower(os.Getenv("TERM"))
	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))

	switch {
	case colorTerm == "truecolor" || colorTerm == "24bit":
		return true
	case strings.Contains(termName, "truecolor"):
		return true
	case strings.Contains(termName, "24bit"):
		return true
	case strings.Contains(termName, "kitty"):
		return true
	case os.Getenv("TERM_PROGRAM") == "iTerm.app":
		return true
	case os.Getenv("TERM_PROGRAM") == "WezTerm":
		return true
	case os.Getenv("WT_SESSION") != "":
		return true
	}

	return false
}

// IsInteractiveTerminal checks if stdout is attached to a terminal
func IsInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
