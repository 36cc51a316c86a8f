// Package cliutil provides terminal output helpers for the docpatch CLI.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// ColorEnabled reports whether colored output should be written to w.
// Color is used only for terminals, and never when noColor is set or the
// NO_COLOR environment variable is non-empty.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Palette holds the color functions used in reports. Each function formats
// like fmt.Sprintf.
type Palette struct {
	Success func(string, ...any) string
	Info    func(string, ...any) string
	Failure func(string, ...any) string
	Muted   func(string, ...any) string
	Header  func(string, ...any) string
	Added   func(string, ...any) string
	Removed func(string, ...any) string
	Hunk    func(string, ...any) string
}

// NewPalette returns a palette. When enabled is false every function
// returns plain text.
func NewPalette(enabled bool) *Palette {
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &Palette{
		Success: mk(color.FgGreen),
		Info:    mk(color.FgCyan),
		Failure: mk(color.FgRed, color.Bold),
		Muted:   mk(color.FgHiBlack),
		Header:  mk(color.Bold),
		Added:   mk(color.FgGreen),
		Removed: mk(color.FgRed),
		Hunk:    mk(color.FgCyan),
	}
}
