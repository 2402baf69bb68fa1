// Package progress shows transient progress indicators on terminals and
// degrades to nothing when output is redirected.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// TerminalCapabilities describes what the output stream can render.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// DetectTerminalCapabilities detects terminal features of w.
// Checks: w is a terminal, NO_COLOR env, WHATSNEW_ASCII env, terminal width.
func DetectTerminalCapabilities(w io.Writer) TerminalCapabilities {
	f, ok := w.(*os.File)
	isTTY := ok && term.IsTerminal(int(f.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("WHATSNEW_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SpinnerSet returns the briandowns/spinner character set for caps.
// Unicode: braille dots (set 14). ASCII: |/-\ (set 9).
func SpinnerSet(caps TerminalCapabilities) []string {
	if caps.SupportsUnicode {
		return spinner.CharSets[14]
	}
	return spinner.CharSets[9]
}

// Start shows a spinner with suffix on w while a slow operation runs. It
// draws nothing unless w is a terminal and plain is false. The returned func
// stops the spinner and clears its line.
func Start(w io.Writer, plain bool, suffix string) (stop func()) {
	caps := DetectTerminalCapabilities(w)
	if plain || !caps.IsTTY {
		return func() {}
	}

	s := spinner.New(SpinnerSet(caps), 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}
