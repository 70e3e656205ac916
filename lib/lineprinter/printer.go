// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lineprinter

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// LineKind selects how [Printer.PrintLine] renders a status line on a
// smart terminal.
type LineKind int

const (
	// Full lines are written whole and terminated with a newline.
	Full LineKind = iota

	// Elided lines are shortened to the terminal width and left
	// unterminated so the next status line overwrites them.
	Elided
)

// String returns the kind name for logs and test failures.
func (kind LineKind) String() string {
	switch kind {
	case Full:
		return "full"
	case Elided:
		return "elided"
	default:
		return "unknown"
	}
}

// Printer writes status lines and passthrough text to a terminal,
// tracking where the cursor is so that text printed "on a new line"
// never lands after an unterminated status line.
//
// Printer is not safe for concurrent use. Build status is rendered on
// a single goroutine; the lock protects against another process
// sharing the terminal, not against other goroutines.
type Printer struct {
	out      io.Writer
	terminal Terminal
	smart    bool

	// haveBlankLine is true when the cursor sits at the start of an
	// empty line.
	haveBlankLine bool

	locked bool

	// lineBuffer and lineKind hold the most recent status line
	// submitted while locked. outputBuffer holds everything else
	// submitted while locked. Both are empty whenever the printer is
	// unlocked.
	lineBuffer   string
	lineKind     LineKind
	outputBuffer strings.Builder

	err error
}

// New returns a Printer writing to out with the capabilities of
// terminal. The cursor is assumed to start on a blank line.
func New(out io.Writer, terminal Terminal) *Printer {
	return &Printer{
		out:           out,
		terminal:      terminal,
		smart:         terminal.Smart(),
		haveBlankLine: true,
	}
}

// Smart reports whether status lines are rewritten in place.
func (printer *Printer) Smart() bool { return printer.smart }

// SetSmart overrides the terminal's smartness. Verbose builds turn it
// off so that every status line is kept in the scrollback.
func (printer *Printer) SetSmart(smart bool) { printer.smart = smart }

// SupportsColor reports whether ANSI color sequences should be kept.
func (printer *Printer) SupportsColor() bool { return printer.terminal.Color() }

// Locked reports whether the console is currently granted to a build
// step.
func (printer *Printer) Locked() bool { return printer.locked }

// Err returns the first write error. Once a write fails, later writes
// are skipped.
func (printer *Printer) Err() error { return printer.err }

// PrintLine renders a status line. While locked, the line replaces any
// previously pending status line and is rendered on unlock.
func (printer *Printer) PrintLine(text string, kind LineKind) {
	if printer.locked {
		printer.lineBuffer = text
		printer.lineKind = kind
		return
	}

	if !printer.smart {
		printer.write(text + "\n")
		printer.haveBlankLine = true
		return
	}

	if kind == Elided {
		printer.write("\r" + ElideMiddle(text, printer.terminal.Width()) + ansi.EraseLineRight)
		printer.haveBlankLine = false
		return
	}
	printer.write("\r" + text + "\n")
	printer.haveBlankLine = true
}

// PrintOnNewLine writes text starting at the beginning of a line,
// terminating an unterminated status line first. While locked, text
// is queued behind any pending status line.
func (printer *Printer) PrintOnNewLine(text string) {
	if printer.locked && printer.lineBuffer != "" {
		printer.outputBuffer.WriteString(printer.lineBuffer)
		printer.outputBuffer.WriteByte('\n')
		printer.lineBuffer = ""
	}
	if !printer.haveBlankLine {
		printer.printOrBuffer("\n")
	}
	if text != "" {
		printer.printOrBuffer(text)
	}
	printer.haveBlankLine = text == "" || text[0] == '\n'
}

// SetLocked grants (true) or returns (false) the console. Locking
// moves to a new line first. Unlocking writes everything queued while
// locked, in submission order, followed by the pending status line.
// Setting the current state again does nothing.
func (printer *Printer) SetLocked(locked bool) {
	if locked == printer.locked {
		return
	}
	if locked {
		printer.PrintOnNewLine("")
		printer.locked = true
		return
	}

	printer.locked = false
	output := printer.outputBuffer.String()
	line, kind := printer.lineBuffer, printer.lineKind
	printer.outputBuffer.Reset()
	printer.lineBuffer = ""

	// haveBlankLine describes the buffered text, not the terminal, so
	// the flush can start with an extra newline. ninja's frontend does
	// the same.
	printer.PrintOnNewLine(output)
	if line != "" {
		printer.PrintLine(line, kind)
	}
}

func (printer *Printer) printOrBuffer(text string) {
	if printer.locked {
		printer.outputBuffer.WriteString(text)
		return
	}
	printer.write(text)
}

func (printer *Printer) write(text string) {
	if printer.err != nil {
		return
	}
	_, printer.err = io.WriteString(printer.out, text)
}
