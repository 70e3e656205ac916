// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lineprinter

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminal describes the output device.
type Terminal interface {
	// Smart reports whether the device supports rewriting the current
	// line in place (carriage return and erase to end of line).
	Smart() bool

	// Width returns the device width in columns, or 0 when unknown.
	// It is queried on every elided line so resizes take effect.
	Width() int

	// Color reports whether ANSI color sequences reach a viewer that
	// renders them. Output from build steps is stripped of escape
	// sequences when this is false.
	Color() bool
}

// FixedTerminal is a Terminal with static capabilities.
type FixedTerminal struct {
	IsSmart       bool
	Columns       int
	SupportsColor bool
}

func (fixed FixedTerminal) Smart() bool { return fixed.IsSmart }
func (fixed FixedTerminal) Width() int  { return fixed.Columns }
func (fixed FixedTerminal) Color() bool { return fixed.SupportsColor }

// fileTerminal is a Terminal backed by an open file, usually stdout.
type fileTerminal struct {
	file  *os.File
	smart bool
	color bool
}

// DetectTerminal probes file once for smart-terminal support and color.
//
// Smartness is platform specific (see isSmartTerminal). Color follows
// termenv's environment rules: a color-capable terminal unless NO_COLOR
// is set or CLICOLOR=0, and forced on for pipes by CLICOLOR_FORCE, so a
// CI log that renders ANSI can keep compiler colors.
func DetectTerminal(file *os.File) Terminal {
	output := termenv.NewOutput(file)
	return &fileTerminal{
		file:  file,
		smart: isSmartTerminal(file),
		color: output.EnvColorProfile() != termenv.Ascii,
	}
}

func (terminal *fileTerminal) Smart() bool { return terminal.smart }
func (terminal *fileTerminal) Color() bool { return terminal.color }

func (terminal *fileTerminal) Width() int {
	width, _, err := term.GetSize(int(terminal.file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
