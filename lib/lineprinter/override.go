// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lineprinter

import "fmt"

// Mode forces a terminal capability on or off, or leaves it to
// detection.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// Validate reports whether mode is one of the known modes. The empty
// mode is treated as ModeAuto.
func (mode Mode) Validate() error {
	switch mode {
	case "", ModeAuto, ModeAlways, ModeNever:
		return nil
	}
	return fmt.Errorf("unknown mode %q (want %s, %s or %s)", mode, ModeAuto, ModeAlways, ModeNever)
}

func (mode Mode) apply(detected bool) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return detected
	}
}

// Override wraps base, replacing smartness and color support according
// to their modes and the width when width is positive.
func Override(base Terminal, smart, color Mode, width int) Terminal {
	return &overrideTerminal{base: base, smart: smart, color: color, width: width}
}

type overrideTerminal struct {
	base         Terminal
	smart, color Mode
	width        int
}

func (terminal *overrideTerminal) Smart() bool { return terminal.smart.apply(terminal.base.Smart()) }
func (terminal *overrideTerminal) Color() bool { return terminal.color.apply(terminal.base.Color()) }

func (terminal *overrideTerminal) Width() int {
	if terminal.width > 0 {
		return terminal.width
	}
	return terminal.base.Width()
}
