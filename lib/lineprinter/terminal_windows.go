// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package lineprinter

import (
	"os"

	"golang.org/x/term"
)

// isSmartTerminal reports whether file is a console handle. Windows
// consoles do not set TERM; a console that accepts the screen buffer
// query handles carriage return and erase to end of line.
func isSmartTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
