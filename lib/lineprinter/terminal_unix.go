// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package lineprinter

import (
	"os"

	"golang.org/x/term"
)

// isSmartTerminal reports whether file is an interactive terminal whose
// TERM names something other than the dumb terminal.
func isSmartTerminal(file *os.File) bool {
	if !term.IsTerminal(int(file.Fd())) {
		return false
	}
	terminalType := os.Getenv("TERM")
	return terminalType != "" && terminalType != "dumb"
}
