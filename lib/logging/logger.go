// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the structured logger for build status
// binaries.
//
// The terminal belongs to the rendered build, so logging is off unless
// a destination is named. When the destination is a terminal the
// records are human-readable text; otherwise they are JSON lines, the
// same split Bureau's CLI uses.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stderr is the destination name that selects standard error.
const Stderr = "-"

// ParseLevel parses a level name such as "debug", "info", "warn" or
// "error". Names are case-insensitive and accept slog's offset syntax
// ("info+2").
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// New returns a logger writing records at or above level to
// destination: empty discards, [Stderr] writes to standard error, and
// anything else is a file path opened for appending. The returned
// close function releases the file and is safe to call for every
// destination.
func New(destination string, level slog.Level) (*slog.Logger, func() error, error) {
	switch destination {
	case "":
		return slog.New(slog.DiscardHandler), noClose, nil
	case Stderr:
		return slog.New(NewHandler(os.Stderr, isTerminal(os.Stderr), level)), noClose, nil
	}

	file, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(NewHandler(file, false, level)), file.Close, nil
}

// NewHandler returns a text handler when terminal is true and a JSON
// handler otherwise.
func NewHandler(writer io.Writer, terminal bool, level slog.Level) slog.Handler {
	options := &slog.HandlerOptions{Level: level}
	if terminal {
		return slog.NewTextHandler(writer, options)
	}
	return slog.NewJSONHandler(writer, options)
}

func isTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

func noClose() error { return nil }
