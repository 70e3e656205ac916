// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError marks an error caused by how the binary was invoked.
// [ExitCode] maps it to [ExitUsage].
type UsageError struct {
	Err error
}

// Usage returns a UsageError with a formatted message. %w is honored.
func Usage(format string, args ...any) *UsageError {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

func (err *UsageError) Error() string { return err.Err.Error() }
func (err *UsageError) Unwrap() error { return err.Err }

// ExitCode returns the exit status for err: 0 for nil, [ExitUsage]
// for a [UsageError] anywhere in the chain, [ExitFailure] otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitFailure
}

// Report writes "error: err" to writer.
func Report(writer io.Writer, err error) {
	fmt.Fprintf(writer, "error: %v\n", err)
}

// Fatal writes "error: err" to stderr and exits with ExitCode(err).
// Use it in main() for errors from run(), where the structured logger
// may not be initialized or may be discarding.
func Fatal(err error) {
	Report(os.Stderr, err)
	os.Exit(ExitCode(err))
}
