// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lineprinter writes build status to a terminal that it may
// have to share.
//
// On a smart terminal (an interactive device that understands cursor
// movement) the [Printer] keeps one status line that each update
// rewrites in place, shortening it in the middle so it never wraps.
// On anything else (a pipe, a file, TERM=dumb) every line is written
// in full and terminated, so captured logs stay complete.
//
// A build step can be granted the console: it writes straight to the
// same terminal from another process. While that step runs the
// printer is locked with [Printer.SetLocked]. Locked, it writes
// nothing; status lines and output are buffered and appear, in the
// order they were submitted, as soon as the printer is unlocked. The
// lock cannot stop the other process from writing; it only keeps this
// process from writing over it.
//
// Terminal capabilities come from a [Terminal], probed once by
// [DetectTerminal] or fixed with [FixedTerminal] in tests.
package lineprinter
