// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package status renders ninja build progress on a console.
//
// [Printer] consumes the events decoded by the frontend package and
// keeps the render state: edge counters, the time of the latest edge
// event, and a [SlidingRate] window of recent completion times. Each
// status line is the expansion of a [Template] (the NINJA_STATUS
// format, "[%f/%t] " by default) followed by the edge description.
//
// Failed edges print "FAILED: " and their outputs, then the command,
// then whatever the edge wrote. Escape sequences in edge output are
// stripped unless the console renders color.
//
// Lines are written through a lineprinter.Printer, which owns cursor
// tracking and the console lock used while an edge writes to the
// terminal directly.
package status
