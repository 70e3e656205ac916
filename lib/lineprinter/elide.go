// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lineprinter

import "github.com/charmbracelet/x/ansi"

const ellipsis = "..."

// ElideMiddle shortens text to fit width columns by replacing its
// middle with "...". Text is left alone when it fits with three
// columns to spare. Widths are display widths: escape sequences take
// no columns and wide characters take two. A width of 0 or less means
// unknown and returns text unchanged.
func ElideMiddle(text string, width int) string {
	if width <= 0 {
		return text
	}
	textWidth := ansi.StringWidth(text)
	if textWidth+len(ellipsis) <= width {
		return text
	}
	if width <= len(ellipsis) {
		return ellipsis[:width]
	}
	keep := (width - len(ellipsis)) / 2
	return ansi.Truncate(text, keep, "") + ellipsis + ansi.TruncateLeft(text, textWidth-keep, "")
}
