// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lineprinter

import (
	"bytes"
	"errors"
	"testing"
)

func newTestPrinter(smart bool, width int) (*Printer, *bytes.Buffer) {
	var buffer bytes.Buffer
	return New(&buffer, FixedTerminal{IsSmart: smart, Columns: width}), &buffer
}

func TestPrintLineSmart(t *testing.T) {
	t.Parallel()

	printer, output := newTestPrinter(true, 12)
	printer.PrintLine("[1/9] CC something.o", Elided)
	printer.PrintLine("[2/9] done", Full)

	want := "\r[1/9...ng.o\x1b[K" + "\r[2/9] done\n"
	if got := output.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintLineDumb(t *testing.T) {
	t.Parallel()

	printer, output := newTestPrinter(false, 12)
	printer.PrintLine("[1/9] CC something.o", Elided)
	printer.PrintLine("[2/9] done", Full)

	want := "[1/9] CC something.o\n[2/9] done\n"
	if got := output.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSetSmartOverridesTerminal(t *testing.T) {
	t.Parallel()

	printer, output := newTestPrinter(true, 80)
	if !printer.Smart() {
		t.Fatal("printer on a smart terminal is not smart")
	}
	printer.SetSmart(false)
	printer.PrintLine("[1/1] CC a.o", Elided)

	if got, want := output.String(), "[1/1] CC a.o\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintOnNewLineAfterElidedLine(t *testing.T) {
	t.Parallel()

	printer, output := newTestPrinter(true, 80)
	printer.PrintLine("[1/2] CC a.o", Elided)
	printer.PrintOnNewLine("")
	printer.PrintOnNewLine("")

	want := "\r[1/2] CC a.o\x1b[K\n"
	if got := output.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintOnNewLineBlankLineTracking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{name: "empty keeps blank", texts: []string{"", ""}, want: ""},
		{name: "text ends line", texts: []string{"one", "two"}, want: "one\ntwo"},
		{name: "leading newline is blank", texts: []string{"\nalpha", "beta"}, want: "\nalphabeta"},
		{name: "empty after text", texts: []string{"one", "", "two"}, want: "one\ntwo"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			printer, output := newTestPrinter(false, 0)
			for _, text := range test.texts {
				printer.PrintOnNewLine(text)
			}
			if got := output.String(); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestLockDefersOutputInOrder(t *testing.T) {
	t.Parallel()

	printer, output := newTestPrinter(true, 80)
	printer.PrintLine("[1/3] CC a.o", Elided)

	printer.SetLocked(true)
	if !printer.Locked() {
		t.Fatal("Locked() = false after SetLocked(true)")
	}
	beforeLocked := output.String()
	if want := "\r[1/3] CC a.o\x1b[K\n"; beforeLocked != want {
		t.Fatalf("locking: got %q, want %q", beforeLocked, want)
	}

	printer.PrintLine("[2/3] CC b.o", Elided)
	printer.PrintOnNewLine("first\n")
	printer.PrintOnNewLine("\nsecond\n")
	printer.PrintLine("[3/3] LINK app", Elided)

	if got := output.String(); got != beforeLocked {
		t.Fatalf("wrote %q while locked", got[len(beforeLocked):])
	}

	printer.SetLocked(false)
	if printer.Locked() {
		t.Fatal("Locked() = true after SetLocked(false)")
	}

	want := beforeLocked +
		"[2/3] CC b.o\nfirst\n" +
		"\n\nsecond\n" +
		"\r[3/3] LINK app\x1b[K"
	if got := output.String(); got != want {
		t.Errorf("after unlock: got %q, want %q", got, want)
	}

	// Buffers are empty after unlock: a second cycle writes only new text.
	output.Reset()
	printer.SetLocked(true)
	printer.SetLocked(false)
	if got, want := output.String(), "\n"; got != want {
		t.Errorf("empty lock cycle: got %q, want %q", got, want)
	}
}

func TestLockPendingStatusLineOnly(t *testing.T) {
	t.Parallel()

	printer, output := newTestPrinter(false, 0)
	printer.SetLocked(true)
	printer.PrintLine("[1/2] first", Elided)
	printer.PrintLine("[2/2] second", Elided)
	printer.SetLocked(false)

	// Only the latest status line submitted while locked survives.
	if got, want := output.String(), "[2/2] second\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSetLockedSameStateIsNoop(t *testing.T) {
	t.Parallel()

	printer, output := newTestPrinter(true, 80)
	printer.PrintLine("[1/1] CC a.o", Elided)
	printer.SetLocked(false)

	if got, want := output.String(), "\r[1/1] CC a.o\x1b[K"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	printer.SetLocked(true)
	written := output.Len()
	printer.SetLocked(true)
	if output.Len() != written {
		t.Errorf("second SetLocked(true) wrote %q", output.String()[written:])
	}
}

type failingWriter struct {
	writes int
}

func (writer *failingWriter) Write(data []byte) (int, error) {
	writer.writes++
	return 0, errors.New("terminal gone")
}

func TestWriteErrorIsSticky(t *testing.T) {
	t.Parallel()

	writer := &failingWriter{}
	printer := New(writer, FixedTerminal{})
	printer.PrintLine("one", Full)
	printer.PrintOnNewLine("two")

	if printer.Err() == nil {
		t.Fatal("Err() = nil after a failed write")
	}
	if writer.writes != 1 {
		t.Errorf("writes after failure: got %d, want 1", writer.writes)
	}
}

func TestLineKindString(t *testing.T) {
	t.Parallel()

	if got := Full.String(); got != "full" {
		t.Errorf("Full.String() = %q, want %q", got, "full")
	}
	if got := Elided.String(); got != "elided" {
		t.Errorf("Elided.String() = %q, want %q", got, "elided")
	}
}
