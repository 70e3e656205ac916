// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package status

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/buildstatus/lib/frontend"
	"github.com/bureau-foundation/buildstatus/lib/lineprinter"
)

const failedPrefix = "FAILED: "

var failedPrefixColored = termenv.String(failedPrefix).Foreground(termenv.ANSIRed).String()

// Printer renders build status events to a console. It implements
// [frontend.Handler].
type Printer struct {
	console  *lineprinter.Printer
	template *Template
	rate     *SlidingRate
	logger   *slog.Logger

	total    int
	started  int
	running  int
	finished int

	// timeMillis is taken from edge events, not the wall clock.
	timeMillis int64

	verbose bool
}

var _ frontend.Handler = (*Printer)(nil)

// NewPrinter returns a Printer that expands template for each status
// line and writes through console. A nil logger discards.
func NewPrinter(console *lineprinter.Printer, template *Template, logger *slog.Logger) *Printer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Printer{
		console:  console,
		template: template,
		rate:     NewSlidingRate(DefaultRateWindow),
		logger:   logger,
	}
}

// Snapshot returns the current counters.
func (printer *Printer) Snapshot() Snapshot {
	return Snapshot{
		Total:      printer.total,
		Started:    printer.started,
		Running:    printer.running,
		Finished:   printer.finished,
		TimeMillis: printer.timeMillis,
	}
}

func (printer *Printer) HandleTotalEdges(event frontend.TotalEdges) error {
	printer.total = event.TotalEdges
	return nil
}

func (printer *Printer) HandleBuildStarted(event frontend.BuildStarted) error {
	printer.rate = NewSlidingRate(event.Parallelism)
	printer.verbose = event.Verbose
	if event.Verbose {
		printer.console.SetSmart(false)
	}
	printer.logger.Debug("build started",
		"parallelism", event.Parallelism,
		"verbose", event.Verbose,
		"smart", printer.console.Smart(),
	)
	return nil
}

func (printer *Printer) HandleBuildFinished(frontend.BuildFinished) error {
	printer.console.SetLocked(false)
	printer.console.PrintOnNewLine("")
	printer.logger.Debug("build finished",
		"started", printer.started,
		"finished", printer.finished,
		"total", printer.total,
	)
	return printer.consoleErr()
}

func (printer *Printer) HandleEdgeStarted(event frontend.EdgeStarted) error {
	printer.started++
	printer.running++
	printer.timeMillis = event.StartTimeMillis
	if event.Console || printer.console.Smart() {
		printer.printStatus(event)
	}
	if event.Console {
		printer.console.SetLocked(true)
	}
	return printer.consoleErr()
}

func (printer *Printer) HandleEdgeFinished(event frontend.EdgeFinished) error {
	printer.finished++
	printer.timeMillis = event.EndTimeMillis
	if event.Started.Console {
		printer.console.SetLocked(false)
	} else {
		printer.printStatus(event.Started)
	}
	printer.running--

	// The command that failed goes before its output.
	if event.Failed() {
		prefix := failedPrefix
		if printer.console.SupportsColor() {
			prefix = failedPrefixColored
		}
		printer.console.PrintOnNewLine(prefix + strings.Join(event.Started.Outputs, " "))
		printer.console.PrintOnNewLine(event.Started.Command)
	}

	// Escape sequences are kept only for a smart terminal; piped and
	// verbose output is read as plain text.
	if event.Output != "" {
		output := event.Output
		if !printer.console.Smart() {
			output = ansi.Strip(output)
		}
		printer.console.PrintOnNewLine(output)
	}
	return printer.consoleErr()
}

func (printer *Printer) HandleInfo(message frontend.Message) error {
	return printer.printMessage("ninja: " + message.Text)
}

func (printer *Printer) HandleWarning(message frontend.Message) error {
	return printer.printMessage("ninja: warning: " + message.Text)
}

func (printer *Printer) HandleError(message frontend.Message) error {
	return printer.printMessage("ninja: error: " + message.Text)
}

func (printer *Printer) HandleUnknown(event frontend.Unknown) error {
	return printer.printMessage(fmt.Sprintf("unknown message: %v", event.Raw))
}

func (printer *Printer) printMessage(text string) error {
	printer.console.PrintLine(text, lineprinter.Full)
	return printer.consoleErr()
}

// printStatus renders the status line for edge: the expanded template
// followed by the edge description, or its command when verbose or
// undescribed.
func (printer *Printer) printStatus(edge frontend.EdgeStarted) {
	text := edge.Description
	if printer.verbose || text == "" {
		text = edge.Command
	}
	kind := lineprinter.Elided
	if printer.verbose {
		kind = lineprinter.Full
	}
	printer.console.PrintLine(printer.template.Expand(printer.Snapshot(), printer.rate)+text, kind)
}

func (printer *Printer) consoleErr() error {
	if err := printer.console.Err(); err != nil {
		return fmt.Errorf("writing build status: %w", err)
	}
	return nil
}
