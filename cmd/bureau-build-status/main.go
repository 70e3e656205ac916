// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// bureau-build-status renders ninja build progress from ninja's
// serialized status stream.
//
// ninja writes one MessagePack value per status event to a pipe it
// hands this process (file descriptor 3 by default). The frontend
// decodes the events, pairs edge starts with their finishes, and draws
// the familiar status line on stdout: rewritten in place on an
// interactive terminal, one line per edge when piped. Build steps that
// own the console write to the terminal directly; while one runs, all
// other output is held back and written when it finishes.
//
// The status line format comes from NINJA_STATUS (default "[%f/%t] ").
// Logging is off by default because stdout and stderr belong to the
// build; --log-file enables it. An optional YAML file (--config or
// BUREAU_BUILD_STATUS_CONFIG) sets the same options plus terminal
// capability overrides.
//
// --record saves the raw stream while rendering it; --replay renders a
// saved stream instead of reading the pipe.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/buildstatus/lib/capture"
	"github.com/bureau-foundation/buildstatus/lib/codec"
	"github.com/bureau-foundation/buildstatus/lib/config"
	"github.com/bureau-foundation/buildstatus/lib/frontend"
	"github.com/bureau-foundation/buildstatus/lib/lineprinter"
	"github.com/bureau-foundation/buildstatus/lib/logging"
	"github.com/bureau-foundation/buildstatus/lib/process"
	"github.com/bureau-foundation/buildstatus/lib/status"
	"github.com/bureau-foundation/buildstatus/lib/version"
)

const binaryName = "bureau-build-status"

// statusEnvironment names the variable holding the status template.
const statusEnvironment = "NINJA_STATUS"

func main() {
	if err := run(os.Args[1:]); err != nil {
		process.Fatal(err)
	}
}

// options is the parsed command line merged over the configuration
// file and environment.
type options struct {
	config      *config.Config
	encoding    codec.Encoding
	logLevel    slog.Level
	template    *status.Template
	record      string
	replay      string
	showVersion bool
	showHelp    bool
}

func run(args []string) error {
	opts, err := parseOptions(args, os.Stderr, os.LookupEnv)
	if err != nil {
		return err
	}
	if opts.showHelp {
		return nil
	}
	if opts.showVersion {
		version.Print(binaryName)
		return nil
	}

	logger, closeLog, err := logging.New(opts.config.Log.File, opts.logLevel)
	if err != nil {
		return process.Usage("--log-file: %w", err)
	}
	defer closeLog()
	logger = logger.With("command", binaryName)

	input, closeInput, err := openInput(opts, logger)
	if err != nil {
		return err
	}
	defer closeInput()

	terminal := lineprinter.Override(
		lineprinter.DetectTerminal(os.Stdout),
		opts.config.Terminal.Smart,
		opts.config.Terminal.Color,
		opts.config.Terminal.Width,
	)

	return render(renderConfig{
		input:    input,
		encoding: opts.encoding,
		output:   os.Stdout,
		terminal: terminal,
		template: opts.template,
		logger:   logger,
	})
}

// openInput returns the status stream: the replay file when one is
// named, the input descriptor otherwise, teed into the record file
// when recording. The close function releases everything opened.
func openInput(opts options, logger *slog.Logger) (io.Reader, func(), error) {
	var closers []func()
	closeAll := func() {
		for index := len(closers) - 1; index >= 0; index-- {
			closers[index]()
		}
	}

	var input io.Reader
	if opts.replay != "" {
		replay, err := capture.Open(opts.replay)
		if err != nil {
			return nil, nil, process.Usage("--replay: %w", err)
		}
		closers = append(closers, func() { replay.Close() })
		input = replay
	} else {
		stream := os.NewFile(uintptr(opts.config.InputFD), "status-input")
		if _, err := stream.Stat(); err != nil {
			return nil, nil, process.Usage("--input-fd: descriptor %d is not open: %w", opts.config.InputFD, err)
		}
		closers = append(closers, func() { stream.Close() })
		input = stream
	}

	if opts.record != "" {
		recorder, err := capture.Create(opts.record)
		if err != nil {
			closeAll()
			return nil, nil, process.Usage("--record: %w", err)
		}
		closers = append(closers, func() {
			if err := recorder.Close(); err != nil {
				logger.Warn("closing status capture", "path", opts.record, "error", err)
			}
		})
		input = io.TeeReader(input, recorder)
	}
	return input, closeAll, nil
}

// parseOptions builds the effective settings. Precedence, lowest
// first: defaults, the configuration file, NINJA_STATUS, flags. Help
// output goes to helpOutput; a request for help sets showHelp and
// returns no error.
func parseOptions(args []string, helpOutput io.Writer, lookupEnv func(string) (string, bool)) (options, error) {
	var configPath, encodingName, logFile, levelName string
	var inputFD int
	var opts options

	defaults := config.Default()
	flagSet := pflag.NewFlagSet(binaryName, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&configPath, "config", "", "YAML configuration file (default: $"+config.EnvironmentVariable+", if set)")
	flagSet.IntVar(&inputFD, "input-fd", defaults.InputFD, "file descriptor carrying the serialized status stream")
	flagSet.StringVar(&encodingName, "encoding", defaults.Encoding, "status stream encoding: msgpack or cbor")
	flagSet.StringVar(&logFile, "log-file", defaults.Log.File, `append log records to this file ("-" for stderr; default: no logging)`)
	flagSet.StringVar(&levelName, "log-level", defaults.Log.Level, "minimum log level: debug, info, warn or error")
	flagSet.StringVar(&opts.record, "record", "", "also write the raw status stream to this capture file (.zst or .lz4 to compress)")
	flagSet.StringVar(&opts.replay, "replay", "", "read the status stream from this capture file instead of --input-fd")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	flagSet.BoolVarP(&opts.showHelp, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(helpOutput, flagSet)
			return options{showHelp: true}, nil
		}
		return options{}, process.Usage("%w", err)
	}
	if opts.showHelp {
		printHelp(helpOutput, flagSet)
		return opts, nil
	}
	if opts.showVersion {
		return opts, nil
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return options{}, process.Usage("unexpected argument: %s", extra[0])
	}

	cfg, err := config.Load(configPath, lookupEnv)
	if err != nil {
		return options{}, process.Usage("%w", err)
	}

	if template, ok := lookupEnv(statusEnvironment); ok {
		cfg.Status = template
	}
	if flagSet.Changed("input-fd") {
		cfg.InputFD = inputFD
	}
	if flagSet.Changed("encoding") {
		cfg.Encoding = encodingName
	}
	if flagSet.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = levelName
	}

	if err := cfg.Validate(); err != nil {
		return options{}, process.Usage("invalid configuration: %w", err)
	}

	// Validate has accepted each of these, so parsing cannot fail.
	opts.config = cfg
	opts.encoding, _ = codec.ParseEncoding(cfg.Encoding)
	opts.logLevel, _ = logging.ParseLevel(cfg.Log.Level)
	opts.template, _ = status.ParseTemplate(cfg.Status)
	return opts, nil
}

type renderConfig struct {
	input    io.Reader
	encoding codec.Encoding
	output   io.Writer
	terminal lineprinter.Terminal
	template *status.Template
	logger   *slog.Logger
}

// render runs the frontend until the status stream ends.
func render(setup renderConfig) error {
	console := lineprinter.New(setup.output, setup.terminal)
	printer := status.NewPrinter(console, setup.template, setup.logger)

	statusFrontend, err := frontend.New(frontend.Config{
		Input:    setup.input,
		Encoding: setup.encoding,
		Handler:  printer,
		Logger:   setup.logger,
	})
	if err != nil {
		return err
	}

	setup.logger.Debug("rendering build status",
		"encoding", setup.encoding,
		"template", setup.template.String(),
		"smart", console.Smart(),
		"color", console.SupportsColor(),
	)
	return statusFrontend.Run()
}

func printHelp(output io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(output, `bureau-build-status: render ninja build progress from its status stream.

Reads serialized status events from a pipe (file descriptor 3 unless
--input-fd says otherwise) and draws the build status on stdout.

Usage:
  bureau-build-status [flags]

Environment:
  BUREAU_BUILD_STATUS_CONFIG
                 configuration file used when --config is not given
  NINJA_STATUS   status line template (default %q)
                 %%s started  %%t total  %%r running  %%u remaining
                 %%f finished  %%o overall rate  %%c current rate
                 %%p percent finished  %%e elapsed seconds  %%%% literal %%

Flags:
`, status.DefaultTemplate)
	flagSet.SetOutput(output)
	flagSet.PrintDefaults()
}
