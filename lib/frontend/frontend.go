// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/buildstatus/lib/codec"
)

// readChunkSize bounds a single read from the input. Edge output can
// be large, so reads are generous; the decoder reassembles messages
// split across reads regardless.
const readChunkSize = 1024 * 1024

// Config holds the collaborators of a Frontend.
type Config struct {
	// Input is the status stream. Run reads until it returns io.EOF.
	Input io.Reader

	// Encoding selects the value encoding. Empty means MessagePack.
	Encoding codec.Encoding

	// Handler receives every decoded event.
	Handler Handler

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Frontend reads the status stream and hands each event to a Handler.
// Each event is handled to completion before the next is dispatched.
type Frontend struct {
	input   io.Reader
	decoder *Decoder
	handler Handler
	logger  *slog.Logger

	// events counts dispatched events for the closing log record.
	events int
}

// New validates config and returns a Frontend ready to Run.
func New(config Config) (*Frontend, error) {
	if config.Input == nil {
		return nil, errors.New("frontend: Input is required")
	}
	if config.Handler == nil {
		return nil, errors.New("frontend: Handler is required")
	}
	encoding := config.Encoding
	if encoding == "" {
		encoding = codec.EncodingMsgpack
	}
	stream, err := codec.NewStreamDecoder(encoding)
	if err != nil {
		return nil, fmt.Errorf("frontend: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Frontend{
		input:   config.Input,
		decoder: NewDecoder(stream, logger),
		handler: config.Handler,
		logger:  logger,
	}, nil
}

// Run reads and dispatches events until the input reaches end of
// stream, which is a clean exit. It returns the first protocol error,
// handler error or read error.
func (frontend *Frontend) Run() error {
	buffer := make([]byte, readChunkSize)
	for {
		count, readErr := frontend.input.Read(buffer)
		if count > 0 {
			if err := frontend.Handle(buffer[:count]); err != nil {
				return err
			}
		}
		if readErr == nil {
			continue
		}
		if !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("reading status stream: %w", readErr)
		}
		if pending := frontend.decoder.Buffered(); pending > 0 {
			frontend.logger.Warn("status stream closed inside a message",
				"undecoded_bytes", pending,
			)
		}
		frontend.logger.Debug("status stream closed",
			"events", frontend.events,
			"outstanding_edges", frontend.decoder.Outstanding(),
		)
		return nil
	}
}

// Handle feeds one chunk of the stream and dispatches every event it
// completes. Each event reaches the handler before the next message
// is decoded, so the outstanding-edge table never runs ahead of what
// the handler has seen.
func (frontend *Frontend) Handle(data []byte) error {
	frontend.decoder.Feed(data)
	for {
		event, ok, err := frontend.decoder.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := Dispatch(frontend.handler, event); err != nil {
			return fmt.Errorf("handling %T: %w", event, err)
		}
		frontend.events++
	}
}

// Outstanding returns the number of edges started but not finished.
func (frontend *Frontend) Outstanding() int {
	return frontend.decoder.Outstanding()
}
