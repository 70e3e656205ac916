// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/bureau-foundation/buildstatus/lib/codec"
)

// Decoder turns the status byte stream into typed events. It checks
// the stream header, routes each message by tag, and pairs edge
// finish events with their start events. A Decoder is not safe for
// concurrent use.
type Decoder struct {
	stream     codec.StreamDecoder
	edges      *lifecycle
	seenHeader bool
	logger     *slog.Logger
}

// NewDecoder returns a Decoder reading values from stream. A nil
// logger discards log records.
func NewDecoder(stream codec.StreamDecoder, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Decoder{
		stream: stream,
		edges:  newLifecycle(),
		logger: logger,
	}
}

// Feed appends a chunk of the stream to the decode buffer.
func (decoder *Decoder) Feed(data []byte) {
	decoder.stream.Feed(data)
}

// Next decodes the next complete message. It returns ok == false with
// a nil error when the buffer ends before a complete message; the
// partial message stays buffered until a later Feed completes it.
//
// Errors are *ProtocolError for protocol violations, or a wrapped
// codec error for bytes that are not valid values at all. Either way
// the Decoder must not be used again.
func (decoder *Decoder) Next() (Event, bool, error) {
	for {
		value, err := decoder.stream.Next()
		if errors.Is(err, codec.ErrIncomplete) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("decoding status stream: %w", err)
		}

		if !decoder.seenHeader {
			if err := checkHeader(value); err != nil {
				return nil, false, err
			}
			decoder.seenHeader = true
			continue
		}

		event, err := decoder.route(value)
		if err != nil {
			return nil, false, err
		}
		return event, true, nil
	}
}

// Decode feeds data and returns every event it completes, in arrival
// order. On error, the returned events are those decoded before the
// fault.
func (decoder *Decoder) Decode(data []byte) ([]Event, error) {
	decoder.Feed(data)
	var events []Event
	for {
		event, ok, err := decoder.Next()
		if err != nil {
			return events, err
		}
		if !ok {
			return events, nil
		}
		events = append(events, event)
	}
}

// Outstanding returns the number of edges started but not finished.
func (decoder *Decoder) Outstanding() int {
	return decoder.edges.outstanding()
}

// Buffered returns the number of bytes held for an incomplete value.
func (decoder *Decoder) Buffered() int {
	return decoder.stream.Buffered()
}

func checkHeader(value any) error {
	header, ok := asInt(value)
	if !ok {
		return protocolErrorf(value, "expected integer header %#x", Header)
	}
	if header != Header {
		return protocolErrorf(value, "expected header %#x", Header)
	}
	return nil
}

// minimumLength is the element count, tag included, each known tag
// requires.
var minimumLength = map[Tag]int{
	TagTotalEdges:    2,
	TagBuildStarted:  3,
	TagBuildFinished: 1,
	TagEdgeStarted:   8,
	TagEdgeFinished:  5,
	TagInfo:          2,
	TagWarning:       2,
	TagError:         2,
}

func (decoder *Decoder) route(value any) (Event, error) {
	message, ok := value.([]any)
	if !ok {
		return nil, protocolErrorf(value, "expected array message")
	}
	if len(message) < 1 {
		return nil, protocolErrorf(value, "expected at least one element in message")
	}
	tagValue, ok := asInt(message[0])
	if !ok {
		return nil, protocolErrorf(value, "expected integer message tag")
	}

	tag := Tag(tagValue)
	required, known := minimumLength[tag]
	if !known || tagValue != int64(tag) {
		decoder.logger.Debug("unknown status message", "tag", tagValue, "length", len(message))
		return Unknown{Raw: value}, nil
	}
	if len(message) < required {
		return nil, protocolErrorf(value, "message tag %d needs %d elements, got %d", tag, required, len(message))
	}

	fields := fieldReader{message: message}
	switch tag {
	case TagTotalEdges:
		event := TotalEdges{TotalEdges: fields.intField(1, "total_edges")}
		return event, fields.err

	case TagBuildStarted:
		event := BuildStarted{
			Parallelism: fields.intField(1, "parallelism"),
			Verbose:     fields.boolField(2, "verbose"),
		}
		return event, fields.err

	case TagBuildFinished:
		return BuildFinished{}, nil

	case TagEdgeStarted:
		event := EdgeStarted{
			ID:              fields.intField(1, "id"),
			StartTimeMillis: fields.int64Field(2, "start_time_millis"),
			Inputs:          fields.stringsField(3, "inputs"),
			Outputs:         fields.stringsField(4, "outputs"),
			Description:     fields.stringField(5, "description"),
			Command:         fields.stringField(6, "command"),
			Console:         fields.boolField(7, "console"),
		}
		if fields.err != nil {
			return nil, fields.err
		}
		if err := decoder.edges.begin(event); err != nil {
			return nil, err
		}
		return event, nil

	case TagEdgeFinished:
		event := EdgeFinished{
			ID:            fields.intField(1, "id"),
			EndTimeMillis: fields.int64Field(2, "end_time_millis"),
			Status:        fields.intField(3, "status"),
			Output:        fields.stringField(4, "output"),
		}
		if fields.err != nil {
			return nil, fields.err
		}
		started, err := decoder.edges.end(event.ID)
		if err != nil {
			return nil, err
		}
		event.Started = started
		return event, nil

	case TagInfo:
		event := Message{Kind: MessageInfo, Text: fields.stringField(1, "text")}
		return event, fields.err

	case TagWarning:
		event := Message{Kind: MessageWarning, Text: fields.stringField(1, "text")}
		return event, fields.err

	case TagError:
		event := Message{Kind: MessageError, Text: fields.stringField(1, "text")}
		return event, fields.err
	}

	panic(fmt.Sprintf("frontend: tag %d has a length but no route", tag))
}

// fieldReader extracts typed positional fields from a message. The
// first type mismatch is kept in err and later reads return zero
// values, so a constructor can read every field and check once.
type fieldReader struct {
	message []any
	err     error
}

func (reader *fieldReader) fail(index int, name, want string) {
	if reader.err == nil {
		reader.err = protocolErrorf(reader.message, "field %d (%s) must be %s, got %T", index, name, want, reader.message[index])
	}
}

func (reader *fieldReader) int64Field(index int, name string) int64 {
	number, ok := asInt(reader.message[index])
	if !ok {
		reader.fail(index, name, "an integer")
	}
	return number
}

func (reader *fieldReader) intField(index int, name string) int {
	number := reader.int64Field(index, name)
	if number != int64(int(number)) {
		reader.fail(index, name, "an integer in range")
		return 0
	}
	return int(number)
}

func (reader *fieldReader) boolField(index int, name string) bool {
	flag, ok := reader.message[index].(bool)
	if !ok {
		reader.fail(index, name, "a boolean")
	}
	return flag
}

func (reader *fieldReader) stringField(index int, name string) string {
	text, ok := asString(reader.message[index])
	if !ok {
		reader.fail(index, name, "a string")
	}
	return text
}

func (reader *fieldReader) stringsField(index int, name string) []string {
	elements, ok := reader.message[index].([]any)
	if !ok {
		if reader.message[index] == nil {
			return nil
		}
		reader.fail(index, name, "an array of strings")
		return nil
	}
	result := make([]string, 0, len(elements))
	for _, element := range elements {
		text, ok := asString(element)
		if !ok {
			reader.fail(index, name, "an array of strings")
			return nil
		}
		result = append(result, text)
	}
	return result
}

// asInt accepts every integer type the codecs produce. Unsigned values
// above math.MaxInt64 are rejected.
func asInt(value any) (int64, bool) {
	switch number := value.(type) {
	case int64:
		return number, true
	case uint64:
		if number > math.MaxInt64 {
			return 0, false
		}
		return int64(number), true
	case int:
		return int64(number), true
	case int8:
		return int64(number), true
	case int16:
		return int64(number), true
	case int32:
		return int64(number), true
	case uint:
		if uint64(number) > math.MaxInt64 {
			return 0, false
		}
		return int64(number), true
	case uint8:
		return int64(number), true
	case uint16:
		return int64(number), true
	case uint32:
		return int64(number), true
	default:
		return 0, false
	}
}

// asString accepts text strings and binary strings. A MessagePack
// producer may encode a path with the bin family.
func asString(value any) (string, bool) {
	switch text := value.(type) {
	case string:
		return text, true
	case []byte:
		return string(text), true
	default:
		return "", false
	}
}
