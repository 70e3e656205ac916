// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
	"io"
)

// Encoding names a value encoding on the status stream.
type Encoding string

const (
	// EncodingMsgpack is MessagePack, as written by ninja.
	EncodingMsgpack Encoding = "msgpack"

	// EncodingCBOR is a CBOR sequence (RFC 8742).
	EncodingCBOR Encoding = "cbor"
)

// ParseEncoding validates an encoding name from configuration.
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(name) {
	case EncodingMsgpack, EncodingCBOR:
		return Encoding(name), nil
	default:
		return "", fmt.Errorf("unknown encoding %q (want %q or %q)", name, EncodingMsgpack, EncodingCBOR)
	}
}

// ErrIncomplete is returned by [StreamDecoder.Next] when the buffered
// bytes do not yet hold a complete value.
var ErrIncomplete = errors.New("codec: incomplete value")

// StreamDecoder yields discrete values from an append-only byte
// stream. It is not safe for concurrent use.
type StreamDecoder interface {
	// Feed appends data to the decode buffer. The decoder does not
	// retain data after Feed returns.
	Feed(data []byte)

	// Next decodes and consumes the next complete value. Integers
	// decode as int64 or uint64, strings as string (or []byte for
	// binary strings), arrays as []any. Returns ErrIncomplete when
	// more bytes are needed; any other error means the stream is
	// malformed and the decoder must not be used again.
	Next() (any, error)

	// Buffered reports the number of bytes fed but not yet consumed.
	Buffered() int
}

// NewStreamDecoder returns a StreamDecoder for the given encoding.
func NewStreamDecoder(encoding Encoding) (StreamDecoder, error) {
	switch encoding {
	case EncodingMsgpack:
		return newMsgpackStream(), nil
	case EncodingCBOR:
		return newCBORStream(), nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

// StreamEncoder writes values to a stream in one encoding.
type StreamEncoder interface {
	Encode(value any) error
}

// NewStreamEncoder returns an encoder writing values to w.
func NewStreamEncoder(encoding Encoding, w io.Writer) (StreamEncoder, error) {
	switch encoding {
	case EncodingMsgpack:
		return newMsgpackEncoder(w), nil
	case EncodingCBOR:
		return NewEncoder(w), nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

// streamBuffer holds bytes fed to a decoder until they are consumed.
type streamBuffer struct {
	data []byte
}

func (buffer *streamBuffer) Feed(data []byte) {
	buffer.data = append(buffer.data, data...)
}

func (buffer *streamBuffer) Buffered() int {
	return len(buffer.data)
}

// consume drops the first count bytes, compacting the remainder to
// the front so the backing array does not grow without bound.
func (buffer *streamBuffer) consume(count int) {
	remaining := copy(buffer.data, buffer.data[count:])
	buffer.data = buffer.data[:remaining]
}

// isTruncation reports whether a decode error only means the buffer
// ended inside a value.
func isTruncation(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
