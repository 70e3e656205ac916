// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// msgpackStream decodes consecutive MessagePack values fed in
// arbitrary chunks. Each Next call decodes from the start of the
// buffer; a truncated value leaves the buffer untouched.
type msgpackStream struct {
	streamBuffer
	reader  *bytes.Reader
	decoder *msgpack.Decoder
}

func newMsgpackStream() *msgpackStream {
	reader := bytes.NewReader(nil)
	return &msgpackStream{
		reader:  reader,
		decoder: msgpack.NewDecoder(reader),
	}
}

func (stream *msgpackStream) Next() (any, error) {
	if len(stream.data) == 0 {
		return nil, ErrIncomplete
	}

	// bytes.Reader is an io.ByteScanner, so the decoder reads from it
	// directly without its own read-ahead buffer and the reader's
	// remaining length tells exactly how much one value consumed.
	stream.reader.Reset(stream.data)
	stream.decoder.Reset(stream.reader)
	// Reset clears decoder flags. Loose decoding widens every integer
	// to int64/uint64 so callers see the same types as from CBOR.
	stream.decoder.UseLooseInterfaceDecoding(true)

	value, err := stream.decoder.DecodeInterfaceLoose()
	if err != nil {
		if isTruncation(err) {
			return nil, ErrIncomplete
		}
		return nil, fmt.Errorf("decode MessagePack value: %w", err)
	}
	stream.consume(len(stream.data) - stream.reader.Len())
	return value, nil
}

func newMsgpackEncoder(w io.Writer) *msgpack.Encoder {
	encoder := msgpack.NewEncoder(w)
	encoder.UseCompactInts(true)
	return encoder
}
