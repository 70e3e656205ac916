// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"bytes"
	"testing"

	"github.com/bureau-foundation/buildstatus/lib/codec"
)

// encodeStream encodes values back to back. Pass Header first to make
// a well-formed stream.
func encodeStream(t *testing.T, encoding codec.Encoding, values ...any) []byte {
	t.Helper()
	var buffer bytes.Buffer
	encoder, err := codec.NewStreamEncoder(encoding, &buffer)
	if err != nil {
		t.Fatalf("NewStreamEncoder: %v", err)
	}
	for _, value := range values {
		if err := encoder.Encode(value); err != nil {
			t.Fatalf("Encode %v: %v", value, err)
		}
	}
	return buffer.Bytes()
}

func newTestDecoder(t *testing.T, encoding codec.Encoding) *Decoder {
	t.Helper()
	stream, err := codec.NewStreamDecoder(encoding)
	if err != nil {
		t.Fatalf("NewStreamDecoder: %v", err)
	}
	return NewDecoder(stream, nil)
}

func edgeStartedMessage(id int, startMillis int64, console bool) []any {
	return []any{
		int(TagEdgeStarted), id, startMillis,
		[]string{"src/main.c"}, []string{"obj/main.o"},
		"CC obj/main.o", "cc -c src/main.c -o obj/main.o", console,
	}
}

func edgeFinishedMessage(id int, endMillis int64, status int, output string) []any {
	return []any{int(TagEdgeFinished), id, endMillis, status, output}
}

var testEncodings = []codec.Encoding{codec.EncodingMsgpack, codec.EncodingCBOR}
