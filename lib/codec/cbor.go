// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode decodes standard CBOR. Positive integers decode as uint64
// and negative integers as int64 when the target is any.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Unknown events are rendered with fmt, which prints
		// map[string]any far more readably than map[any]any.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// NewEncoder returns a CBOR encoder that writes to w using Core
// Deterministic Encoding.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// cborStream decodes a CBOR sequence fed in arbitrary chunks.
type cborStream struct {
	streamBuffer
}

func newCBORStream() *cborStream {
	return &cborStream{}
}

func (stream *cborStream) Next() (any, error) {
	if len(stream.data) == 0 {
		return nil, ErrIncomplete
	}
	var value any
	rest, err := decMode.UnmarshalFirst(stream.data, &value)
	if err != nil {
		if isTruncation(err) {
			return nil, ErrIncomplete
		}
		return nil, fmt.Errorf("decode CBOR value: %w", err)
	}
	stream.consume(len(stream.data) - len(rest))
	return value, nil
}
