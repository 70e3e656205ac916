// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec turns the build status byte stream into discrete
// generic values.
//
// The producer writes a sequence of self-delimiting values with no
// outer framing: each value's own encoding carries its length. Two
// encodings are supported behind one [StreamDecoder] interface:
//
//   - MessagePack ([EncodingMsgpack]), the format ninja's status
//     serializer writes. This is the default.
//   - CBOR ([EncodingCBOR]), for producers that speak Bureau's standard
//     CBOR encoding. Integers, text strings, booleans and arrays map
//     onto the same Go values as their MessagePack counterparts.
//
// A StreamDecoder is fed arbitrary chunks as they arrive from the
// input channel. [StreamDecoder.Next] returns [ErrIncomplete] when the
// buffered bytes end in the middle of a value; the partial value stays
// buffered until a later Feed completes it:
//
//	decoder.Feed(chunk)
//	for {
//	    value, err := decoder.Next()
//	    if errors.Is(err, codec.ErrIncomplete) {
//	        break
//	    }
//	    ...
//	}
//
// [NewStreamEncoder] writes the same formats and exists for producers
// and test fixtures.
package codec
