// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import "fmt"

// ProtocolError reports a stream that does not follow the status
// protocol: a missing or wrong header, a message of the wrong shape,
// a field of the wrong type, or start/finish events that do not pair
// up. The stream cannot be resynchronized after a ProtocolError.
type ProtocolError struct {
	// Reason describes what was expected.
	Reason string

	// Value is the offending decoded value.
	Value any
}

func (err *ProtocolError) Error() string {
	return fmt.Sprintf("status protocol: %s (got %v)", err.Reason, err.Value)
}

func protocolErrorf(value any, format string, args ...any) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...), Value: value}
}
