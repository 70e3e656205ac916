// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package frontend decodes a build tool's status stream into typed
// events and dispatches them to a [Handler].
//
// The stream is the one ninja writes to its --frontend process: a
// header value ([Header], "NJS1") followed by one array per message.
// Element 0 of each array is a [Tag]; the remaining elements are
// positional fields:
//
//	0 total edges     [0, total]
//	1 build started   [1, parallelism, verbose]
//	2 build finished  [2]
//	3 edge started    [3, id, start_ms, inputs, outputs, description, command, console]
//	4 edge finished   [4, id, end_ms, status, output]
//	5/6/7 message     [tag, text]  (info, warning, error)
//
// Messages with any other integer tag decode as [Unknown]. Everything
// else that does not fit the table is a [*ProtocolError].
//
// The [Decoder] keeps a table of outstanding edges so every
// [EdgeFinished] carries the [EdgeStarted] it completes. A finish with
// no outstanding start, or a second start for an outstanding id, is a
// ProtocolError: the stream and this frontend disagree about the
// build and nothing rendered afterwards could be trusted.
//
// [Frontend] ties the pieces together for a process: it reads the
// input until end of stream and dispatches each event to completion
// before the next.
package frontend
