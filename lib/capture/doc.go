// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package capture records and replays raw build status streams.
//
// A capture is the exact byte stream the build tool wrote, optionally
// compressed. Recording one while a build renders, then replaying it
// with --replay, reproduces a rendering problem without re-running the
// build. Compression is chosen from the file name: ".zst" selects
// zstd, ".lz4" selects the LZ4 frame format, anything else is stored
// uncompressed.
package capture
