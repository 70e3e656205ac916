// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides entrypoint helpers for the build status
// binaries. It holds the raw stderr writes that happen outside the
// structured logger: fatal errors reported when the logger is off or
// not yet built, and the matching process exit.
//
// Exit codes follow the usual command-line split: 1 for a failed run,
// 2 for a usage error that stopped the run before it began.
package process
