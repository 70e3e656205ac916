// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the build status
// packages.
//
// [RequireReceive] bounds a wait on a channel with a wall-clock
// timeout so that a frontend blocked on a pipe fails the test instead
// of hanging it. It is the only place tests use real timeouts.
//
// Helpers call t.Fatalf on failure rather than returning errors.
package testutil
