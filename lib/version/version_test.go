// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfoDefaults(t *testing.T) {
	if got, want := Info(), "0.1.0-dev (unknown, unknown)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestInfoDirty(t *testing.T) {
	original := GitDirty
	GitDirty = "true"
	t.Cleanup(func() { GitDirty = original })

	if got := Info(); !strings.Contains(got, "unknown-dirty") {
		t.Errorf("Info() = %q, want the commit marked dirty", got)
	}
}

func TestFprint(t *testing.T) {
	var buffer bytes.Buffer
	Fprint(&buffer, "bureau-build-status")

	got := buffer.String()
	if !strings.HasPrefix(got, "bureau-build-status 0.1.0-dev ") || !strings.HasSuffix(got, "\n") {
		t.Errorf("Fprint wrote %q", got)
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	if got := Full(); !strings.Contains(got, "Platform: ") || !strings.Contains(got, "Go: go") {
		t.Errorf("Full() = %q, missing Go version or platform", got)
	}
}
