// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the build
// status frontend.
//
// A configuration file is optional. When one is named, by the
// BUREAU_BUILD_STATUS_CONFIG environment variable (via [Load]) or a
// --config flag (via [LoadFile]), its values replace the [Default]s.
// Command-line flags then override individual fields. There is no
// automatic file search.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// An example file:
//
//	input_fd: 3
//	encoding: msgpack
//	status: "[%f/%t %o/s] "
//	log:
//	  file: ${HOME}/.cache/build-status.log
//	  level: debug
//	terminal:
//	  smart: auto
//	  color: always
//	  width: 0
package config
