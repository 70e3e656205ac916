// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/buildstatus/lib/codec"
	"github.com/bureau-foundation/buildstatus/lib/lineprinter"
	"github.com/bureau-foundation/buildstatus/lib/logging"
	"github.com/bureau-foundation/buildstatus/lib/status"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "BUREAU_BUILD_STATUS_CONFIG"

// Config is the build status frontend configuration.
type Config struct {
	// InputFD is the file descriptor carrying the status stream.
	InputFD int `yaml:"input_fd"`

	// Encoding is the status stream encoding: msgpack or cbor.
	Encoding string `yaml:"encoding"`

	// Status is the status line template. A NINJA_STATUS environment
	// variable takes precedence.
	Status string `yaml:"status"`

	// Log configures diagnostic logging.
	Log LogConfig `yaml:"log"`

	// Terminal overrides detected terminal capabilities.
	Terminal TerminalConfig `yaml:"terminal"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// File receives log records. Empty disables logging; "-" is
	// standard error.
	File string `yaml:"file"`

	// Level is the minimum level recorded.
	Level string `yaml:"level"`
}

// TerminalConfig overrides what terminal detection reports.
type TerminalConfig struct {
	// Smart forces in-place status rewriting on or off.
	Smart lineprinter.Mode `yaml:"smart"`

	// Color forces color output on or off.
	Color lineprinter.Mode `yaml:"color"`

	// Width, when positive, replaces the detected terminal width.
	Width int `yaml:"width"`
}

// Default returns the configuration used when no file is named.
func Default() *Config {
	return &Config{
		InputFD:  3,
		Encoding: string(codec.EncodingMsgpack),
		Status:   status.DefaultTemplate,
		Log: LogConfig{
			Level: "info",
		},
		Terminal: TerminalConfig{
			Smart: lineprinter.ModeAuto,
			Color: lineprinter.ModeAuto,
		},
	}
}

// Load loads the file named by path or, when path is empty, by
// BUREAU_BUILD_STATUS_CONFIG as reported by lookupEnv. With neither set
// it returns the defaults. A nil lookupEnv reads the process
// environment.
func Load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	if path == "" {
		path, _ = lookupEnv(EnvironmentVariable)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path over the defaults. Fields the
// file omits keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg.expandVariables()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

func (c *Config) expandVariables() {
	c.Log.File = expandVars(c.Log.File)
}

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks every field, reporting all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if c.InputFD < 0 {
		errs = append(errs, fmt.Errorf("input_fd must not be negative, got %d", c.InputFD))
	}
	if _, err := codec.ParseEncoding(c.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("encoding: %w", err))
	}
	if _, err := status.ParseTemplate(c.Status); err != nil {
		errs = append(errs, fmt.Errorf("status: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if err := c.Terminal.Smart.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("terminal.smart: %w", err))
	}
	if err := c.Terminal.Color.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("terminal.color: %w", err))
	}
	if c.Terminal.Width < 0 {
		errs = append(errs, fmt.Errorf("terminal.width must not be negative, got %d", c.Terminal.Width))
	}

	return errors.Join(errs...)
}
