// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// DefaultWatchInterval is the quiet period watch mode waits for before
// re-running the merge.
const DefaultWatchInterval = 1000 * time.Millisecond

// DefaultConverterImage is the container image used by the container backend.
const DefaultConverterImage = "pandoc/core:latest"

// ConverterBackend identifies the tool that converts the merged markdown
// into other formats.
type ConverterBackend string

const (
	// BackendAuto picks pandoc, then a container runtime, then the builtin converter.
	BackendAuto      ConverterBackend = "auto"
	BackendPandoc    ConverterBackend = "pandoc"
	BackendContainer ConverterBackend = "container"
	BackendBuiltin   ConverterBackend = "builtin"
)

// ParseConverterBackend converts a flag or config value into a
// ConverterBackend. The empty string maps to BackendAuto.
func ParseConverterBackend(s string) (ConverterBackend, error) {
	switch ConverterBackend(s) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendPandoc, BackendContainer, BackendBuiltin:
		return ConverterBackend(s), nil
	}
	return "", fmt.Errorf("unknown converter backend %q (want auto, pandoc, container, or builtin)", s)
}

// ConverterConfig holds settings for format conversion.
type ConverterConfig struct {
	// Backend selects the conversion tool: auto, pandoc, container, or builtin.
	Backend ConverterBackend `json:"backend" yaml:"backend"`

	// Image is the pandoc container image for the container backend.
	Image string `json:"image" yaml:"image"`
}

// WatchConfig holds settings for watch mode.
type WatchConfig struct {
	// Enabled turns on watch mode.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Interval is the debounce quiet period (default 1s).
	Interval time.Duration `json:"interval" yaml:"interval"`
}

// Config groups everything the CLI resolves from flags, environment, and
// the optional config file.
type Config struct {
	Merge     MergeRequest    `json:"merge" yaml:"merge"`
	Watch     WatchConfig     `json:"watch" yaml:"watch"`
	Converter ConverterConfig `json:"converter" yaml:"converter"`
}
