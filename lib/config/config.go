// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable read by Load.
const EnvVar = "TRACECODEC_CONFIG"

// Formats and Compressions are the accepted names.
var (
	Formats      = []string{"json", "cbor", "yaml"}
	Compressions = []string{"none", "lz4", "zstd"}
	ColorModes   = []string{"auto", "always", "never"}
)

// Config is the CLI configuration.
type Config struct {
	// Format sets default input and output encodings.
	Format FormatConfig `yaml:"format"`

	// Buffer configures batching for the pack command.
	Buffer BufferConfig `yaml:"buffer"`

	// Output configures terminal rendering.
	Output OutputConfig `yaml:"output"`
}

// FormatConfig sets default encodings for convert.
type FormatConfig struct {
	// Input is the default --from format.
	// Default: json
	Input string `yaml:"input"`

	// Output is the default --to format.
	// Default: json
	Output string `yaml:"output"`
}

// BufferConfig sizes the batching path.
type BufferConfig struct {
	// Compression applied to each frame payload.
	// Default: zstd
	Compression string `yaml:"compression"`

	// FlushThreshold is the accumulated entry size, in bytes, at
	// which a batch is cut.
	// Default: 65536
	FlushThreshold int `yaml:"flush_threshold"`

	// MaxBytes bounds the frames held before the oldest are dropped.
	// Must exceed FlushThreshold.
	// Default: 8388608
	MaxBytes int `yaml:"max_bytes"`

	// Spool is the default output path for pack. "-" is stdout.
	// Default: -
	Spool string `yaml:"spool"`
}

// OutputConfig controls terminal rendering.
type OutputConfig struct {
	// Color is auto (highlight when stdout is a terminal), always or
	// never.
	// Default: auto
	Color string `yaml:"color"`

	// Style is the chroma style used for highlighting.
	// Default: monokai
	Style string `yaml:"style"`
}

// Default returns the configuration used when no file is given, and
// the base that a loaded file is merged into.
func Default() *Config {
	return &Config{
		Format: FormatConfig{
			Input:  "json",
			Output: "json",
		},
		Buffer: BufferConfig{
			Compression:    "zstd",
			FlushThreshold: 64 << 10,
			MaxBytes:       8 << 20,
			Spool:          "-",
		},
		Output: OutputConfig{
			Color: "auto",
			Style: "monokai",
		},
	}
}

// Load loads the file named by TRACECODEC_CONFIG. It fails if the
// variable is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your tracecodec.yaml, or use --config", EnvVar)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path, merged over Default, and
// validates it. Unknown keys are errors.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration merged over Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} in path fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Buffer.Spool = expandVars(c.Buffer.Spool, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(Formats, c.Format.Input) {
		errs = append(errs, fmt.Errorf("format.input must be one of: %v", Formats))
	}
	if !slices.Contains(Formats, c.Format.Output) {
		errs = append(errs, fmt.Errorf("format.output must be one of: %v", Formats))
	}
	if !slices.Contains(Compressions, c.Buffer.Compression) {
		errs = append(errs, fmt.Errorf("buffer.compression must be one of: %v", Compressions))
	}
	if c.Buffer.FlushThreshold < 0 {
		errs = append(errs, fmt.Errorf("buffer.flush_threshold must not be negative"))
	}
	if c.Buffer.MaxBytes <= c.Buffer.FlushThreshold {
		errs = append(errs, fmt.Errorf("buffer.max_bytes (%d) must exceed buffer.flush_threshold (%d)",
			c.Buffer.MaxBytes, c.Buffer.FlushThreshold))
	}
	if c.Buffer.Spool == "" {
		errs = append(errs, fmt.Errorf("buffer.spool is required"))
	}
	if !slices.Contains(ColorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", ColorModes))
	}
	if c.Output.Style == "" {
		errs = append(errs, fmt.Errorf("output.style is required"))
	}

	return errors.Join(errs...)
}
