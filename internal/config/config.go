// Package config handles the oasmodels.yaml project file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/oasmodels/emitter"
	"github.com/erraggy/oasmodels/internal/fileutil"
	"github.com/erraggy/oasmodels/oaserrors"
	"go.yaml.in/yaml/v4"
)

// FileName is the project file looked up when no path is given.
const FileName = "oasmodels.yaml"

// Config is the oasmodels.yaml project file. Unset booleans keep their
// defaults, so they are pointers.
type Config struct {
	PackageName     string `yaml:"packageName,omitempty"`
	OutputPath      string `yaml:"outputPath,omitempty"`
	Validation      *bool  `yaml:"validation,omitempty"`
	InlineResponses *bool  `yaml:"inlineResponses,omitempty"`
	Format          string `yaml:"format,omitempty"`
	SingularItems   *bool  `yaml:"singularItems,omitempty"`
}

// Default returns the configuration used when no project file exists.
func Default() *Config {
	enabled := true
	inline := true
	return &Config{
		PackageName:     "models",
		OutputPath:      ".",
		Validation:      &enabled,
		InlineResponses: &inline,
		Format:          string(emitter.FormatGo),
	}
}

// Load reads a Config from path, layered over Default.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional reads path when it exists. A missing file yields Default.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Decode reads a Config from r, layered over Default, and validates it.
func Decode(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &oaserrors.ConfigError{Option: "file", Message: "invalid YAML", Cause: err}
	}
	cfg := Default().Merge(&file)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge returns a copy of c with every value set in other applied on top.
func (c *Config) Merge(other *Config) *Config {
	out := *c
	if other == nil {
		return &out
	}
	if other.PackageName != "" {
		out.PackageName = other.PackageName
	}
	if other.OutputPath != "" {
		out.OutputPath = other.OutputPath
	}
	if other.Validation != nil {
		out.Validation = other.Validation
	}
	if other.InlineResponses != nil {
		out.InlineResponses = other.InlineResponses
	}
	if other.Format != "" {
		out.Format = other.Format
	}
	if other.SingularItems != nil {
		out.SingularItems = other.SingularItems
	}
	return &out
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.PackageName == "" {
		return &oaserrors.ConfigError{Option: "packageName", Message: "must not be empty"}
	}
	if _, err := emitter.ParseFormat(c.Format); err != nil {
		return &oaserrors.ConfigError{Option: "format", Value: c.Format, Message: "must be one of go, json, yaml"}
	}
	return nil
}

// ValidationEnabled reports the validation flag, defaulting to true.
func (c *Config) ValidationEnabled() bool {
	return c.Validation == nil || *c.Validation
}

// InlineResponsesEnabled reports the inline responses flag, defaulting to true.
func (c *Config) InlineResponsesEnabled() bool {
	return c.InlineResponses == nil || *c.InlineResponses
}

// SingularItemsEnabled reports the singular items flag, defaulting to false.
func (c *Config) SingularItemsEnabled() bool {
	return c.SingularItems != nil && *c.SingularItems
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() emitter.Format {
	f, err := emitter.ParseFormat(c.Format)
	if err != nil {
		return emitter.FormatGo
	}
	return f
}

// Save writes the Config to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), fileutil.DirReadableByAll); err != nil {
		return err
	}
	return os.WriteFile(path, data, fileutil.ReadableByAll)
}
