package emitter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/oaserrors"
)

// Format selects the printer used by Render.
type Format string

const (
	// FormatGo prints Go source.
	FormatGo Format = "go"
	// FormatJSON prints the declaration manifest as JSON.
	FormatJSON Format = "json"
	// FormatYAML prints the declaration manifest as YAML.
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatGo, FormatJSON, FormatYAML}

// ParseFormat returns the Format named by s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", &oaserrors.ConfigError{
		Option:  "format",
		Value:   s,
		Message: "must be one of go, json, yaml",
	}
}

// FileName returns the default output file name for the format.
func (f Format) FileName() string {
	switch f {
	case FormatJSON:
		return "models.json"
	case FormatYAML:
		return "models.yaml"
	default:
		return "models.go"
	}
}

// GeneratedFile is one rendered output.
type GeneratedFile struct {
	// Name is the file name, without directories.
	Name string
	// Content is the rendered output.
	Content []byte
}

type config struct {
	validateTags bool
	fileName     string
}

// Option configures a printer.
type Option func(*config) error

// WithValidateTags controls whether struct fields carry validate tags.
// Enabled by default.
func WithValidateTags(enabled bool) Option {
	return func(cfg *config) error {
		cfg.validateTags = enabled
		return nil
	}
}

// WithFileName overrides the output file name chosen by Render.
func WithFileName(name string) Option {
	return func(cfg *config) error {
		if name == "" || filepath.Base(name) != name {
			return &oaserrors.ConfigError{
				Option:  "WithFileName",
				Value:   name,
				Message: "must be a bare file name",
			}
		}
		cfg.fileName = name
		return nil
	}
}

func applyOptions(opts []Option) (*config, error) {
	cfg := &config{validateTags: true}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Render prints decls in the given format and names the result.
func Render(decls model.Set, pkg string, format Format, opts ...Option) (*GeneratedFile, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	var content []byte
	switch format {
	case FormatGo:
		content, err = GoSource(decls, pkg, opts...)
	case FormatJSON:
		content, err = JSONManifest(decls, pkg)
	case FormatYAML:
		content, err = YAMLManifest(decls, pkg)
	default:
		return nil, fmt.Errorf("emitter: unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}

	name := cfg.fileName
	if name == "" {
		name = format.FileName()
	}
	return &GeneratedFile{Name: name, Content: content}, nil
}
