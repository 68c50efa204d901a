package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oasmodels/internal/options"
	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/schema"
	"go.yaml.in/yaml/v4"
)

// DefaultMaxFileSize is the largest document LoadWithOptions reads (10 MiB).
const DefaultMaxFileSize int64 = 10 << 20

// Option is a function that configures a load operation
type Option func(*loadConfig) error

// loadConfig holds configuration for a load operation
type loadConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	inlineResponses bool
	maxFileSize     int64
	sourceName      *string
}

// LoadWithOptions loads a document using functional options.
//
// Example:
//
//	doc, err := loader.LoadWithOptions(
//	    loader.WithFilePath("openapi.yaml"),
//	    loader.WithInlineResponses(false),
//	)
func LoadWithOptions(opts ...Option) (*schema.Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loader: invalid options: %w", err)
	}

	var data []byte
	source := ""
	switch {
	case cfg.filePath != nil:
		source = *cfg.filePath
		data, err = readFile(source, cfg.maxFileSize)
	case cfg.reader != nil:
		data, err = readAll(cfg.reader, cfg.maxFileSize)
	default:
		data = cfg.bytes
	}
	if err != nil {
		return nil, err
	}
	if cfg.sourceName != nil {
		source = *cfg.sourceName
	}

	return decode(data, source, cfg.inlineResponses)
}

// Load is a convenience wrapper around LoadWithOptions for a file path.
func Load(path string) (*schema.Document, error) {
	return LoadWithOptions(WithFilePath(path))
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{
		inlineResponses: true,
		maxFileSize:     DefaultMaxFileSize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource("loader", map[string]bool{
		"WithFilePath": cfg.filePath != nil,
		"WithReader":   cfg.reader != nil,
		"WithBytes":    cfg.bytes != nil,
	}); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a local file as the input source
func WithFilePath(path string) Option {
	return func(cfg *loadConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *loadConfig) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *loadConfig) error {
		if data == nil {
			return &oaserrors.ConfigError{Option: "WithBytes", Message: "bytes cannot be nil"}
		}
		cfg.bytes = data
		return nil
	}
}

// WithInlineResponses enables or disables collecting inline response-body schemas
// Default: true
func WithInlineResponses(enabled bool) Option {
	return func(cfg *loadConfig) error {
		cfg.inlineResponses = enabled
		return nil
	}
}

// WithMaxFileSize sets the largest input accepted, in bytes
// Default: DefaultMaxFileSize
func WithMaxFileSize(n int64) Option {
	return func(cfg *loadConfig) error {
		if n <= 0 {
			return &oaserrors.ConfigError{Option: "WithMaxFileSize", Value: n, Message: "must be positive"}
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithSourceName overrides the SourcePath recorded in the document and its issues
func WithSourceName(name string) Option {
	return func(cfg *loadConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is provided by the caller
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	data, err := readAll(f, limit)
	var parseErr *oaserrors.ParseError
	if errors.As(err, &parseErr) {
		parseErr.Path = path
	}
	return data, err
}

func readAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &oaserrors.ParseError{Message: "failed to read input", Cause: err}
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ParseError{Message: fmt.Sprintf("input exceeds maximum size of %d bytes", limit)}
	}
	return data, nil
}

// decode parses data and builds the document.
func decode(data []byte, source string, inlineResponses bool) (*schema.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Path: source, Message: "document is empty"}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "invalid YAML or JSON", Cause: err}
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Line:    doc.Line,
			Column:  doc.Column,
			Message: "document root must be a mapping",
		}
	}

	b := newBuilder(source)
	return b.document(doc, inlineResponses)
}
