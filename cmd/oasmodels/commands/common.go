// Package commands provides CLI command handlers for oasmodels.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oasmodels"
	"github.com/erraggy/oasmodels/internal/config"
	"github.com/erraggy/oasmodels/loader"
	"github.com/erraggy/oasmodels/schema"
	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// Output format constants for report-style commands.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data in the specified format (json or yaml) to w.
func OutputStructured(w io.Writer, data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(w, "%s\n", bytes)
	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// NewLogger returns a text logger on w. Verbose lowers the level to debug.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// LoadDocument reads specPath, or stdin when it is StdinFilePath.
func LoadDocument(specPath string, stdin io.Reader, inlineResponses bool) (*schema.Document, error) {
	opts := []loader.Option{loader.WithInlineResponses(inlineResponses)}
	if specPath == StdinFilePath {
		opts = append(opts, loader.WithReader(stdin), loader.WithSourceName("<stdin>"))
	} else {
		opts = append(opts, loader.WithFilePath(specPath))
	}

	doc, err := loader.LoadWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", FormatSpecPath(specPath), err)
	}
	return doc, nil
}

// LoadProjectConfig reads the project file. An explicit path must exist;
// otherwise oasmodels.yaml next to the document is used when present.
func LoadProjectConfig(explicit, specPath string) (*config.Config, error) {
	if explicit != "" {
		return config.Load(explicit)
	}
	dir := "."
	if specPath != StdinFilePath {
		dir = filepath.Dir(specPath)
	}
	return config.LoadOptional(filepath.Join(dir, config.FileName))
}

// OutputHeader writes the common report header.
func OutputHeader(w io.Writer, title, specPath string, doc *schema.Document) {
	Writef(w, "%s\n", title)
	Writef(w, "%s\n\n", strings.Repeat("=", len(title)))
	Writef(w, "oasmodels version: %s\n", oasmodels.Version())
	Writef(w, "Specification: %s\n", FormatSpecPath(specPath))
	if doc.Version != "" {
		Writef(w, "Document Version: %s\n", doc.Version)
	} else {
		Writef(w, "Document Version: JSON Schema\n")
	}
	if doc.Title != "" {
		Writef(w, "Title: %s\n", doc.Title)
	}
}
