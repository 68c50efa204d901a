// Package issues provides the issue type reported when a schema cannot be
// turned into a declaration exactly as written.
package issues

import (
	"fmt"

	"github.com/erraggy/oasmodels/internal/severity"
)

// Code classifies an issue.
type Code string

const (
	// CodeUnsupportedShape marks a property or branch that matched no field kind
	// and was skipped.
	CodeUnsupportedShape Code = "unsupported-shape"
	// CodeDefaultMismatch marks a default whose value does not fit the field kind.
	CodeDefaultMismatch Code = "default-mismatch"
	// CodeCollectionDefault marks a default declared on an array or map field.
	CodeCollectionDefault Code = "collection-default"
	// CodeDefaultUnparsable marks a structured-string default that will fail to parse.
	CodeDefaultUnparsable Code = "default-unparsable"
	// CodeSkippedBranch marks a oneOf branch that cannot implement the interface.
	CodeSkippedBranch Code = "skipped-branch"
	// CodeDuplicateConstant marks enum values that normalize to the same identifier.
	CodeDuplicateConstant Code = "duplicate-constant"
)

// Issue represents a single problem found while resolving a schema.
type Issue struct {
	// Code classifies the issue.
	Code Code `json:"code" yaml:"code"`
	// Path is the JSON path to the schema (e.g., "components.schemas.Pet.properties.age")
	Path string `json:"path" yaml:"path"`
	// Title is the schema title or component name, when known
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// Message is a human-readable description of the issue
	Message string `json:"message" yaml:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Value is the problematic value (optional)
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// Column is the 1-based column number in the source file (0 if unknown)
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
	// File is the source file path (empty for inline content)
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	subject := i.Path
	if i.Title != "" {
		subject = fmt.Sprintf("%s (%s)", i.Path, i.Title)
	}

	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d, col %d): %s", symbol, subject, i.Line, i.Column, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, subject, i.Message)
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line:column" if file is set, "line:column" if only line is set,
// or the JSON path if location is unknown.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Path
	}
	if i.File != "" {
		return fmt.Sprintf("%s:%d:%d", i.File, i.Line, i.Column)
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Count returns how many issues have exactly the given severity.
func Count(list []Issue, s severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity == s {
			n++
		}
	}
	return n
}
