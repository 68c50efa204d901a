// Package severity provides the severity levels attached to issues reported
// while resolving schemas into declarations.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error
package severity

import "fmt"

// Severity indicates how serious a reported issue is.
type Severity int

const (
	// SeverityInfo reports a processing choice, such as a collection default
	// that was ignored.
	SeverityInfo Severity = iota

	// SeverityWarning reports a schema shape that was skipped or a default that
	// was dropped. Generation continues.
	SeverityWarning

	// SeverityError reports a problem that fails the run. Warnings are promoted
	// to errors in strict mode.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name so manifests stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name produced by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}
