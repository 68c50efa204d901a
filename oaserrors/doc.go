// Package oaserrors provides structured error types for the oasmodels library.
//
// Import path: github.com/erraggy/oasmodels/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between a document that could not be read, a
// schema graph that points at something missing, and a bad option.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures and structural issues
//   - [ReferenceError]: $ref targets that cannot be found or are outside the document
//   - [ConfigError]: Invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrReferenceNotFound]: Matches [ReferenceError] whose target is missing from the component table
//   - [ErrExternalReference]: Matches [ReferenceError] pointing at another document
//   - [ErrCircularReference]: Matches [ReferenceError] whose $ref chain never reaches a schema
//   - [ErrConfig]: Matches any [ConfigError]
//
// Only reference errors abort a generation run. Schemas that cannot be mapped
// to a field kind and defaults that do not fit their field are reported as
// warnings instead; see the typegen package.
//
// # Usage
//
//	result, err := typegen.Generate(doc)
//	if errors.Is(err, oaserrors.ErrReferenceNotFound) {
//	    var refErr *oaserrors.ReferenceError
//	    errors.As(err, &refErr)
//	    fmt.Println("missing:", refErr.Ref)
//	}
package oaserrors
