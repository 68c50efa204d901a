package schema

// InlineSchema is an anonymous schema that should still become a declaration,
// such as an inline response body.
type InlineSchema struct {
	// NameHint is the name the resolver starts from.
	NameHint string
	Schema   *Schema
}

// Document is a loaded schema document.
type Document struct {
	// Version is the "openapi" or "swagger" field value.
	Version string
	// Title is info.title, when present.
	Title string
	// SourcePath is the file the document was read from (empty for readers).
	SourcePath string
	// Components holds the named schemas.
	Components *Components
	// Inline holds inline response-body schemas in path order.
	Inline []InlineSchema
}
