package schema

import "slices"

// Shape is the structural kind of a schema node.
type Shape int

const (
	// ShapeUntyped is a node with no type and nothing else to go on.
	ShapeUntyped Shape = iota
	// ShapeReference is a node carrying "$ref". It beats every other marker.
	ShapeReference
	// ShapeEnum is a node carrying "enum".
	ShapeEnum
	// ShapeComposition is a node carrying allOf, anyOf or oneOf.
	ShapeComposition
	// ShapeArray is a node of type "array".
	ShapeArray
	// ShapeObject is a node of type "object" or one that declares properties.
	ShapeObject
	// ShapePrimitive is a node of type boolean, integer, number or string.
	ShapePrimitive
)

// String returns the lowercase name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeReference:
		return "reference"
	case ShapeEnum:
		return "enum"
	case ShapeComposition:
		return "composition"
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	case ShapePrimitive:
		return "primitive"
	default:
		return "untyped"
	}
}

// Location records where a node was declared.
type Location struct {
	// Path is the JSON path of the node (e.g., "components.schemas.Pet.properties.name")
	Path string
	// Line is the 1-based line number (0 if unknown)
	Line int
	// Column is the 1-based column number (0 if unknown)
	Column int
}

// Property is one named entry of an object's properties, in declaration order.
type Property struct {
	Name   string
	Schema *Schema
}

// AdditionalProperties describes an object's "additionalProperties" keyword.
// A nil *AdditionalProperties means the keyword was absent or false.
type AdditionalProperties struct {
	// Schema is the value schema. Nil means any value is allowed.
	Schema *Schema
}

// Typed reports whether the map values are constrained by a schema.
func (a *AdditionalProperties) Typed() bool {
	return a != nil && a.Schema != nil
}

// Discriminator is the OpenAPI discriminator object.
type Discriminator struct {
	PropertyName string
	// Mapping holds the explicit value to $ref mappings, in declaration order.
	Mapping []DiscriminatorMapping
}

// DiscriminatorMapping is one value to $ref entry of a discriminator mapping.
type DiscriminatorMapping struct {
	Value string
	Ref   string
}

// ExternalDocs is the externalDocs object of a schema.
type ExternalDocs struct {
	Description string
	URL         string
}

// Schema is one node of the schema graph. Nodes are immutable once loaded.
type Schema struct {
	Ref          string
	Title        string
	Description  string
	ExternalDocs *ExternalDocs

	// Example is the decoded "example" value; HasExample tells an explicit
	// null apart from an absent keyword.
	Example    any
	HasExample bool

	// Type is the primary type. A 3.1 type list such as ["string", "null"] is
	// reduced to its non-null member and sets Nullable.
	Type     string
	Format   string
	Nullable bool

	Default    any
	HasDefault bool
	Enum       []any

	Properties           []Property
	Required             []string
	AdditionalProperties *AdditionalProperties
	MinProperties        *int
	MaxProperties        *int

	Items       *Schema
	UniqueItems bool
	MinItems    *int
	MaxItems    *int

	AllOf         []*Schema
	AnyOf         []*Schema
	OneOf         []*Schema
	Discriminator *Discriminator

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	MultipleOf       *float64

	MinLength *int
	MaxLength *int
	Pattern   string

	Location Location
}

// Shape classifies the node. "$ref" beats "enum", which beats composition,
// which beats the declared type.
func (s *Schema) Shape() Shape {
	switch {
	case s.Ref != "":
		return ShapeReference
	case len(s.Enum) > 0:
		return ShapeEnum
	case s.HasComposition():
		return ShapeComposition
	case s.Type == "array":
		return ShapeArray
	case s.Type == "object", len(s.Properties) > 0, s.AdditionalProperties != nil:
		return ShapeObject
	case s.Type != "":
		return ShapePrimitive
	default:
		return ShapeUntyped
	}
}

// HasComposition reports whether the node carries allOf, anyOf or oneOf.
func (s *Schema) HasComposition() bool {
	return len(s.AllOf) > 0 || len(s.AnyOf) > 0 || len(s.OneOf) > 0
}

// IsOpenObject reports whether the node is an object with nothing declared
// about its contents. Such nodes map to an untyped value, not a declaration.
func (s *Schema) IsOpenObject() bool {
	return s.Ref == "" &&
		(s.Type == "object" || s.Type == "") &&
		len(s.Properties) == 0 &&
		s.AdditionalProperties == nil &&
		len(s.Enum) == 0 &&
		!s.HasComposition()
}

// IsRequired reports whether name is listed in the node's required set.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// DisplayName returns the title when present, otherwise the last path segment.
func (s *Schema) DisplayName() string {
	if s.Title != "" {
		return s.Title
	}
	return lastSegment(s.Location.Path)
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}
