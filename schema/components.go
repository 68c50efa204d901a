package schema

import "strings"

const (
	// OAS3Prefix is the $ref prefix of OpenAPI 3.x component schemas.
	OAS3Prefix = "#/components/schemas/"
	// OAS2Prefix is the $ref prefix of Swagger 2.0 definitions.
	OAS2Prefix = "#/definitions/"
)

// Components is the read-only table of named schemas a document declares.
type Components struct {
	prefix string
	names  []string
	byName map[string]*Schema
}

// NewComponents returns an empty table whose local references start with prefix.
func NewComponents(prefix string) *Components {
	return &Components{
		prefix: prefix,
		byName: make(map[string]*Schema),
	}
}

// Add registers a named schema. Adding a name twice keeps the first
// declaration position and replaces the schema.
func (c *Components) Add(name string, s *Schema) {
	if _, ok := c.byName[name]; !ok {
		c.names = append(c.names, name)
	}
	c.byName[name] = s
}

// Prefix returns the $ref prefix of this table.
func (c *Components) Prefix() string {
	return c.prefix
}

// Names returns the component names in declaration order.
func (c *Components) Names() []string {
	return append([]string(nil), c.names...)
}

// Get returns the named schema, or nil.
func (c *Components) Get(name string) *Schema {
	return c.byName[name]
}

// Len returns the number of components.
func (c *Components) Len() int {
	return len(c.names)
}

// RefName extracts the component name from a local reference such as
// "#/components/schemas/Pet". JSON pointer escapes (~0, ~1) are decoded.
// ok is false when ref does not start with the table's prefix.
func (c *Components) RefName(ref string) (name string, ok bool) {
	rest, found := strings.CutPrefix(ref, c.prefix)
	if !found || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(rest), true
}

// Lookup dereferences a local reference.
func (c *Components) Lookup(ref string) (name string, s *Schema, ok bool) {
	name, ok = c.RefName(ref)
	if !ok {
		return "", nil, false
	}
	s, ok = c.byName[name]
	return name, s, ok
}

// IsExternal reports whether ref points outside the current document.
func IsExternal(ref string) bool {
	return !strings.HasPrefix(ref, "#")
}
