package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	tests := []struct {
		name   string
		schema *Schema
		want   Shape
	}{
		{name: "empty", schema: &Schema{}, want: ShapeUntyped},
		{name: "ref beats type", schema: &Schema{Ref: "#/components/schemas/Pet", Type: "object"}, want: ShapeReference},
		{name: "enum beats string", schema: &Schema{Type: "string", Enum: []any{"a"}}, want: ShapeEnum},
		{name: "allOf", schema: &Schema{AllOf: []*Schema{{}}}, want: ShapeComposition},
		{name: "oneOf with object type", schema: &Schema{Type: "object", OneOf: []*Schema{{}}}, want: ShapeComposition},
		{name: "array", schema: &Schema{Type: "array", Items: &Schema{Type: "string"}}, want: ShapeArray},
		{name: "object", schema: &Schema{Type: "object"}, want: ShapeObject},
		{name: "properties without type", schema: &Schema{Properties: []Property{{Name: "a", Schema: &Schema{}}}}, want: ShapeObject},
		{name: "additionalProperties without type", schema: &Schema{AdditionalProperties: &AdditionalProperties{}}, want: ShapeObject},
		{name: "primitive", schema: &Schema{Type: "integer", Format: "int64"}, want: ShapePrimitive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.schema.Shape())
		})
	}
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "reference", ShapeReference.String())
	assert.Equal(t, "primitive", ShapePrimitive.String())
	assert.Equal(t, "untyped", Shape(99).String())
}

func TestIsOpenObject(t *testing.T) {
	assert.True(t, (&Schema{Type: "object"}).IsOpenObject())
	assert.True(t, (&Schema{}).IsOpenObject())
	assert.False(t, (&Schema{Type: "string"}).IsOpenObject())
	assert.False(t, (&Schema{Type: "object", AdditionalProperties: &AdditionalProperties{}}).IsOpenObject())
	assert.False(t, (&Schema{Type: "object", Properties: []Property{{Name: "a", Schema: &Schema{}}}}).IsOpenObject())
	assert.False(t, (&Schema{AllOf: []*Schema{{}}}).IsOpenObject())
	assert.False(t, (&Schema{Ref: "#/definitions/X"}).IsOpenObject())
}

func TestPropertyAndRequired(t *testing.T) {
	name := &Schema{Type: "string"}
	s := &Schema{
		Type:       "object",
		Properties: []Property{{Name: "name", Schema: name}},
		Required:   []string{"name"},
	}

	assert.Same(t, name, s.Property("name"))
	assert.Nil(t, s.Property("missing"))
	assert.True(t, s.IsRequired("name"))
	assert.False(t, s.IsRequired("missing"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Pet Title", (&Schema{Title: "Pet Title", Location: Location{Path: "components.schemas.Pet"}}).DisplayName())
	assert.Equal(t, "Pet", (&Schema{Location: Location{Path: "components.schemas.Pet"}}).DisplayName())
	assert.Equal(t, "", (&Schema{}).DisplayName())
}

func TestAdditionalPropertiesTyped(t *testing.T) {
	var absent *AdditionalProperties
	assert.False(t, absent.Typed())
	assert.False(t, (&AdditionalProperties{}).Typed())
	assert.True(t, (&AdditionalProperties{Schema: &Schema{Type: "string"}}).Typed())
}

func TestComponents(t *testing.T) {
	pet := &Schema{Type: "object"}
	owner := &Schema{Type: "object"}
	slashed := &Schema{Type: "string"}

	c := NewComponents(OAS3Prefix)
	c.Add("Pet", pet)
	c.Add("Owner", owner)
	c.Add("a/b", slashed)

	assert.Equal(t, []string{"Pet", "Owner", "a/b"}, c.Names())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, OAS3Prefix, c.Prefix())

	name, s, ok := c.Lookup("#/components/schemas/Owner")
	require.True(t, ok)
	assert.Equal(t, "Owner", name)
	assert.Same(t, owner, s)

	name, s, ok = c.Lookup("#/components/schemas/a~1b")
	require.True(t, ok)
	assert.Equal(t, "a/b", name)
	assert.Same(t, slashed, s)

	_, _, ok = c.Lookup("#/components/schemas/Missing")
	assert.False(t, ok)

	_, _, ok = c.Lookup("#/definitions/Pet")
	assert.False(t, ok, "a 2.0 prefix does not resolve in a 3.x table")

	_, ok = c.RefName("#/components/schemas/Pet/properties/name")
	assert.False(t, ok)
}

func TestComponentsAddTwiceKeepsPosition(t *testing.T) {
	first := &Schema{}
	second := &Schema{}

	c := NewComponents(OAS2Prefix)
	c.Add("A", first)
	c.Add("B", &Schema{})
	c.Add("A", second)

	assert.Equal(t, []string{"A", "B"}, c.Names())
	assert.Same(t, second, c.Get("A"))
}

func TestIsExternal(t *testing.T) {
	assert.False(t, IsExternal("#/components/schemas/Pet"))
	assert.True(t, IsExternal("common.yaml#/Pet"))
	assert.True(t, IsExternal("https://example.com/schemas/pet.json"))
}
