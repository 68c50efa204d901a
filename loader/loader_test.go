package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petStoreSpec = `openapi: "3.0.3"
info:
  title: Pet Store
  version: "1.0.0"
paths:
  /pets:
    get:
      operationId: listPets
      responses:
        "200":
          description: pets
          content:
            application/json:
              schema:
                type: object
                properties:
                  items:
                    type: array
                    items:
                      $ref: "#/components/schemas/Pet"
        "404":
          description: missing
          content:
            text/plain:
              schema:
                type: string
            application/problem+json:
              schema:
                type: object
                properties:
                  detail:
                    type: string
  /pets/{petId}:
    get:
      responses:
        default:
          description: pet
          content:
            application/json:
              schema:
                $ref: "#/components/schemas/Pet"
components:
  schemas:
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
          minLength: 1
        age:
          type: integer
          minimum: 0
          exclusiveMinimum: true
        tag:
          type: [string, "null"]
        weight:
          type: number
          default: 1.5
        count:
          type: integer
          format: int64
          default: 10
        code:
          type: string
          default: "10"
    Color:
      type: string
      enum: [red, green, null]
      default: red
    Owner:
      type: object
      additionalProperties:
        type: string
    Loose:
      type: object
      additionalProperties: true
    Closed:
      type: object
      additionalProperties: false
`

func TestLoadOAS3Components(t *testing.T) {
	doc, err := LoadWithOptions(WithBytes([]byte(petStoreSpec)))
	require.NoError(t, err)

	assert.Equal(t, "3.0.3", doc.Version)
	assert.Equal(t, "Pet Store", doc.Title)
	assert.Equal(t, schema.OAS3Prefix, doc.Components.Prefix())
	assert.Equal(t, []string{"Pet", "Color", "Owner", "Loose", "Closed"}, doc.Components.Names())

	pet := doc.Components.Get("Pet")
	require.NotNil(t, pet)
	assert.Equal(t, schema.ShapeObject, pet.Shape())
	assert.Equal(t, "components.schemas.Pet", pet.Location.Path)
	assert.Positive(t, pet.Location.Line)

	var names []string
	for _, p := range pet.Properties {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"name", "age", "tag", "weight", "count", "code"}, names, "property order is preserved")
	assert.True(t, pet.IsRequired("name"))

	name := pet.Property("name")
	require.NotNil(t, name.MinLength)
	assert.Equal(t, 1, *name.MinLength)
	assert.Equal(t, "components.schemas.Pet.properties.name", name.Location.Path)

	age := pet.Property("age")
	require.NotNil(t, age.Minimum)
	assert.InDelta(t, 0.0, *age.Minimum, 0)
	assert.True(t, age.ExclusiveMinimum)

	tag := pet.Property("tag")
	assert.Equal(t, "string", tag.Type)
	assert.True(t, tag.Nullable)

	assert.Equal(t, 1.5, pet.Property("weight").Default)
	assert.Equal(t, int64(10), pet.Property("count").Default)
	assert.True(t, pet.Property("count").HasDefault)
	assert.Equal(t, "10", pet.Property("code").Default, "quoted scalars stay strings")

	color := doc.Components.Get("Color")
	assert.Equal(t, []any{"red", "green"}, color.Enum)
	assert.True(t, color.Nullable, "a null enum member makes the schema nullable")
	assert.Equal(t, "red", color.Default)

	owner := doc.Components.Get("Owner")
	require.NotNil(t, owner.AdditionalProperties)
	assert.True(t, owner.AdditionalProperties.Typed())
	assert.Equal(t, "string", owner.AdditionalProperties.Schema.Type)

	loose := doc.Components.Get("Loose")
	require.NotNil(t, loose.AdditionalProperties)
	assert.False(t, loose.AdditionalProperties.Typed())

	assert.Nil(t, doc.Components.Get("Closed").AdditionalProperties)
}

func TestLoadInlineResponses(t *testing.T) {
	doc, err := LoadWithOptions(WithBytes([]byte(petStoreSpec)))
	require.NoError(t, err)

	require.Len(t, doc.Inline, 2, "$ref bodies are not inline")
	assert.Equal(t, "listPets_Response", doc.Inline[0].NameHint)
	assert.Equal(t, "paths./pets.get.responses['200'].content.application/json.schema", doc.Inline[0].Schema.Location.Path)

	assert.Equal(t, "listPets_Response_404", doc.Inline[1].NameHint)
	assert.NotNil(t, doc.Inline[1].Schema.Property("detail"), "the JSON media type wins over text/plain")

	items := doc.Inline[0].Schema.Property("items")
	require.NotNil(t, items.Items)
	assert.Equal(t, "#/components/schemas/Pet", items.Items.Ref)

	doc, err = LoadWithOptions(WithBytes([]byte(petStoreSpec)), WithInlineResponses(false))
	require.NoError(t, err)
	assert.Empty(t, doc.Inline)
}

func TestResponseHint(t *testing.T) {
	assert.Equal(t, "getPet_Response", responseHint("getPet", "get", "/pets/{id}", "200"))
	assert.Equal(t, "getPet_Response_404", responseHint("getPet", "get", "/pets/{id}", "404"))
	assert.Equal(t, "get /pets/{id}_Response_default", responseHint("", "get", "/pets/{id}", "default"))
}

func TestLoadOAS31Keywords(t *testing.T) {
	spec := `openapi: 3.1.0
info: {title: T, version: "1"}
components:
  schemas:
    Range:
      type: object
      properties:
        low:
          type: integer
          exclusiveMinimum: 10
        high:
          type: number
          minimum: 1
          exclusiveMaximum: 99.5
        anything: true
`
	doc, err := LoadWithOptions(WithBytes([]byte(spec)))
	require.NoError(t, err)

	r := doc.Components.Get("Range")
	low := r.Property("low")
	require.NotNil(t, low.Minimum)
	assert.InDelta(t, 10.0, *low.Minimum, 0)
	assert.True(t, low.ExclusiveMinimum)

	high := r.Property("high")
	require.NotNil(t, high.Maximum)
	assert.InDelta(t, 99.5, *high.Maximum, 0)
	assert.True(t, high.ExclusiveMaximum)
	assert.InDelta(t, 1.0, *high.Minimum, 0)
	assert.False(t, high.ExclusiveMinimum)

	assert.Equal(t, schema.ShapeUntyped, r.Property("anything").Shape())
}

func TestLoadDocumentationKeywords(t *testing.T) {
	spec := `openapi: 3.0.3
info: {title: T, version: "1"}
components:
  schemas:
    Pet:
      type: object
      externalDocs:
        description: Pet guide
        url: https://example.com/pets
      example:
        name: Rex
        tags: [good]
      properties:
        name:
          type: string
          example: null
        age:
          type: integer
          externalDocs: {}
`
	doc, err := LoadWithOptions(WithBytes([]byte(spec)))
	require.NoError(t, err)

	pet := doc.Components.Get("Pet")
	require.NotNil(t, pet.ExternalDocs)
	assert.Equal(t, "Pet guide", pet.ExternalDocs.Description)
	assert.Equal(t, "https://example.com/pets", pet.ExternalDocs.URL)
	assert.True(t, pet.HasExample)
	assert.Equal(t, map[string]any{"name": "Rex", "tags": []any{"good"}}, pet.Example)

	name := pet.Property("name")
	assert.True(t, name.HasExample)
	assert.Nil(t, name.Example)

	age := pet.Property("age")
	assert.Nil(t, age.ExternalDocs)
	assert.False(t, age.HasExample)

	_, err = LoadWithOptions(WithBytes([]byte(`openapi: 3.0.3
components:
  schemas:
    Bad:
      externalDocs: https://example.com
`)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
}

func TestLoadAnchorsShareIdentity(t *testing.T) {
	spec := `openapi: 3.0.0
info: {title: T, version: "1"}
components:
  schemas:
    A:
      type: object
      properties:
        address: &address
          type: object
          properties:
            street: {type: string}
    B:
      type: object
      properties:
        address: *address
`
	doc, err := LoadWithOptions(WithBytes([]byte(spec)))
	require.NoError(t, err)

	a := doc.Components.Get("A").Property("address")
	b := doc.Components.Get("B").Property("address")
	assert.Same(t, a, b)
}

func TestLoadSwagger2(t *testing.T) {
	spec := `swagger: "2.0"
info: {title: Zoo, version: "1"}
paths:
  /animals:
    get:
      operationId: listAnimals
      responses:
        "200":
          description: ok
          schema:
            type: array
            items:
              type: object
              properties:
                id: {type: integer}
definitions:
  Animal:
    type: object
    discriminator: kind
    properties:
      kind: {type: string}
      nickname:
        type: string
        x-nullable: true
`
	doc, err := LoadWithOptions(WithBytes([]byte(spec)))
	require.NoError(t, err)

	assert.Equal(t, "2.0", doc.Version)
	assert.Equal(t, schema.OAS2Prefix, doc.Components.Prefix())

	animal := doc.Components.Get("Animal")
	require.NotNil(t, animal.Discriminator)
	assert.Equal(t, "kind", animal.Discriminator.PropertyName)
	assert.True(t, animal.Property("nickname").Nullable)

	require.Len(t, doc.Inline, 1)
	assert.Equal(t, "listAnimals_Response", doc.Inline[0].NameHint)
	assert.Equal(t, schema.ShapeArray, doc.Inline[0].Schema.Shape())
}

func TestLoadJSONSchemaDocument(t *testing.T) {
	spec := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Invoice",
  "type": "object",
  "properties": {
    "lines": {"type": "array", "items": {"$ref": "#/$defs/Line"}}
  },
  "$defs": {
    "Line": {"type": "object", "properties": {"sku": {"type": "string"}}}
  }
}`
	doc, err := LoadWithOptions(WithReader(strings.NewReader(spec)))
	require.NoError(t, err)

	assert.Equal(t, "#/$defs/", doc.Components.Prefix())
	assert.Equal(t, []string{"Line"}, doc.Components.Names())
	require.Len(t, doc.Inline, 1)
	assert.Equal(t, "Invoice", doc.Inline[0].NameHint)

	_, line, ok := doc.Components.Lookup("#/$defs/Line")
	require.True(t, ok)
	assert.NotNil(t, line.Property("sku"))
}

func TestLoadDiscriminatorMapping(t *testing.T) {
	spec := `openapi: 3.0.0
info: {title: T, version: "1"}
components:
  schemas:
    Pet:
      oneOf:
        - $ref: "#/components/schemas/Cat"
        - $ref: "#/components/schemas/Dog"
      discriminator:
        propertyName: petType
        mapping:
          cat: "#/components/schemas/Cat"
          dog: "#/components/schemas/Dog"
    Cat: {type: object}
    Dog: {type: object}
`
	doc, err := LoadWithOptions(WithBytes([]byte(spec)))
	require.NoError(t, err)

	pet := doc.Components.Get("Pet")
	assert.Equal(t, schema.ShapeComposition, pet.Shape())
	require.Len(t, pet.OneOf, 2)
	assert.Equal(t, "components.schemas.Pet.oneOf[1]", pet.OneOf[1].Location.Path)
	require.NotNil(t, pet.Discriminator)
	assert.Equal(t, "petType", pet.Discriminator.PropertyName)
	assert.Equal(t, []schema.DiscriminatorMapping{
		{Value: "cat", Ref: "#/components/schemas/Cat"},
		{Value: "dog", Ref: "#/components/schemas/Dog"},
	}, pet.Discriminator.Mapping)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty", input: "  \n", wantMsg: "document is empty"},
		{name: "invalid yaml", input: "openapi: [3.0", wantMsg: "invalid YAML or JSON"},
		{name: "scalar root", input: "hello", wantMsg: "document root must be a mapping"},
		{name: "old openapi", input: "openapi: 2.5\n", wantMsg: "unsupported OpenAPI version"},
		{name: "bad swagger", input: "swagger: \"1.2\"\n", wantMsg: "unsupported Swagger version"},
		{
			name: "properties not a mapping",
			input: `openapi: 3.0.0
components:
  schemas:
    Pet:
      properties: [a, b]
`,
			wantMsg: "components.schemas.Pet: properties must be a mapping",
		},
		{
			name: "minLength not an integer",
			input: `openapi: 3.0.0
components:
  schemas:
    Pet:
      type: string
      minLength: lots
`,
			wantMsg: "minLength must be an integer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithOptions(WithBytes([]byte(tt.input)))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrParse), "got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadErrorHasLocation(t *testing.T) {
	input := `openapi: 3.0.0
components:
  schemas:
    Pet:
      type: string
      maxLength: many
`
	_, err := LoadWithOptions(WithBytes([]byte(input)), WithSourceName("pet.yaml"))
	require.Error(t, err)

	var parseErr *oaserrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "pet.yaml", parseErr.Path)
	assert.Equal(t, 6, parseErr.Line)
}

func TestLoadOptions(t *testing.T) {
	t.Run("no input", func(t *testing.T) {
		_, err := LoadWithOptions()
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	})

	t.Run("two inputs", func(t *testing.T) {
		_, err := LoadWithOptions(WithBytes([]byte("a: b")), WithReader(strings.NewReader("a: b")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one input source")
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := LoadWithOptions(WithReader(nil))
		assert.Error(t, err)
	})

	t.Run("non-positive max size", func(t *testing.T) {
		_, err := LoadWithOptions(WithBytes([]byte("a: b")), WithMaxFileSize(0))
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petStoreSpec), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.SourcePath)
	assert.Equal(t, 5, doc.Components.Len())

	_, err = LoadWithOptions(WithFilePath(path), WithMaxFileSize(16))
	require.Error(t, err)
	var parseErr *oaserrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
	assert.Contains(t, err.Error(), "exceeds maximum size")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
