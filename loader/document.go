package loader

import (
	"strings"

	"github.com/erraggy/oasmodels/schema"
	"go.yaml.in/yaml/v4"
)

// httpMethods are the path item keys that hold operations.
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

// jsonSchemaKeywords mark a root mapping that is itself a schema.
var jsonSchemaKeywords = []string{"type", "properties", "allOf", "anyOf", "oneOf", "enum", "items"}

// document builds the schema document from the root mapping.
func (b *builder) document(root *yaml.Node, inlineResponses bool) (*schema.Document, error) {
	doc := &schema.Document{
		SourcePath: b.file,
		Title:      scalarString(mapValue(mapValue(root, "info"), "title")),
	}

	var (
		table     *yaml.Node
		tablePath string
		isOpenAPI = true
		isOAS2    bool
	)
	switch {
	case mapValue(root, "openapi") != nil:
		doc.Version = scalarString(mapValue(root, "openapi"))
		if !strings.HasPrefix(doc.Version, "3.") {
			return nil, b.errorf(mapValue(root, "openapi"), "openapi", "unsupported OpenAPI version %q", doc.Version)
		}
		doc.Components = schema.NewComponents(schema.OAS3Prefix)
		table, tablePath = mapValue(mapValue(root, "components"), "schemas"), "components.schemas"
	case mapValue(root, "swagger") != nil:
		doc.Version = scalarString(mapValue(root, "swagger"))
		if doc.Version != "2.0" {
			return nil, b.errorf(mapValue(root, "swagger"), "swagger", "unsupported Swagger version %q", doc.Version)
		}
		isOAS2 = true
		doc.Components = schema.NewComponents(schema.OAS2Prefix)
		table, tablePath = mapValue(root, "definitions"), "definitions"
	default:
		isOpenAPI = false
		doc.Version = scalarString(mapValue(root, "$schema"))
		if defs := mapValue(root, "$defs"); defs != nil {
			doc.Components = schema.NewComponents("#/$defs/")
			table, tablePath = defs, "$defs"
		} else {
			doc.Components = schema.NewComponents(schema.OAS2Prefix)
			table, tablePath = mapValue(root, "definitions"), "definitions"
		}
	}

	err := pairs(table, func(name string, val *yaml.Node) error {
		s, err := b.schema(val, buildChildPath(tablePath, name))
		if err != nil {
			return err
		}
		doc.Components.Add(name, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !isOpenAPI {
		if isRootSchema(root) {
			s, err := b.schema(root, "")
			if err != nil {
				return nil, err
			}
			hint := s.Title
			if hint == "" {
				hint = "Root"
			}
			doc.Inline = append(doc.Inline, schema.InlineSchema{NameHint: hint, Schema: s})
		}
		return doc, nil
	}

	if inlineResponses {
		doc.Inline, err = b.responses(root, isOAS2)
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func isRootSchema(root *yaml.Node) bool {
	for _, k := range jsonSchemaKeywords {
		if mapValue(root, k) != nil {
			return true
		}
	}
	return false
}

// responses collects the inline response-body schemas of every operation,
// in document order.
func (b *builder) responses(root *yaml.Node, isOAS2 bool) ([]schema.InlineSchema, error) {
	var out []schema.InlineSchema

	err := pairs(mapValue(root, "paths"), func(path string, item *yaml.Node) error {
		itemPath := buildChildPath("paths", path)
		return pairs(item, func(method string, op *yaml.Node) error {
			if !httpMethods[method] {
				return nil
			}
			opPath := buildChildPath(itemPath, method)
			opID := scalarString(mapValue(op, "operationId"))

			return pairs(mapValue(op, "responses"), func(status string, resp *yaml.Node) error {
				if mapValue(resp, "$ref") != nil {
					return nil
				}
				respPath := buildChildPath(buildChildPath(opPath, "responses"), status)
				node, nodePath := responseSchema(resp, respPath, isOAS2)
				if node == nil || mapValue(node, "$ref") != nil {
					return nil
				}

				s, err := b.schema(node, nodePath)
				if err != nil {
					return err
				}
				out = append(out, schema.InlineSchema{
					NameHint: responseHint(opID, method, path, status),
					Schema:   s,
				})
				return nil
			})
		})
	})
	return out, err
}

// responseSchema picks the body schema of a response. For 3.x the first JSON
// media type wins, falling back to the first media type.
func responseSchema(resp *yaml.Node, path string, isOAS2 bool) (*yaml.Node, string) {
	if isOAS2 {
		return mapValue(resp, "schema"), buildChildPath(path, "schema")
	}

	content := mapValue(resp, "content")
	var (
		chosen     *yaml.Node
		chosenPath string
	)
	_ = pairs(content, func(mediaType string, media *yaml.Node) error {
		s := mapValue(media, "schema")
		if s == nil {
			return nil
		}
		isJSON := strings.Contains(mediaType, "json")
		if chosen == nil || isJSON {
			chosen = s
			chosenPath = buildChildPath(buildChildPath(buildChildPath(path, "content"), mediaType), "schema")
		}
		if isJSON {
			return errStop
		}
		return nil
	})
	return chosen, chosenPath
}

// responseHint names an inline response body. The status code is appended
// for everything but 200.
func responseHint(opID, method, path, status string) string {
	base := opID
	if base == "" {
		base = method + " " + path
	}
	hint := base + "_Response"
	if status != "200" {
		hint += "_" + status
	}
	return hint
}
