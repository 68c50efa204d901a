package loader

import (
	"fmt"

	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/schema"
	"go.yaml.in/yaml/v4"
)

// builder turns yaml nodes into schema nodes, one per mapping node.
type builder struct {
	file  string
	nodes map[*yaml.Node]*schema.Schema
}

func newBuilder(file string) *builder {
	return &builder{
		file:  file,
		nodes: make(map[*yaml.Node]*schema.Schema),
	}
}

func (b *builder) errorf(n *yaml.Node, path, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if path != "" {
		msg = path + ": " + msg
	}
	return &oaserrors.ParseError{Path: b.file, Line: n.Line, Column: n.Column, Message: msg}
}

// schema builds the schema for n. A node already seen returns the same *Schema.
func (b *builder) schema(n *yaml.Node, path string) (*schema.Schema, error) {
	n = resolveAlias(n)
	if s, ok := b.nodes[n]; ok {
		return s, nil
	}

	s := &schema.Schema{Location: schema.Location{Path: path, Line: n.Line, Column: n.Column}}
	switch {
	case n.Kind == yaml.MappingNode:
	case n.Kind == yaml.ScalarNode && n.ShortTag() == "!!bool":
		// Boolean schemas (3.1) accept anything.
		b.nodes[n] = s
		return s, nil
	default:
		return nil, b.errorf(n, path, "schema must be a mapping")
	}

	// Registered before the keywords are read so self-referencing anchors
	// resolve to the node being built.
	b.nodes[n] = s

	var exclMin, exclMax *float64
	err := pairs(n, func(key string, val *yaml.Node) error {
		switch key {
		case "exclusiveMinimum", "exclusiveMaximum":
			if val.ShortTag() == "!!bool" {
				v, err := b.boolean(val, path, key)
				if key == "exclusiveMinimum" {
					s.ExclusiveMinimum = v
				} else {
					s.ExclusiveMaximum = v
				}
				return err
			}
			f, err := b.number(val, path, key)
			if key == "exclusiveMinimum" {
				exclMin = f
			} else {
				exclMax = f
			}
			return err
		default:
			return b.keyword(s, key, val, path)
		}
	})
	if err != nil {
		return nil, err
	}

	// 3.1 numeric exclusive bounds replace the inclusive bound they tighten.
	if exclMin != nil && (s.Minimum == nil || *exclMin >= *s.Minimum) {
		s.Minimum, s.ExclusiveMinimum = exclMin, true
	}
	if exclMax != nil && (s.Maximum == nil || *exclMax <= *s.Maximum) {
		s.Maximum, s.ExclusiveMaximum = exclMax, true
	}
	return s, nil
}

// keyword applies one schema keyword to s. Unknown keywords are ignored.
func (b *builder) keyword(s *schema.Schema, key string, val *yaml.Node, path string) error {
	var err error
	switch key {
	case "$ref":
		s.Ref, err = b.str(val, path, key)
	case "title":
		s.Title, err = b.str(val, path, key)
	case "description":
		s.Description, err = b.str(val, path, key)
	case "externalDocs":
		s.ExternalDocs, err = b.externalDocs(val, path)
	case "example":
		s.HasExample = true
		s.Example, err = value(val)
	case "format":
		s.Format, err = b.str(val, path, key)
	case "pattern":
		s.Pattern, err = b.str(val, path, key)
	case "type":
		err = b.typeKeyword(s, val, path)
	case "nullable", "x-nullable":
		var v bool
		v, err = b.boolean(val, path, key)
		s.Nullable = s.Nullable || v
	case "default":
		s.HasDefault = true
		s.Default, err = value(val)
	case "enum":
		err = b.enumKeyword(s, val, path)
	case "properties":
		err = b.propertiesKeyword(s, val, path)
	case "required":
		if val.Kind == yaml.SequenceNode {
			s.Required, err = b.strings(val, path, key)
		}
	case "additionalProperties":
		err = b.additionalPropertiesKeyword(s, val, path)
	case "items":
		if val.Kind == yaml.SequenceNode {
			// Tuple form: the first entry stands for every item.
			if len(val.Content) == 0 {
				return nil
			}
			val = val.Content[0]
		}
		s.Items, err = b.schema(val, buildChildPath(path, key))
	case "uniqueItems":
		s.UniqueItems, err = b.boolean(val, path, key)
	case "allOf":
		s.AllOf, err = b.schemaList(val, buildChildPath(path, key))
	case "anyOf":
		s.AnyOf, err = b.schemaList(val, buildChildPath(path, key))
	case "oneOf":
		s.OneOf, err = b.schemaList(val, buildChildPath(path, key))
	case "discriminator":
		s.Discriminator, err = b.discriminator(val, path)
	case "minimum":
		s.Minimum, err = b.number(val, path, key)
	case "maximum":
		s.Maximum, err = b.number(val, path, key)
	case "multipleOf":
		s.MultipleOf, err = b.number(val, path, key)
	case "minLength":
		s.MinLength, err = b.integer(val, path, key)
	case "maxLength":
		s.MaxLength, err = b.integer(val, path, key)
	case "minItems":
		s.MinItems, err = b.integer(val, path, key)
	case "maxItems":
		s.MaxItems, err = b.integer(val, path, key)
	case "minProperties":
		s.MinProperties, err = b.integer(val, path, key)
	case "maxProperties":
		s.MaxProperties, err = b.integer(val, path, key)
	}
	return err
}

func (b *builder) typeKeyword(s *schema.Schema, val *yaml.Node, path string) error {
	switch val.Kind {
	case yaml.ScalarNode:
		s.Type = val.Value
	case yaml.SequenceNode:
		for _, item := range val.Content {
			t := scalarString(item)
			switch {
			case t == "null":
				s.Nullable = true
			case s.Type == "":
				s.Type = t
			}
		}
	default:
		return b.errorf(val, path, "type must be a string or a list of strings")
	}
	return nil
}

func (b *builder) enumKeyword(s *schema.Schema, val *yaml.Node, path string) error {
	if val.Kind != yaml.SequenceNode {
		return b.errorf(val, path, "enum must be a list")
	}
	for _, item := range val.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.ScalarNode {
			continue
		}
		v, err := scalarValue(item)
		if err != nil {
			return b.errorf(item, path, "invalid enum value %q: %v", item.Value, err)
		}
		if v == nil {
			s.Nullable = true
			continue
		}
		s.Enum = append(s.Enum, v)
	}
	return nil
}

func (b *builder) propertiesKeyword(s *schema.Schema, val *yaml.Node, path string) error {
	if val.Kind != yaml.MappingNode {
		return b.errorf(val, path, "properties must be a mapping")
	}
	base := buildChildPath(path, "properties")
	return pairs(val, func(name string, prop *yaml.Node) error {
		ps, err := b.schema(prop, buildChildPath(base, name))
		if err != nil {
			return err
		}
		s.Properties = append(s.Properties, schema.Property{Name: name, Schema: ps})
		return nil
	})
}

func (b *builder) additionalPropertiesKeyword(s *schema.Schema, val *yaml.Node, path string) error {
	switch {
	case val.Kind == yaml.ScalarNode:
		allowed, err := b.boolean(val, path, "additionalProperties")
		if allowed {
			s.AdditionalProperties = &schema.AdditionalProperties{}
		}
		return err
	case val.Kind == yaml.MappingNode && len(val.Content) == 0:
		s.AdditionalProperties = &schema.AdditionalProperties{}
		return nil
	default:
		vs, err := b.schema(val, buildChildPath(path, "additionalProperties"))
		if err != nil {
			return err
		}
		s.AdditionalProperties = &schema.AdditionalProperties{Schema: vs}
		return nil
	}
}

func (b *builder) externalDocs(val *yaml.Node, path string) (*schema.ExternalDocs, error) {
	if val.Kind != yaml.MappingNode {
		return nil, b.errorf(val, path, "externalDocs must be a mapping")
	}
	d := &schema.ExternalDocs{
		Description: scalarString(mapValue(val, "description")),
		URL:         scalarString(mapValue(val, "url")),
	}
	if *d == (schema.ExternalDocs{}) {
		return nil, nil
	}
	return d, nil
}

func (b *builder) discriminator(val *yaml.Node, path string) (*schema.Discriminator, error) {
	// Swagger 2.0 discriminators are a bare property name.
	if val.Kind == yaml.ScalarNode {
		return &schema.Discriminator{PropertyName: val.Value}, nil
	}
	if val.Kind != yaml.MappingNode {
		return nil, b.errorf(val, path, "discriminator must be a mapping")
	}
	d := &schema.Discriminator{PropertyName: scalarString(mapValue(val, "propertyName"))}
	err := pairs(mapValue(val, "mapping"), func(key string, ref *yaml.Node) error {
		d.Mapping = append(d.Mapping, schema.DiscriminatorMapping{Value: key, Ref: scalarString(ref)})
		return nil
	})
	return d, err
}

func (b *builder) schemaList(val *yaml.Node, path string) ([]*schema.Schema, error) {
	if val.Kind != yaml.SequenceNode {
		return nil, b.errorf(val, path, "expected a list of schemas")
	}
	out := make([]*schema.Schema, 0, len(val.Content))
	for i, item := range val.Content {
		s, err := b.schema(item, buildIndexPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (b *builder) str(val *yaml.Node, path, key string) (string, error) {
	if val.Kind != yaml.ScalarNode {
		return "", b.errorf(val, path, "%s must be a string", key)
	}
	return val.Value, nil
}

func (b *builder) strings(val *yaml.Node, path, key string) ([]string, error) {
	out := make([]string, 0, len(val.Content))
	for _, item := range val.Content {
		s, err := b.str(resolveAlias(item), path, key)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (b *builder) boolean(val *yaml.Node, path, key string) (bool, error) {
	var v bool
	if val.Kind != yaml.ScalarNode || val.Decode(&v) != nil {
		return false, b.errorf(val, path, "%s must be a boolean", key)
	}
	return v, nil
}

func (b *builder) number(val *yaml.Node, path, key string) (*float64, error) {
	var v float64
	if val.Kind != yaml.ScalarNode || val.Decode(&v) != nil {
		return nil, b.errorf(val, path, "%s must be a number", key)
	}
	return &v, nil
}

func (b *builder) integer(val *yaml.Node, path, key string) (*int, error) {
	var v int
	if val.Kind != yaml.ScalarNode || val.Decode(&v) != nil {
		return nil, b.errorf(val, path, "%s must be an integer", key)
	}
	return &v, nil
}
