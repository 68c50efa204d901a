package typegen

import (
	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/schema"
)

// Dispatch maps a schema node to its field kind. A "$ref" beats "enum",
// "enum" beats composition, and composition beats the declared type.
// Reference and composition nodes report KindObject; the resolver refines a
// reference to whatever its target dispatches to. Nodes matching nothing
// report KindUnresolved.
func Dispatch(s *schema.Schema) model.Kind {
	switch s.Shape() {
	case schema.ShapeReference, schema.ShapeComposition:
		return model.KindObject
	case schema.ShapeEnum:
		return model.KindEnum
	case schema.ShapeArray:
		if s.UniqueItems {
			return model.KindSet
		}
		return model.KindList
	case schema.ShapeObject:
		if s.IsOpenObject() {
			return model.KindAny
		}
		return model.KindObject
	case schema.ShapePrimitive:
		return PrimitiveKind(s.Type, s.Format, s.Pattern)
	default:
		return model.KindUnresolved
	}
}

// PrimitiveKind maps a (type, format) pair to a scalar kind. Numbers may be
// declared with an integer format. A string with a pattern and no
// recognized format is KindStringPattern. Unknown types are KindUnresolved.
func PrimitiveKind(typ, format, pattern string) model.Kind {
	switch typ {
	case "boolean":
		return model.KindBoolean
	case "integer":
		if format == "int64" {
			return model.KindInt64
		}
		return model.KindInt32
	case "number":
		switch format {
		case "int32":
			return model.KindInt32
		case "int64":
			return model.KindInt64
		case "float":
			return model.KindFloat
		default:
			return model.KindDouble
		}
	case "string":
		switch format {
		case "date":
			return model.KindDate
		case "date-time":
			return model.KindDateTime
		case "byte", "binary":
			return model.KindBytes
		case "uuid":
			return model.KindUUID
		case "uri":
			return model.KindURI
		case "url":
			return model.KindURL
		}
		if pattern != "" {
			return model.KindStringPattern
		}
		return model.KindString
	default:
		return model.KindUnresolved
	}
}

// enumValueKind returns the wire kind of an enum's constants. An enum with
// no declared type takes the kind of its first non-null value.
func enumValueKind(s *schema.Schema) model.Kind {
	if s.Type != "" {
		if k := PrimitiveKind(s.Type, s.Format, ""); k != model.KindUnresolved {
			return k
		}
	}
	for _, v := range s.Enum {
		switch v.(type) {
		case bool:
			return model.KindBoolean
		case int64:
			return model.KindInt64
		case float64:
			return model.KindDouble
		case string:
			return model.KindString
		}
	}
	return model.KindString
}
