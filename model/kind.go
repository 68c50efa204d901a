package model

import "fmt"

// Kind is the closed set of resolved field shapes.
type Kind int

const (
	// KindUnresolved stands for a schema that matched no other kind. Fields of
	// this kind are never emitted.
	KindUnresolved Kind = iota
	KindBoolean
	KindInt32
	KindInt64
	KindFloat
	KindDouble
	KindString
	// KindStringPattern is a plain string constrained by a pattern.
	KindStringPattern
	KindDate
	KindDateTime
	KindUUID
	KindURI
	KindURL
	KindBytes
	// KindEnum refers to an EnumDecl by name.
	KindEnum
	// KindList is an ordered collection of Elem.
	KindList
	// KindSet is a collection of unique Elem values.
	KindSet
	// KindObject refers to a ClassDecl or InterfaceDecl by name.
	KindObject
	// KindMap is a string-keyed map of Elem, used for additionalProperties.
	KindMap
	// KindAny is an untyped value.
	KindAny
)

var kindNames = [...]string{
	KindUnresolved:    "unresolved",
	KindBoolean:       "boolean",
	KindInt32:         "int32",
	KindInt64:         "int64",
	KindFloat:         "float",
	KindDouble:        "double",
	KindString:        "string",
	KindStringPattern: "string-pattern",
	KindDate:          "date",
	KindDateTime:      "date-time",
	KindUUID:          "uuid",
	KindURI:           "uri",
	KindURL:           "url",
	KindBytes:         "bytes",
	KindEnum:          "enum",
	KindList:          "list",
	KindSet:           "set",
	KindObject:        "object",
	KindMap:           "map",
	KindAny:           "any",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", text)
}

// IsInteger reports whether k is a whole-number kind.
func (k Kind) IsInteger() bool {
	return k == KindInt32 || k == KindInt64
}

// IsNumeric reports whether k is an integer or floating-point kind.
func (k Kind) IsNumeric() bool {
	return k.IsInteger() || k == KindFloat || k == KindDouble
}

// IsStringLike reports whether values of k are carried as strings on the wire.
func (k Kind) IsStringLike() bool {
	switch k {
	case KindString, KindStringPattern, KindDate, KindDateTime, KindUUID, KindURI, KindURL:
		return true
	}
	return false
}

// IsStructured reports whether k is a string kind whose values must be parsed.
func (k Kind) IsStructured() bool {
	switch k {
	case KindDate, KindDateTime, KindUUID, KindURI, KindURL:
		return true
	}
	return false
}

// IsCollection reports whether k wraps an element type.
func (k Kind) IsCollection() bool {
	return k == KindList || k == KindSet || k == KindMap
}

// IsDeclared reports whether k refers to a declaration by name.
func (k Kind) IsDeclared() bool {
	return k == KindEnum || k == KindObject
}
