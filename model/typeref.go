package model

import "strings"

// TypeRef describes the type of a field or the result of resolving a schema.
// It is either a primitive, a collection wrapping another TypeRef, or a
// pointer to a declaration by name.
type TypeRef struct {
	Kind Kind `json:"kind" yaml:"kind"`
	// Name is the declaration name for KindEnum and KindObject.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Elem is the element type of lists and sets, and the value type of maps.
	Elem *TypeRef `json:"elem,omitempty" yaml:"elem,omitempty"`
}

// Primitive returns a TypeRef of a kind that needs no name or element.
func Primitive(k Kind) TypeRef {
	return TypeRef{Kind: k}
}

// Any returns the untyped TypeRef.
func Any() TypeRef {
	return TypeRef{Kind: KindAny}
}

// Declared returns a TypeRef pointing at a declaration.
func Declared(k Kind, name string) TypeRef {
	return TypeRef{Kind: k, Name: name}
}

// ListOf returns an ordered collection of elem.
func ListOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: KindList, Elem: &elem}
}

// SetOf returns a unique collection of elem.
func SetOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: KindSet, Elem: &elem}
}

// MapOf returns a string-keyed map of elem.
func MapOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: KindMap, Elem: &elem}
}

// IsDeclared reports whether the type points at a declaration.
func (t TypeRef) IsDeclared() bool {
	return t.Kind.IsDeclared()
}

// Innermost returns the first non-collection type, unwrapping lists, sets,
// and maps.
func (t TypeRef) Innermost() TypeRef {
	for t.Kind.IsCollection() && t.Elem != nil {
		t = *t.Elem
	}
	return t
}

// String renders the type in a compact, language-neutral notation such as
// "List<Set<Pet>>" or "Map<string, any>".
func (t TypeRef) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t TypeRef) write(b *strings.Builder) {
	switch t.Kind {
	case KindEnum, KindObject:
		b.WriteString(t.Name)
	case KindList, KindSet, KindMap:
		switch t.Kind {
		case KindList:
			b.WriteString("List<")
		case KindSet:
			b.WriteString("Set<")
		default:
			b.WriteString("Map<string, ")
		}
		if t.Elem != nil {
			t.Elem.write(b)
		} else {
			b.WriteString(KindAny.String())
		}
		b.WriteByte('>')
	default:
		b.WriteString(t.Kind.String())
	}
}
