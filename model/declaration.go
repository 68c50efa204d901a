package model

// DeclKind identifies the variant of a Declaration.
type DeclKind int

const (
	DeclClass DeclKind = iota
	DeclEnum
	DeclInterface
)

// String returns the lowercase name of the variant.
func (k DeclKind) String() string {
	switch k {
	case DeclEnum:
		return "enum"
	case DeclInterface:
		return "interface"
	default:
		return "class"
	}
}

// MarshalText encodes the variant by name.
func (k DeclKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Declaration is one generated output type.
type Declaration interface {
	// DeclName returns the unique type name.
	DeclName() string
	// DeclKind returns the variant.
	DeclKind() DeclKind
	// Namespace returns the package namespace the declaration belongs to.
	Namespace() string
}

// ClassDecl is a record type built from an object schema, with allOf and
// anyOf members flattened into it.
type ClassDecl struct {
	Name        string   `json:"name" yaml:"name"`
	Package     string   `json:"package" yaml:"package"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []*Field `json:"fields" yaml:"fields"`
	// HasConstructor is set when at least one field carries a default.
	HasConstructor bool `json:"hasConstructor" yaml:"hasConstructor"`
	// Implements lists the interfaces this class was registered against.
	Implements []string `json:"implements,omitempty" yaml:"implements,omitempty"`
	// Source is the JSON path of the schema the class was built from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

func (d *ClassDecl) DeclName() string   { return d.Name }
func (d *ClassDecl) DeclKind() DeclKind { return DeclClass }
func (d *ClassDecl) Namespace() string  { return d.Package }

// Field returns the field with the given identifier, or nil.
func (d *ClassDecl) Field(name string) *Field {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnumConstant is one member of an EnumDecl.
type EnumConstant struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// EnumDecl is an enumeration built from an enum schema.
type EnumDecl struct {
	Name        string `json:"name" yaml:"name"`
	Package     string `json:"package" yaml:"package"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// ValueKind is the wire kind of the constant values (string, int32, ...).
	ValueKind Kind           `json:"valueKind" yaml:"valueKind"`
	Constants []EnumConstant `json:"constants" yaml:"constants"`
	// Default names the constant used when decoding an unknown value.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
}

func (d *EnumDecl) DeclName() string   { return d.Name }
func (d *EnumDecl) DeclKind() DeclKind { return DeclEnum }
func (d *EnumDecl) Namespace() string  { return d.Package }

// Constant returns the constant whose wire value equals v.
func (d *EnumDecl) Constant(v any) (EnumConstant, bool) {
	for _, c := range d.Constants {
		if c.Value == v {
			return c, true
		}
	}
	return EnumConstant{}, false
}

// StrategyKind says how a decoder picks the implementer of an interface.
type StrategyKind int

const (
	// StrategyDeduction infers the implementer from the fields present.
	StrategyDeduction StrategyKind = iota
	// StrategyProperty reads a discriminator property.
	StrategyProperty
)

// String returns the lowercase name of the strategy.
func (k StrategyKind) String() string {
	if k == StrategyProperty {
		return "property"
	}
	return "deduction"
}

// MarshalText encodes the strategy by name.
func (k StrategyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MappingEntry maps a discriminator value to an implementer name.
type MappingEntry struct {
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type" yaml:"type"`
}

// Strategy is the discriminator strategy of an InterfaceDecl.
type Strategy struct {
	Kind         StrategyKind   `json:"kind" yaml:"kind"`
	PropertyName string         `json:"propertyName,omitempty" yaml:"propertyName,omitempty"`
	Mapping      []MappingEntry `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// InterfaceDecl is a polymorphic union built from a oneOf schema.
type InterfaceDecl struct {
	Name        string   `json:"name" yaml:"name"`
	Package     string   `json:"package" yaml:"package"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Strategy    Strategy `json:"strategy" yaml:"strategy"`
	// Implementers is a set kept in first-registration order.
	Implementers []string `json:"implementers" yaml:"implementers"`
	Source       string   `json:"source,omitempty" yaml:"source,omitempty"`
}

func (d *InterfaceDecl) DeclName() string   { return d.Name }
func (d *InterfaceDecl) DeclKind() DeclKind { return DeclInterface }
func (d *InterfaceDecl) Namespace() string  { return d.Package }
