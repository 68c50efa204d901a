package model

// Constraints is the validation constraint set attached to a field. Absent
// bounds are nil, never a sentinel value.
type Constraints struct {
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	ExclusiveMinimum bool     `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMaximum bool     `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`

	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Email     bool   `json:"email,omitempty" yaml:"email,omitempty"`

	MinItems *int `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	MinProperties *int `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
	MaxProperties *int `json:"maxProperties,omitempty" yaml:"maxProperties,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (c *Constraints) IsEmpty() bool {
	return c == nil || *c == (Constraints{})
}

// DefaultForm says how a default value is expressed.
type DefaultForm int

const (
	// DefaultLiteral is a literal of the field's own type.
	DefaultLiteral DefaultForm = iota
	// DefaultParse is a string that must be parsed into the field's type.
	DefaultParse
	// DefaultEnumConstant is a reference to a constant of an EnumDecl.
	DefaultEnumConstant
)

// String returns the lowercase name of the form.
func (f DefaultForm) String() string {
	switch f {
	case DefaultParse:
		return "parse"
	case DefaultEnumConstant:
		return "enum-constant"
	default:
		return "literal"
	}
}

// MarshalText encodes the form by name.
func (f DefaultForm) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// DefaultValue describes the initializer of a field whose value is absent.
type DefaultValue struct {
	Form DefaultForm `json:"form" yaml:"form"`
	// Kind is the field kind the value was synthesized for.
	Kind Kind `json:"kind" yaml:"kind"`
	// Value is the typed value: bool, int32, int64, float32, float64, string
	// or []byte. For enum constants it is the wire value.
	Value any `json:"value" yaml:"value"`
	// Literal is the canonical text of Value ("10", "1.5", "true", "2024-01-01").
	Literal string `json:"literal" yaml:"literal"`
	// EnumType and EnumConstant name the referenced constant.
	EnumType     string `json:"enumType,omitempty" yaml:"enumType,omitempty"`
	EnumConstant string `json:"enumConstant,omitempty" yaml:"enumConstant,omitempty"`
	// MayFail is set when initializing from Literal can fail at runtime, so the
	// initializer has to report an error.
	MayFail bool `json:"mayFail,omitempty" yaml:"mayFail,omitempty"`
}

// Tag returns the literal marker of numeric defaults: "long" for 64-bit
// integers and "float" for single precision. Other kinds are unmarked.
func (d *DefaultValue) Tag() string {
	switch d.Kind {
	case KindInt64:
		return "long"
	case KindFloat:
		return "float"
	}
	return ""
}

// Field is one member of a ClassDecl.
type Field struct {
	// Name is the field identifier.
	Name string `json:"name" yaml:"name"`
	// WireName is the original property key.
	WireName    string        `json:"wireName" yaml:"wireName"`
	Type        TypeRef       `json:"type" yaml:"type"`
	Nullable    bool          `json:"nullable" yaml:"nullable"`
	Required    bool          `json:"required" yaml:"required"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Constraints *Constraints  `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Default     *DefaultValue `json:"default,omitempty" yaml:"default,omitempty"`
	// AdditionalProperties marks the synthetic open-map field.
	AdditionalProperties bool `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
}
