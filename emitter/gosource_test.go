package emitter

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/erraggy/oasmodels/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int        { return &v }
func f64(v float64) *float64 { return &v }

// normalize collapses whitespace so assertions ignore gofmt alignment.
func normalize(src []byte) string {
	return strings.Join(strings.Fields(string(src)), " ")
}

// render prints decls and checks the result parses as Go.
func render(t *testing.T, decls model.Set, opts ...Option) string {
	t.Helper()
	src, err := GoSource(decls, "models", opts...)
	require.NoError(t, err)
	_, err = parser.ParseFile(token.NewFileSet(), "models.go", src, parser.ParseComments)
	require.NoError(t, err, "generated source:\n%s", src)
	return normalize(src)
}

func petDecls() model.Set {
	status := &model.EnumDecl{
		Name:      "StatusEnum",
		ValueKind: model.KindString,
		Constants: []model.EnumConstant{
			{Name: "AVAILABLE", Value: "available"},
			{Name: "SOLD", Value: "sold"},
		},
		Default: "AVAILABLE",
		Source:  "components.schemas.Pet.properties.status",
	}
	pet := &model.ClassDecl{
		Name:        "Pet",
		Description: "A pet for sale.",
		Fields: []*model.Field{
			{
				Name:        "name",
				WireName:    "name",
				Type:        model.Primitive(model.KindString),
				Required:    true,
				Constraints: &model.Constraints{MinLength: intp(1), MaxLength: intp(64)},
			},
			{
				Name:        "age",
				WireName:    "age",
				Type:        model.Primitive(model.KindInt32),
				Nullable:    true,
				Constraints: &model.Constraints{Minimum: f64(0), Maximum: f64(30), ExclusiveMaximum: true},
			},
			{
				Name:     "tags",
				WireName: "tags",
				Type:     model.SetOf(model.Primitive(model.KindString)),
				Nullable: true,
				Constraints: &model.Constraints{
					MinItems: intp(1),
				},
			},
			{
				Name:     "owner",
				WireName: "owner",
				Type:     model.Declared(model.KindObject, "Owner"),
				Nullable: true,
			},
			{
				Name:     "born",
				WireName: "born",
				Type:     model.Primitive(model.KindDateTime),
				Nullable: true,
			},
			{
				Name:        "code",
				WireName:    "code",
				Type:        model.Primitive(model.KindStringPattern),
				Nullable:    true,
				Constraints: &model.Constraints{Pattern: "^[A-Z]{3}$"},
			},
			{
				Name:        "contact",
				WireName:    "contact",
				Type:        model.Primitive(model.KindString),
				Nullable:    true,
				Constraints: &model.Constraints{Email: true},
			},
			{
				Name:     "status",
				WireName: "status",
				Type:     model.Declared(model.KindEnum, "StatusEnum"),
				Nullable: true,
			},
			{
				Name:                 "additionalProperties",
				Type:                 model.MapOf(model.Any()),
				Nullable:             true,
				AdditionalProperties: true,
			},
		},
		Source: "components.schemas.Pet",
	}
	owner := &model.ClassDecl{
		Name:   "Owner",
		Fields: []*model.Field{{Name: "id", WireName: "id", Type: model.Primitive(model.KindUUID), Required: true}},
		Source: "components.schemas.Owner",
	}
	return model.Set{pet, status, owner}
}

func TestGoSourceClass(t *testing.T) {
	src := render(t, petDecls())

	assert.Contains(t, src, "// Code generated by oasmodels. DO NOT EDIT.")
	assert.Contains(t, src, "package models")
	assert.Contains(t, src, "// Pet is generated from components.schemas.Pet. // // A pet for sale. type Pet struct {")
	assert.Contains(t, src, "Name string `json:\"name\" validate:\"required,min=1,max=64\"`")
	assert.Contains(t, src, "Age *int32 `json:\"age,omitempty\" validate:\"omitempty,gte=0,lt=30\"`")
	assert.Contains(t, src, "Tags []string `json:\"tags,omitempty\" validate:\"omitempty,min=1,unique\"`")
	assert.Contains(t, src, "Owner *Owner `json:\"owner,omitempty\"`")
	assert.Contains(t, src, "Born *time.Time `json:\"born,omitempty\"`")
	assert.Contains(t, src, "// Pattern: ^[A-Z]{3}$ Code *string")
	assert.Contains(t, src, "validate:\"omitempty,email\"")
	assert.Contains(t, src, "Status *StatusEnum `json:\"status,omitempty\"`")
	assert.Contains(t, src, "AdditionalProperties map[string]any `json:\"-\"`")
	assert.Contains(t, src, "\"time\"")

	assert.Contains(t, src, "// Owner is generated from components.schemas.Owner. type Owner struct {")
	assert.Contains(t, src, "Id string `json:\"id\" validate:\"required,uuid\"`")
	assert.NotContains(t, src, "ApplyDefaults")
	assert.NotContains(t, src, "func (m *Owner) UnmarshalJSON")
}

func TestGoSourceDocComments(t *testing.T) {
	decls := model.Set{
		&model.ClassDecl{Name: "ShapeTri", Description: "Tri", Source: "components.schemas.Shape.oneOf[2]"},
		&model.ClassDecl{Name: "Square", Description: "Square has four equal sides."},
		&model.ClassDecl{Name: "Circle", Description: "Circles are round."},
		&model.EnumDecl{Name: "Size", Description: "How big.", ValueKind: model.KindString},
	}
	src := render(t, decls)

	assert.Contains(t, src, "// ShapeTri is generated from components.schemas.Shape.oneOf[2]. // // Tri type ShapeTri struct")
	assert.Contains(t, src, "// Square has four equal sides. type Square struct")
	assert.Contains(t, src, "// Circle is a generated model. // // Circles are round. type Circle struct")
	assert.Contains(t, src, "// Size is a generated model. // // How big. type Size string")
}

func TestGoSourceJSONMethods(t *testing.T) {
	circle := &model.ClassDecl{Name: "Circle", Implements: []string{"Shape"}, Fields: []*model.Field{
		{Name: "radius", WireName: "radius", Type: model.Primitive(model.KindDouble), Required: true},
	}}
	shape := &model.InterfaceDecl{Name: "Shape", Implementers: []string{"Circle"}}
	iface := model.Declared(model.KindObject, "Shape")

	t.Run("interface-typed fields", func(t *testing.T) {
		drawing := &model.ClassDecl{Name: "Drawing", Fields: []*model.Field{
			{Name: "main", WireName: "main", Type: iface, Required: true},
			{Name: "shapes", WireName: "shapes", Type: model.ListOf(iface), Nullable: true},
			{Name: "named", WireName: "named", Type: model.MapOf(iface), Nullable: true},
			{Name: "title", WireName: "title", Type: model.Primitive(model.KindString), Nullable: true},
		}}
		src := render(t, model.Set{shape, circle, drawing})

		assert.Contains(t, src, "func (m *Drawing) UnmarshalJSON(data []byte) error { type alias Drawing")
		assert.Contains(t, src, "*alias Main json.RawMessage `json:\"main\"` Shapes []json.RawMessage `json:\"shapes\"` Named map[string]json.RawMessage `json:\"named\"` }{alias: (*alias)(m)}")
		assert.NotContains(t, src, "Title json.RawMessage")
		assert.Contains(t, src, "v, err := UnmarshalShape(aux.Main)")
		assert.Contains(t, src, "return fmt.Errorf(\"Drawing.main: %w\", err)")
		assert.Contains(t, src, "m.Shapes = make([]Shape, 0, len(aux.Shapes))")
		assert.Contains(t, src, "return fmt.Errorf(\"Drawing.shapes[%d]: %w\", i, err)")
		assert.Contains(t, src, "m.Named = make(map[string]Shape, len(aux.Named))")
		assert.Contains(t, src, "m.Named[key] = v")
		assert.NotContains(t, src, "func (m Drawing) MarshalJSON")
		assert.NotContains(t, src, "func (m *Circle) UnmarshalJSON")
	})

	t.Run("additional properties", func(t *testing.T) {
		pet := &model.ClassDecl{Name: "Pet", Fields: []*model.Field{
			{Name: "id", WireName: "id", Type: model.Primitive(model.KindInt64), Required: true},
			{Name: "additionalProperties", Type: model.MapOf(model.Primitive(model.KindInt32)), Nullable: true, AdditionalProperties: true},
		}}
		src := render(t, model.Set{pet})

		assert.Contains(t, src, "func (m *Pet) UnmarshalJSON(data []byte) error { type alias Pet if err := json.Unmarshal(data, (*alias)(m)); err != nil {")
		assert.Contains(t, src, "var all map[string]json.RawMessage")
		assert.Contains(t, src, "switch key { case \"id\": continue }")
		assert.Contains(t, src, "var v int32")
		assert.Contains(t, src, "m.AdditionalProperties = make(map[string]int32)")
		assert.Contains(t, src, "func (m Pet) MarshalJSON() ([]byte, error) {")
		assert.Contains(t, src, "data, err := json.Marshal(alias(m))")
		assert.Contains(t, src, "if _, ok := out[key]; ok { continue }")
	})

	t.Run("additional properties of an interface", func(t *testing.T) {
		bag := &model.ClassDecl{Name: "Bag", Fields: []*model.Field{
			{Name: "additionalProperties", Type: model.MapOf(iface), Nullable: true, AdditionalProperties: true},
		}}
		src := render(t, model.Set{shape, circle, bag})

		assert.NotContains(t, src, "switch key")
		assert.Contains(t, src, "v, err := UnmarshalShape(item)")
		assert.Contains(t, src, "return fmt.Errorf(\"Bag: property %q: %w\", key, err)")
	})
}

func TestGoSourceWithoutValidateTags(t *testing.T) {
	src := render(t, petDecls(), WithValidateTags(false))
	assert.NotContains(t, src, "validate:")
	assert.Contains(t, src, "Name string `json:\"name\"`")
}

func TestGoSourceEnum(t *testing.T) {
	priority := &model.EnumDecl{
		Name:      "Priority",
		ValueKind: model.KindInt64,
		Constants: []model.EnumConstant{
			{Name: "$1", Value: int64(1)},
			{Name: "$2", Value: int64(2)},
		},
	}
	decls := petDecls()
	decls = append(decls, priority)

	src := render(t, decls)

	assert.Contains(t, src, "type StatusEnum string")
	assert.Contains(t, src, "StatusEnumAvailable StatusEnum = \"available\"")
	assert.Contains(t, src, "StatusEnumSold StatusEnum = \"sold\"")
	assert.Contains(t, src, "func (e *StatusEnum) UnmarshalJSON(data []byte) error {")
	assert.Contains(t, src, "case StatusEnumAvailable, StatusEnumSold: *e = StatusEnum(v) default: *e = StatusEnumAvailable }")

	assert.Contains(t, src, "type Priority int64")
	assert.Contains(t, src, "Priority1 Priority = 1")
	assert.Contains(t, src, "Priority2 Priority = 2")
	assert.Contains(t, src, "return fmt.Errorf(\"invalid Priority value %v\", v)")
}

func TestGoSourceDefaults(t *testing.T) {
	decls := petDecls()
	pet := decls.Class("Pet")
	pet.HasConstructor = true
	pet.Fields = append(pet.Fields,
		&model.Field{
			Name:     "count",
			WireName: "count",
			Type:     model.Primitive(model.KindInt64),
			Nullable: true,
			Default:  &model.DefaultValue{Kind: model.KindInt64, Value: int64(10), Literal: "10"},
		},
		&model.Field{
			Name:     "ratio",
			WireName: "ratio",
			Type:     model.Primitive(model.KindFloat),
			Nullable: true,
			Default:  &model.DefaultValue{Kind: model.KindFloat, Value: float32(1.5), Literal: "1.5"},
		},
		&model.Field{
			Name:     "payload",
			WireName: "payload",
			Type:     model.Primitive(model.KindBytes),
			Nullable: true,
			Default:  &model.DefaultValue{Kind: model.KindBytes, Value: []byte("hi"), Literal: "aGk="},
		},
		&model.Field{
			Name:     "since",
			WireName: "since",
			Type:     model.Primitive(model.KindDate),
			Nullable: true,
			Default:  &model.DefaultValue{Form: model.DefaultParse, Kind: model.KindDate, Value: "2024-01-31", Literal: "2024-01-31", MayFail: true},
		},
		&model.Field{
			Name:     "homepage",
			WireName: "homepage",
			Type:     model.Primitive(model.KindURL),
			Nullable: true,
			Default:  &model.DefaultValue{Form: model.DefaultParse, Kind: model.KindURL, Value: "https://example.com", Literal: "https://example.com", MayFail: true},
		},
	)
	for _, f := range pet.Fields {
		switch f.Name {
		case "status":
			f.Default = &model.DefaultValue{
				Form:         model.DefaultEnumConstant,
				Kind:         model.KindEnum,
				Value:        "sold",
				Literal:      "sold",
				EnumType:     "StatusEnum",
				EnumConstant: "SOLD",
			}
		case "born":
			f.Default = &model.DefaultValue{
				Form:    model.DefaultParse,
				Kind:    model.KindDateTime,
				Value:   "2024-01-31T10:00:00Z",
				Literal: "2024-01-31T10:00:00Z",
				MayFail: true,
			}
		}
	}

	src := render(t, decls)

	assert.Contains(t, src, "func (m *Pet) ApplyDefaults() error {")
	assert.Contains(t, src, "if m.Count == nil { v := int64(10) m.Count = &v }")
	assert.Contains(t, src, "if m.Ratio == nil { v := float32(1.5) m.Ratio = &v }")
	assert.Contains(t, src, "if m.Payload == nil { m.Payload = []byte(\"hi\") }")
	assert.Contains(t, src, "if m.Status == nil { v := StatusEnumSold m.Status = &v }")
	assert.Contains(t, src, "v, err := time.Parse(time.RFC3339, \"2024-01-31T10:00:00Z\")")
	assert.Contains(t, src, "return fmt.Errorf(\"Pet: default for born: %w\", err)")
	assert.Contains(t, src, "if _, err := time.Parse(time.DateOnly, \"2024-01-31\"); err != nil {")
	assert.Contains(t, src, "if _, err := url.ParseRequestURI(\"https://example.com\"); err != nil {")
	assert.Contains(t, src, "v := \"https://example.com\" m.Homepage = &v")
}

func TestGoSourceInterface(t *testing.T) {
	cat := &model.ClassDecl{Name: "Cat", Implements: []string{"Pet"}, Fields: []*model.Field{
		{Name: "petType", WireName: "petType", Type: model.Primitive(model.KindString), Required: true},
	}}
	dog := &model.ClassDecl{Name: "Dog", Implements: []string{"Pet"}}

	t.Run("property strategy", func(t *testing.T) {
		pet := &model.InterfaceDecl{
			Name: "Pet",
			Strategy: model.Strategy{
				Kind:         model.StrategyProperty,
				PropertyName: "petType",
				Mapping:      []model.MappingEntry{{Value: "cat", Type: "Cat"}, {Value: "fish", Type: "Fish"}},
			},
			Implementers: []string{"Cat", "Dog"},
		}
		src := render(t, model.Set{pet, cat, dog})

		assert.Contains(t, src, "// Pet is implemented by Cat, Dog. type Pet interface { isPet() }")
		assert.Contains(t, src, "func (Cat) isPet() {}")
		assert.Contains(t, src, "func (Dog) isPet() {}")
		assert.Contains(t, src, "func UnmarshalPet(data []byte) (Pet, error) {")
		assert.Contains(t, src, "Discriminator string `json:\"petType\"`")
		assert.Contains(t, src, "case \"cat\": var v Cat")
		assert.Contains(t, src, "case \"Dog\": var v Dog")
		assert.NotContains(t, src, "\"fish\"")
		assert.Contains(t, src, "return nil, fmt.Errorf(\"unknown Pet petType %q\", head.Discriminator)")
	})

	t.Run("deduction strategy", func(t *testing.T) {
		pet := &model.InterfaceDecl{Name: "Pet", Implementers: []string{"Cat", "Dog"}}
		src := render(t, model.Set{pet, cat, dog})

		assert.Contains(t, src, "dec.DisallowUnknownFields()")
		assert.Contains(t, src, "var v Cat")
		assert.Contains(t, src, "var v Dog")
		assert.Contains(t, src, "errors.New(\"no Pet implementer matches\")")
	})

	t.Run("interface field is not a pointer", func(t *testing.T) {
		pet := &model.InterfaceDecl{Name: "Pet", Implementers: []string{"Cat"}}
		home := &model.ClassDecl{Name: "Home", Fields: []*model.Field{
			{Name: "pet", WireName: "pet", Type: model.Declared(model.KindObject, "Pet"), Nullable: true},
		}}
		src := render(t, model.Set{pet, cat, home})
		assert.Contains(t, src, "Pet Pet `json:\"pet,omitempty\"`")
	})
}

func TestGoSourceIdentifiers(t *testing.T) {
	decls := model.Set{
		&model.ClassDecl{Name: "Item", Fields: []*model.Field{
			{Name: "aB", WireName: "a_b", Type: model.Primitive(model.KindBoolean), Required: true},
			{Name: "_aB", WireName: "_aB", Type: model.Primitive(model.KindBoolean), Required: true},
			{Name: "$123Test", WireName: "123 test", Type: model.Primitive(model.KindString), Required: true},
		}},
		&model.EnumDecl{Name: "$2Kind", ValueKind: model.KindString, Constants: []model.EnumConstant{
			{Name: "EMPTY", Value: ""},
		}},
	}
	src := render(t, decls)

	assert.Contains(t, src, "AB bool `json:\"a_b\"`")
	assert.Contains(t, src, "AB1 bool `json:\"_aB\"`")
	assert.Contains(t, src, "N123Test string `json:\"123 test\" validate:\"required\"`")
	assert.Contains(t, src, "type N2Kind string")
	assert.Contains(t, src, "N2KindEmpty N2Kind = \"\"")
}

func TestGoSourceInvalidPackage(t *testing.T) {
	for _, pkg := range []string{"", "1models", "my-models"} {
		_, err := GoSource(nil, pkg)
		assert.Error(t, err, pkg)
	}
}
