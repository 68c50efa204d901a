package emitter

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/erraggy/oasmodels/internal/naming"
	"github.com/erraggy/oasmodels/model"
	"golang.org/x/tools/imports"
)

const (
	jsonPkg = "encoding/json"
	fmtPkg  = "fmt"
	timePkg = "time"
	urlPkg  = "net/url"
	uuidPkg = "github.com/google/uuid"
)

// GoSource prints decls as a formatted Go file of package pkg.
//
// Classes become structs with json and validate tags, enums become named
// types with one constant per value, and interfaces become marker
// interfaces with a decoding function. Classes whose fields carry defaults
// get an ApplyDefaults method, and classes with interface-typed fields or
// undeclared properties get JSON methods.
func GoSource(decls model.Set, pkg string, opts ...Option) ([]byte, error) {
	if !isGoIdent(pkg) {
		return nil, fmt.Errorf("emitter: invalid package name %q", pkg)
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	p := newGoPrinter(decls, cfg)
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by oasmodels. DO NOT EDIT.")

	for _, d := range decls {
		switch d := d.(type) {
		case *model.ClassDecl:
			p.class(f, d)
		case *model.EnumDecl:
			p.enum(f, d)
		case *model.InterfaceDecl:
			p.iface(f, d)
		}
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("emitter: rendering %s: %w", pkg, err)
	}
	src, err := imports.Process(FormatGo.FileName(), buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("emitter: formatting %s: %w", pkg, err)
	}
	return src, nil
}

// goPrinter holds the Go identifiers assigned to every declaration before
// any code is printed, so forward references resolve.
type goPrinter struct {
	cfg        *config
	decls      model.Set
	taken      map[string]bool
	types      map[string]string
	constants  map[string]map[string]string
	markers    map[string]string
	decoders   map[string]string
	interfaces map[string]bool
}

func newGoPrinter(decls model.Set, cfg *config) *goPrinter {
	p := &goPrinter{
		cfg:        cfg,
		decls:      decls,
		taken:      make(map[string]bool),
		types:      make(map[string]string),
		constants:  make(map[string]map[string]string),
		markers:    make(map[string]string),
		decoders:   make(map[string]string),
		interfaces: make(map[string]bool),
	}

	for _, d := range decls {
		p.types[d.DeclName()] = p.unique(goIdent(d.DeclName(), "Model"))
	}
	for _, d := range decls {
		switch d := d.(type) {
		case *model.EnumDecl:
			consts := make(map[string]string, len(d.Constants))
			for _, c := range d.Constants {
				consts[c.Name] = p.unique(p.types[d.Name] + memberSuffix(c.Name))
			}
			p.constants[d.Name] = consts
		case *model.InterfaceDecl:
			p.interfaces[d.Name] = true
			p.markers[d.Name] = "is" + p.types[d.Name]
			p.decoders[d.Name] = p.unique("Unmarshal" + p.types[d.Name])
		}
	}
	return p
}

func (p *goPrinter) unique(base string) string {
	name := base
	for i := 1; p.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	p.taken[name] = true
	return name
}

// goIdent exports a declaration or field identifier. Names arrive already
// normalized, so only the digit prefix and leading underscores need care.
func goIdent(s, fallback string) string {
	id := strings.TrimLeft(strings.ReplaceAll(s, naming.DigitPrefix, ""), "_")
	if id == "" {
		return fallback
	}
	if id[0] >= '0' && id[0] <= '9' {
		return "N" + id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

// memberSuffix is the part of a constant name following its type name.
func memberSuffix(s string) string {
	if id := strings.ReplaceAll(naming.ToTypeIdentifier(s), naming.DigitPrefix, ""); id != "" {
		return id
	}
	return "Value"
}

func isGoIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// comment adds description as line comments, falling back to fallback.
func comment(description, fallback string) []jen.Code {
	text := strings.TrimSpace(description)
	if text == "" {
		text = fallback
	}
	if text == "" {
		return nil
	}
	return commentLines(text)
}

// docComment is comment for a top-level declaration: the text starts with
// the identifier, so a description that does not gets lead as its first
// paragraph.
func docComment(name, description, lead string) []jen.Code {
	text := strings.TrimSpace(description)
	switch {
	case text == "":
		text = lead
	case !startsWithIdent(text, name):
		text = lead + "\n\n" + text
	}
	return commentLines(text)
}

func startsWithIdent(text, name string) bool {
	rest, ok := strings.CutPrefix(text, name)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\n')
}

func commentLines(text string) []jen.Code {
	var out []jen.Code
	for _, line := range strings.Split(text, "\n") {
		out = append(out, jen.Comment(strings.TrimRight(line, " \t")))
	}
	return out
}

func origin(name, source string) string {
	if source == "" {
		return name + " is a generated model."
	}
	return fmt.Sprintf("%s is generated from %s.", name, source)
}

// addComments starts a new top-level declaration with its doc lines.
func addComments(f *jen.File, lines []jen.Code) {
	f.Line()
	for _, c := range lines {
		f.Add(c)
	}
}

func (p *goPrinter) typeName(name string) string {
	if id, ok := p.types[name]; ok {
		return id
	}
	return goIdent(name, "Model")
}

// typeOf maps a TypeRef to its Go type.
func (p *goPrinter) typeOf(t model.TypeRef) *jen.Statement {
	switch t.Kind {
	case model.KindBoolean:
		return jen.Bool()
	case model.KindInt32:
		return jen.Int32()
	case model.KindInt64:
		return jen.Int64()
	case model.KindFloat:
		return jen.Float32()
	case model.KindDouble:
		return jen.Float64()
	case model.KindString, model.KindStringPattern, model.KindDate,
		model.KindUUID, model.KindURI, model.KindURL:
		return jen.String()
	case model.KindDateTime:
		return jen.Qual(timePkg, "Time")
	case model.KindBytes:
		return jen.Index().Byte()
	case model.KindEnum, model.KindObject:
		return jen.Id(p.typeName(t.Name))
	case model.KindList, model.KindSet:
		return jen.Index().Add(p.elemOf(t))
	case model.KindMap:
		return jen.Map(jen.String()).Add(p.elemOf(t))
	default:
		return jen.Id("any")
	}
}

func (p *goPrinter) elemOf(t model.TypeRef) *jen.Statement {
	if t.Elem == nil {
		return jen.Id("any")
	}
	return p.typeOf(*t.Elem)
}

// pointer reports whether the field is carried behind a pointer: optional
// and defaulted scalars, and every class reference.
func (p *goPrinter) pointer(f *model.Field) bool {
	switch f.Type.Kind {
	case model.KindList, model.KindSet, model.KindMap, model.KindAny, model.KindBytes:
		return false
	case model.KindObject:
		return !p.interfaces[f.Type.Name]
	}
	return f.Nullable || f.Default != nil
}

func (p *goPrinter) class(f *jen.File, d *model.ClassDecl) {
	name := p.typeName(d.Name)
	addComments(f, docComment(name, d.Description, origin(name, d.Source)))

	fields := make([]string, len(d.Fields))
	seen := make(map[string]bool, len(d.Fields))
	var members []jen.Code
	for i, fd := range d.Fields {
		id := goIdent(fd.Name, "Field")
		for n := 1; seen[id]; n++ {
			id = goIdent(fd.Name, "Field") + strconv.Itoa(n)
		}
		seen[id] = true
		fields[i] = id

		members = append(members, comment(fieldDoc(fd), "")...)
		typ := p.typeOf(fd.Type)
		if p.pointer(fd) {
			typ = jen.Op("*").Add(typ)
		}
		members = append(members, jen.Id(id).Add(typ).Tag(p.tags(fd)))
	}
	f.Type().Id(name).Struct(members...)

	for _, iface := range d.Implements {
		marker, ok := p.markers[iface]
		if !ok {
			continue
		}
		f.Line()
		f.Func().Params(jen.Id(name)).Id(marker).Params().Block()
	}

	p.jsonMethods(f, d, name, fields)

	if d.HasConstructor {
		p.applyDefaults(f, d, name, fields)
	}
}

func fieldDoc(fd *model.Field) string {
	doc := fd.Description
	if fd.AdditionalProperties {
		doc = strings.TrimSpace(doc + "\nAdditionalProperties holds properties not declared by the schema.")
	}
	if c := fd.Constraints; c != nil && c.Pattern != "" {
		doc = strings.TrimSpace(doc + "\nPattern: " + c.Pattern)
	}
	return doc
}

// tags builds the struct tags of a field.
func (p *goPrinter) tags(fd *model.Field) map[string]string {
	tags := make(map[string]string, 2)
	switch {
	case fd.WireName == "":
		tags["json"] = "-"
	case fd.Required:
		tags["json"] = fd.WireName
	default:
		tags["json"] = fd.WireName + ",omitempty"
	}
	if p.cfg.validateTags {
		if v := validateTag(fd); v != "" {
			tags["validate"] = v
		}
	}
	return tags
}

// validateTag renders the field's constraints in go-playground/validator
// syntax.
func validateTag(fd *model.Field) string {
	var parts []string
	if fd.Required && fd.Type.Kind != model.KindBoolean {
		parts = append(parts, "required")
	}

	c := fd.Constraints
	if c == nil {
		c = &model.Constraints{}
	}
	k := fd.Type.Kind
	switch {
	case k.IsStringLike() && k != model.KindDateTime:
		parts = appendBound(parts, "min", c.MinLength)
		parts = appendBound(parts, "max", c.MaxLength)
		if c.Email {
			parts = append(parts, "email")
		}
		switch k {
		case model.KindUUID:
			parts = append(parts, "uuid")
		case model.KindURI:
			parts = append(parts, "uri")
		case model.KindURL:
			parts = append(parts, "url")
		case model.KindDate:
			parts = append(parts, "datetime=2006-01-02")
		}
	case k.IsNumeric():
		if c.Minimum != nil {
			op := "gte"
			if c.ExclusiveMinimum {
				op = "gt"
			}
			parts = append(parts, op+"="+formatNumber(*c.Minimum))
		}
		if c.Maximum != nil {
			op := "lte"
			if c.ExclusiveMaximum {
				op = "lt"
			}
			parts = append(parts, op+"="+formatNumber(*c.Maximum))
		}
	case k == model.KindList || k == model.KindSet:
		parts = appendBound(parts, "min", c.MinItems)
		parts = appendBound(parts, "max", c.MaxItems)
		if k == model.KindSet {
			parts = append(parts, "unique")
		}
	case k == model.KindMap:
		parts = appendBound(parts, "min", c.MinProperties)
		parts = appendBound(parts, "max", c.MaxProperties)
	}

	if len(parts) == 0 {
		return ""
	}
	if !fd.Required {
		parts = append([]string{"omitempty"}, parts...)
	}
	return strings.Join(parts, ",")
}

func appendBound(parts []string, op string, v *int) []string {
	if v == nil {
		return parts
	}
	return append(parts, fmt.Sprintf("%s=%d", op, *v))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// applyDefaults prints the method that fills absent defaulted fields.
func (p *goPrinter) applyDefaults(f *jen.File, d *model.ClassDecl, name string, fields []string) {
	var body []jen.Code
	for i, fd := range d.Fields {
		if fd.Default == nil {
			continue
		}
		if stmt := p.defaultStmt(d.Name, fd, fields[i]); stmt != nil {
			body = append(body, stmt)
		}
	}
	body = append(body, jen.Return(jen.Nil()))

	f.Line()
	f.Comment("ApplyDefaults sets every absent field that declares a default value.")
	f.Func().Params(jen.Id("m").Op("*").Id(name)).Id("ApplyDefaults").Params().Error().Block(body...)
}

func (p *goPrinter) defaultStmt(class string, fd *model.Field, id string) jen.Code {
	dv := fd.Default
	target := jen.Id("m").Dot(id)
	wrapErr := jen.Return(jen.Qual(fmtPkg, "Errorf").Call(
		jen.Lit(fmt.Sprintf("%s: default for %s: %%w", class, fd.WireName)), jen.Err()))

	if fd.Type.Kind == model.KindBytes {
		b, ok := dv.Value.([]byte)
		if !ok {
			return nil
		}
		return jen.If(target.Clone().Op("==").Nil()).Block(
			target.Clone().Op("=").Index().Byte().Call(jen.Lit(string(b))),
		)
	}

	if !p.pointer(fd) {
		return nil
	}

	var init []jen.Code
	switch dv.Form {
	case model.DefaultEnumConstant:
		constant, ok := p.constants[dv.EnumType][dv.EnumConstant]
		if !ok {
			return nil
		}
		init = append(init, jen.Id("v").Op(":=").Id(constant))
	case model.DefaultParse:
		check := parseCheck(fd.Type.Kind, dv.Literal)
		if check == nil {
			return nil
		}
		if fd.Type.Kind == model.KindDateTime {
			init = append(init,
				jen.List(jen.Id("v"), jen.Err()).Op(":=").Add(check),
				jen.If(jen.Err().Op("!=").Nil()).Block(wrapErr),
			)
		} else {
			init = append(init,
				jen.If(jen.List(jen.Id("_"), jen.Err()).Op(":=").Add(check), jen.Err().Op("!=").Nil()).Block(wrapErr),
				jen.Id("v").Op(":=").Lit(dv.Literal),
			)
		}
	default:
		lit := literal(dv.Value)
		if lit == nil {
			return nil
		}
		init = append(init, jen.Id("v").Op(":=").Add(lit))
	}

	init = append(init, target.Clone().Op("=").Op("&").Id("v"))
	return jen.If(target.Clone().Op("==").Nil()).Block(init...)
}

// parseCheck returns the call that validates a structured default.
func parseCheck(k model.Kind, lit string) *jen.Statement {
	switch k {
	case model.KindDate:
		return jen.Qual(timePkg, "Parse").Call(jen.Qual(timePkg, "DateOnly"), jen.Lit(lit))
	case model.KindDateTime:
		return jen.Qual(timePkg, "Parse").Call(jen.Qual(timePkg, "RFC3339"), jen.Lit(lit))
	case model.KindUUID:
		return jen.Qual(uuidPkg, "Parse").Call(jen.Lit(lit))
	case model.KindURI:
		return jen.Qual(urlPkg, "Parse").Call(jen.Lit(lit))
	case model.KindURL:
		return jen.Qual(urlPkg, "ParseRequestURI").Call(jen.Lit(lit))
	}
	return nil
}

// literal renders a typed default value. Sized numbers keep their
// conversion so the short variable gets the field's type.
func literal(v any) *jen.Statement {
	switch v := v.(type) {
	case bool, string, int32, int64, float32:
		return jen.Lit(v)
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return jen.Float64().Call(jen.Lit(v))
		}
		return jen.Lit(v)
	}
	return nil
}

// enum prints a named type, its constants and a tolerant UnmarshalJSON.
func (p *goPrinter) enum(f *jen.File, d *model.EnumDecl) {
	name := p.typeName(d.Name)
	base := enumBase(d.ValueKind)
	addComments(f, docComment(name, d.Description, origin(name, d.Source)))
	f.Type().Id(name).Add(base)

	var (
		defs  []jen.Code
		known []jen.Code
	)
	for _, c := range d.Constants {
		value := enumLiteral(d.ValueKind, c.Value)
		if value == nil {
			continue
		}
		id := p.constants[d.Name][c.Name]
		defs = append(defs, jen.Id(id).Id(name).Op("=").Add(value))
		known = append(known, jen.Id(id))
	}
	if len(defs) > 0 {
		f.Line()
		f.Const().Defs(defs...)
	}

	var fallback []jen.Code
	if id, ok := p.constants[d.Name][d.Default]; ok && d.Default != "" {
		fallback = append(fallback, jen.Op("*").Id("e").Op("=").Id(id))
	} else {
		fallback = append(fallback, jen.Return(jen.Qual(fmtPkg, "Errorf").Call(
			jen.Lit(fmt.Sprintf("invalid %s value %%v", name)), jen.Id("v"))))
	}

	cases := []jen.Code{jen.Default().Block(fallback...)}
	if len(known) > 0 {
		cases = append([]jen.Code{jen.Case(known...).Block(jen.Op("*").Id("e").Op("=").Id(name).Call(jen.Id("v")))}, cases...)
	}

	f.Line()
	f.Comment(fmt.Sprintf("UnmarshalJSON decodes a %s, mapping unknown values to the default when one is declared.", name))
	f.Func().Params(jen.Id("e").Op("*").Id(name)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().Block(
		jen.Var().Id("v").Add(base.Clone()),
		jen.If(
			jen.Err().Op(":=").Qual(jsonPkg, "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("v")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Err())),
		jen.Switch(jen.Id(name).Call(jen.Id("v"))).Block(cases...),
		jen.Return(jen.Nil()),
	)
}

func enumBase(k model.Kind) *jen.Statement {
	switch k {
	case model.KindBoolean:
		return jen.Bool()
	case model.KindInt32:
		return jen.Int32()
	case model.KindInt64:
		return jen.Int64()
	case model.KindFloat, model.KindDouble:
		return jen.Float64()
	default:
		return jen.String()
	}
}

// enumLiteral renders an untyped constant value, or nil when v cannot be
// expressed in the enum's base type.
func enumLiteral(k model.Kind, v any) *jen.Statement {
	switch k {
	case model.KindBoolean:
		if b, ok := v.(bool); ok {
			return jen.Lit(b)
		}
	case model.KindInt32, model.KindInt64:
		switch n := v.(type) {
		case int64:
			return jen.Lit(int(n))
		case float64:
			if n == math.Trunc(n) {
				return jen.Lit(int(n))
			}
		}
	case model.KindFloat, model.KindDouble:
		switch n := v.(type) {
		case int64:
			return jen.Lit(int(n))
		case float64:
			return jen.Lit(n)
		}
	default:
		if s, ok := v.(string); ok {
			return jen.Lit(s)
		}
		return jen.Lit(fmt.Sprint(v))
	}
	return nil
}

// iface prints a marker interface and the function decoding its
// implementers.
func (p *goPrinter) iface(f *jen.File, d *model.InterfaceDecl) {
	name := p.typeName(d.Name)
	var implementers []string
	for _, impl := range d.Implementers {
		if p.decls.Class(impl) != nil {
			implementers = append(implementers, impl)
		}
	}

	fallback := fmt.Sprintf("%s is implemented by %s.", name, strings.Join(p.goNames(implementers), ", "))
	if len(implementers) == 0 {
		fallback = fmt.Sprintf("%s has no implementers.", name)
	}
	addComments(f, docComment(name, d.Description, fallback))
	f.Type().Id(name).Interface(jen.Id(p.markers[d.Name]).Params())

	decoder := p.decoders[d.Name]
	sig := jen.Func().Id(decoder).Params(jen.Id("data").Index().Byte()).Params(jen.Id(name), jen.Error())

	f.Line()
	if d.Strategy.Kind == model.StrategyProperty && d.Strategy.PropertyName != "" {
		f.Comment(fmt.Sprintf("%s decodes the %s selected by the %q property.", decoder, name, d.Strategy.PropertyName))
		f.Add(sig.Block(p.propertyDecoder(d, name, implementers)...))
		return
	}
	f.Comment(fmt.Sprintf("%s decodes data into the first %s implementer that accepts every field.", decoder, name))
	f.Add(sig.Block(p.deductionDecoder(name, implementers)...))
}

func (p *goPrinter) goNames(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = p.typeName(n)
	}
	return out
}

// discriminatorValues pairs each implementer with its discriminator value.
// Mapped values come first; unmapped implementers use their own name.
func discriminatorValues(d *model.InterfaceDecl, implementers []string) []model.MappingEntry {
	isImpl := make(map[string]bool, len(implementers))
	for _, impl := range implementers {
		isImpl[impl] = true
	}

	var out []model.MappingEntry
	mapped := make(map[string]bool)
	seen := make(map[string]bool)
	for _, m := range d.Strategy.Mapping {
		if !isImpl[m.Type] || seen[m.Value] {
			continue
		}
		seen[m.Value] = true
		mapped[m.Type] = true
		out = append(out, m)
	}
	for _, impl := range implementers {
		if mapped[impl] || seen[impl] {
			continue
		}
		seen[impl] = true
		out = append(out, model.MappingEntry{Value: impl, Type: impl})
	}
	return out
}

func decodeInto(typ string) []jen.Code {
	return []jen.Code{
		jen.Var().Id("v").Id(typ),
		jen.If(
			jen.Err().Op(":=").Qual(jsonPkg, "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("v")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Nil(), jen.Err())),
		jen.Return(jen.Id("v"), jen.Nil()),
	}
}

func (p *goPrinter) propertyDecoder(d *model.InterfaceDecl, name string, implementers []string) []jen.Code {
	prop := d.Strategy.PropertyName
	var cases []jen.Code
	for _, m := range discriminatorValues(d, implementers) {
		cases = append(cases, jen.Case(jen.Lit(m.Value)).Block(decodeInto(p.typeName(m.Type))...))
	}

	body := []jen.Code{
		jen.Var().Id("head").Struct(
			jen.Id("Discriminator").String().Tag(map[string]string{"json": prop}),
		),
		jen.If(
			jen.Err().Op(":=").Qual(jsonPkg, "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("head")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Nil(), jen.Err())),
	}
	if len(cases) > 0 {
		body = append(body, jen.Switch(jen.Id("head").Dot("Discriminator")).Block(cases...))
	}
	body = append(body, jen.Return(jen.Nil(), jen.Qual(fmtPkg, "Errorf").Call(
		jen.Lit(fmt.Sprintf("unknown %s %s %%q", name, prop)), jen.Id("head").Dot("Discriminator"))))
	return body
}

func (p *goPrinter) deductionDecoder(name string, implementers []string) []jen.Code {
	var body []jen.Code
	for _, impl := range implementers {
		body = append(body, jen.Block(
			jen.Var().Id("v").Id(p.typeName(impl)),
			jen.Id("dec").Op(":=").Qual(jsonPkg, "NewDecoder").Call(jen.Qual("bytes", "NewReader").Call(jen.Id("data"))),
			jen.Id("dec").Dot("DisallowUnknownFields").Call(),
			jen.If(jen.Id("dec").Dot("Decode").Call(jen.Op("&").Id("v")).Op("==").Nil()).Block(
				jen.Return(jen.Id("v"), jen.Nil()),
			),
		))
	}
	body = append(body, jen.Return(jen.Nil(), jen.Qual("errors", "New").Call(
		jen.Lit(fmt.Sprintf("no %s implementer matches", name)))))
	return body
}
