package typegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/naming"
	"github.com/erraggy/oasmodels/internal/severity"
	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/schema"
	json "github.com/goccy/go-json"
)

// additionalPropertiesName is the wire-less field that holds undeclared properties.
const additionalPropertiesName = "additionalProperties"

// classBuilder accumulates the fields of one ClassDecl while its own schema
// and its allOf/anyOf members are flattened into it.
type classBuilder struct {
	decl     *model.ClassDecl
	fields   []pendingField
	wires    map[string]bool
	idents   map[string]bool
	required map[string]bool
	visited  map[*schema.Schema]bool

	// additional is the schema whose additionalProperties keyword won.
	additional *schema.Schema
}

type pendingField struct {
	field  *model.Field
	schema *schema.Schema
	// target is schema with references followed.
	target *schema.Schema
}

func newClassBuilder(decl *model.ClassDecl) *classBuilder {
	return &classBuilder{
		decl:     decl,
		wires:    make(map[string]bool),
		idents:   make(map[string]bool),
		required: make(map[string]bool),
		visited:  make(map[*schema.Schema]bool),
	}
}

// ident returns a field identifier for wire that no earlier field uses.
func (b *classBuilder) ident(wire string) string {
	base := naming.ToFieldIdentifier(wire)
	if base == "" {
		base = "_"
	}
	name := base
	for n := 1; b.idents[name]; n++ {
		name = base + strconv.Itoa(n)
	}
	b.idents[name] = true
	return name
}

// buildClass generates the ClassDecl for an object or allOf/anyOf schema.
// The name is reserved before any property is resolved, so a property that
// leads back to s resolves to that name.
func (r *Resolver) buildClass(hint string, s *schema.Schema) (string, error) {
	name, reused := r.registry.Reserve(typeName(hint), s)
	if reused {
		r.cfg.logger.Debug("reused declaration", "name", name, "path", s.Location.Path)
		return name, nil
	}
	r.cfg.logger.Debug("reserved name", "name", name, "hint", hint, "path", s.Location.Path)

	decl := &model.ClassDecl{
		Name:        name,
		Package:     r.cfg.packageNamespace,
		Description: describe(s),
		Source:      s.Location.Path,
	}
	r.registry.Declare(decl)

	b := newClassBuilder(decl)
	if err := r.collect(b, s); err != nil {
		r.registry.Release(s)
		return "", err
	}
	if err := r.addAdditionalProperties(b); err != nil {
		r.registry.Release(s)
		return "", err
	}

	decl.Fields = make([]*model.Field, 0, len(b.fields))
	for _, pf := range b.fields {
		f := pf.field
		if !f.AdditionalProperties {
			f.Required = b.required[f.WireName]
			f.Nullable = pf.schema.Nullable || pf.target.Nullable || !f.Required
		}
		if f.Default != nil {
			decl.HasConstructor = true
		}
		decl.Fields = append(decl.Fields, f)
	}
	return name, nil
}

// collect flattens s into b: its own properties first, then each allOf
// member and each anyOf member in order. Referenced members contribute
// their properties; they are not declared again.
func (r *Resolver) collect(b *classBuilder, s *schema.Schema) error {
	if b.visited[s] {
		return nil
	}
	b.visited[s] = true

	for _, name := range s.Required {
		b.required[name] = true
	}
	for _, p := range s.Properties {
		if err := r.addProperty(b, p); err != nil {
			return err
		}
	}
	if s.AdditionalProperties != nil && b.additional == nil {
		b.additional = s
	}

	members := make([]*schema.Schema, 0, len(s.AllOf)+len(s.AnyOf))
	members = append(members, s.AllOf...)
	members = append(members, s.AnyOf...)
	for _, m := range members {
		target := m
		if m.Ref != "" {
			_, t, err := r.deref(m)
			if err != nil {
				return err
			}
			target = t
		}

		switch target.Shape() {
		case schema.ShapeEnum, schema.ShapeArray, schema.ShapePrimitive:
			r.report(issues.CodeUnsupportedShape, severity.SeverityWarning, m, b.decl.Name,
				fmt.Sprintf("%s member cannot be flattened into %s; skipped", target.Shape(), b.decl.Name), nil)
			continue
		}
		if len(target.OneOf) > 0 {
			r.report(issues.CodeUnsupportedShape, severity.SeverityWarning, m, b.decl.Name,
				"oneOf inside a flattened member is ignored", nil)
		}

		r.cfg.logger.Debug("flattening member", "class", b.decl.Name, "path", target.Location.Path)
		if err := r.collect(b, target); err != nil {
			return err
		}
	}
	return nil
}

// addProperty resolves one property into a field. A wire name already
// contributed by an earlier schema keeps its first field.
func (r *Resolver) addProperty(b *classBuilder, p schema.Property) error {
	if b.wires[p.Name] {
		r.cfg.logger.Debug("duplicate property ignored", "class", b.decl.Name, "property", p.Name)
		return nil
	}
	b.wires[p.Name] = true

	ps := p.Schema
	hint := b.decl.Name + "_" + p.Name
	if ps.Ref == "" && len(ps.Enum) > 0 {
		hint = p.Name + "_Enum"
	}

	t, err := r.ResolveOrGenerate(hint, ps)
	if err != nil {
		return err
	}
	if t.Innermost().Kind == model.KindUnresolved {
		r.reportUnsupported(ps, b.decl.Name, "property "+strconv.Quote(p.Name))
		return nil
	}

	// Keywords on a referenced schema belong to the field.
	target := ps
	if ps.Ref != "" {
		if _, resolved, err := r.deref(ps); err == nil {
			target = resolved
		}
	}

	f := &model.Field{
		Name:        b.ident(p.Name),
		WireName:    p.Name,
		Type:        t,
		Description: describe(ps),
	}
	if f.Description == "" && !t.IsDeclared() {
		f.Description = describe(target)
	}
	if r.cfg.validation {
		f.Constraints = MapConstraints(constraintSource(ps, target, t.Kind), t.Kind)
	}
	r.applyDefault(b, f, ps, target)

	b.fields = append(b.fields, pendingField{field: f, schema: ps, target: target})
	return nil
}

// constraintSource picks the node whose keywords constrain the field: the
// property itself unless it is a bare reference to a primitive component.
func constraintSource(ps, target *schema.Schema, k model.Kind) *schema.Schema {
	if ps.Ref != "" && !k.IsDeclared() {
		return target
	}
	return ps
}

func (r *Resolver) applyDefault(b *classBuilder, f *model.Field, ps, target *schema.Schema) {
	src := ps
	if !src.HasDefault {
		src = target
	}
	if !src.HasDefault {
		return
	}

	var enum *model.EnumDecl
	if f.Type.Kind == model.KindEnum {
		if d, ok := r.registry.Lookup(f.Type.Name); ok {
			enum, _ = d.(*model.EnumDecl)
		}
	}

	dv, note := SynthesizeDefault(src.Default, f.Type.Kind, enum)
	if note != nil {
		r.report(note.Code, note.Severity, src, b.decl.Name, note.Message, src.Default)
	}
	f.Default = dv
}

// addAdditionalProperties appends the open-map field when the class accepts
// undeclared properties. Map values are untyped unless a schema is given.
func (r *Resolver) addAdditionalProperties(b *classBuilder) error {
	if b.additional == nil {
		return nil
	}
	ap := b.additional.AdditionalProperties

	elem := model.Any()
	if ap.Typed() {
		t, err := r.ResolveOrGenerate(b.decl.Name+"_"+additionalPropertiesName, ap.Schema)
		if err != nil {
			return err
		}
		if t.Innermost().Kind == model.KindUnresolved {
			r.reportUnsupported(ap.Schema, b.decl.Name, "additionalProperties")
		} else {
			elem = t
		}
	}

	f := &model.Field{
		Name:                 b.ident(additionalPropertiesName),
		Type:                 model.MapOf(elem),
		Nullable:             true,
		AdditionalProperties: true,
	}
	if r.cfg.validation {
		f.Constraints = MapConstraints(b.additional, model.KindMap)
	}
	b.fields = append(b.fields, pendingField{field: f, schema: b.additional, target: b.additional})
	return nil
}

// buildEnum generates the EnumDecl for an enum schema. Values that normalize
// to an identifier already taken get a numeric suffix.
func (r *Resolver) buildEnum(hint string, s *schema.Schema) string {
	name, reused := r.registry.Reserve(typeName(hint), s)
	if reused {
		return name
	}

	decl := &model.EnumDecl{
		Name:        name,
		Package:     r.cfg.packageNamespace,
		Description: describe(s),
		ValueKind:   enumValueKind(s),
		Source:      s.Location.Path,
	}

	taken := make(map[string]bool, len(s.Enum))
	for _, v := range s.Enum {
		if v == nil {
			continue
		}
		if _, dup := decl.Constant(v); dup {
			continue
		}

		base := naming.ToEnumConstantIdentifier(fmt.Sprint(v))
		if base == "" {
			base = "EMPTY"
		}
		ident := base
		for n := 1; taken[ident]; n++ {
			ident = base + strconv.Itoa(n)
		}
		if ident != base {
			r.report(issues.CodeDuplicateConstant, severity.SeverityWarning, s, name,
				fmt.Sprintf("value %v normalizes to %s, which is taken; using %s", v, base, ident), v)
		}
		taken[ident] = true
		decl.Constants = append(decl.Constants, model.EnumConstant{Name: ident, Value: v})
	}

	if s.HasDefault && s.Default != nil {
		if c, ok := decl.Constant(s.Default); ok {
			decl.Default = c.Name
		} else {
			r.report(issues.CodeDefaultMismatch, severity.SeverityWarning, s, name,
				fmt.Sprintf("default %v is not one of the enum values; no fallback constant", s.Default), s.Default)
		}
	}

	r.registry.Declare(decl)
	r.cfg.logger.Debug("declared enum", "name", name, "constants", len(decl.Constants))
	return name
}

// buildInterface generates the InterfaceDecl for a oneOf schema and
// registers each usable branch as an implementer. The interface is declared
// before its branches are resolved, so branches that refer back to it see
// the declaration.
func (r *Resolver) buildInterface(hint string, s *schema.Schema) (string, error) {
	name, reused := r.registry.Reserve(typeName(hint), s)
	if reused {
		return name, nil
	}
	r.cfg.logger.Debug("reserved name", "name", name, "hint", hint, "path", s.Location.Path)

	decl := &model.InterfaceDecl{
		Name:        name,
		Package:     r.cfg.packageNamespace,
		Description: describe(s),
		Strategy:    model.Strategy{Kind: model.StrategyDeduction},
		Source:      s.Location.Path,
	}
	r.registry.Declare(decl)

	for i, branch := range s.OneOf {
		if err := r.addBranch(name, i, branch); err != nil {
			r.registry.Release(s)
			return "", err
		}
	}

	if d := s.Discriminator; d != nil && d.PropertyName != "" {
		decl.Strategy = model.Strategy{Kind: model.StrategyProperty, PropertyName: d.PropertyName}
		for _, m := range d.Mapping {
			ref := m.Ref
			if !strings.Contains(ref, "/") {
				// A bare mapping value names a component.
				ref = r.components.Prefix() + ref
			}
			t, err := r.ResolveOrGenerate("", &schema.Schema{Ref: ref, Location: s.Location})
			if err != nil {
				r.registry.Release(s)
				return "", err
			}
			if t.Kind != model.KindObject {
				r.report(issues.CodeSkippedBranch, severity.SeverityWarning, s, name,
					fmt.Sprintf("discriminator value %q maps to %s, which cannot implement %s; skipped", m.Value, t, name), m.Value)
				continue
			}
			decl.Strategy.Mapping = append(decl.Strategy.Mapping, model.MappingEntry{Value: m.Value, Type: t.Name})
		}
	}
	return name, nil
}

// addBranch registers one oneOf branch with the interface. Referenced and
// titled inline object branches become implementers, as do untitled inline
// ones unless WithUntitledBranches(false) is given; array and scalar
// branches cannot implement an interface and are skipped.
func (r *Resolver) addBranch(iface string, i int, branch *schema.Schema) error {
	target := branch
	hint := ""
	if branch.Ref != "" {
		n, t, err := r.deref(branch)
		if err != nil {
			return err
		}
		hint, target = n, t
	} else {
		title := branch.Title
		if title == "" {
			if !r.cfg.untitledBranches {
				r.report(issues.CodeSkippedBranch, severity.SeverityWarning, branch, iface,
					fmt.Sprintf("oneOf branch %d is inline without a title; skipped", i), nil)
				return nil
			}
			title = "Variant" + strconv.Itoa(i+1)
		}
		hint = iface + "_" + title
	}

	switch target.Shape() {
	case schema.ShapeObject, schema.ShapeComposition:
	default:
		r.report(issues.CodeSkippedBranch, severity.SeverityWarning, branch, iface,
			fmt.Sprintf("oneOf branch %d is %s and cannot implement %s; skipped", i, target.Shape(), iface), nil)
		return nil
	}

	t, err := r.ResolveOrGenerate(hint, target)
	if err != nil {
		return err
	}
	if t.Kind != model.KindObject {
		r.report(issues.CodeSkippedBranch, severity.SeverityWarning, branch, iface,
			fmt.Sprintf("oneOf branch %d resolves to %s and cannot implement %s; skipped", i, t, iface), nil)
		return nil
	}
	if d, ok := r.registry.Lookup(t.Name); ok && d.DeclKind() != model.DeclClass {
		r.report(issues.CodeSkippedBranch, severity.SeverityWarning, branch, iface,
			fmt.Sprintf("oneOf branch %d is the %s %s; skipped", i, d.DeclKind(), t.Name), nil)
		return nil
	}

	r.registry.AddImplementer(iface, t.Name)
	r.cfg.logger.Debug("registered implementer", "interface", iface, "class", t.Name)
	return nil
}

// describe builds the doc string of a declaration or field: the title and
// description, then the external docs reference and the example.
func describe(s *schema.Schema) string {
	var parts []string
	switch {
	case s.Description == "":
		if s.Title != "" {
			parts = append(parts, s.Title)
		}
	case s.Title == "" || s.Title == s.Description:
		parts = append(parts, s.Description)
	default:
		parts = append(parts, s.Title, s.Description)
	}
	if ref := referTo(s.ExternalDocs); ref != "" {
		parts = append(parts, ref)
	}
	if s.HasExample && s.Example != nil {
		parts = append(parts, exampleDoc(s.Example))
	}
	return strings.Join(parts, "\n\n")
}

func referTo(d *schema.ExternalDocs) string {
	switch {
	case d == nil:
		return ""
	case d.URL == "":
		if d.Description == "" {
			return ""
		}
		return "Refer to: " + d.Description
	case d.Description == "" || d.Description == d.URL:
		return "Refer to: " + d.URL
	default:
		return fmt.Sprintf("Refer to: %s (%s)", d.Description, d.URL)
	}
}

// exampleDoc renders an example as indented JSON, falling back to its
// printed form for values JSON cannot hold.
func exampleDoc(v any) string {
	text := fmt.Sprint(v)
	if data, err := json.MarshalIndent(v, "", "  "); err == nil {
		text = string(data)
	}
	return "Example:\n\n\t" + strings.ReplaceAll(text, "\n", "\n\t")
}
