package emitter

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/erraggy/oasmodels/model"
)

// polyField is a class field whose values decode through an interface
// decoder: the field itself, or the elements of a list, set or map.
type polyField struct {
	field *model.Field
	id    string
	elem  model.TypeRef
}

func (p *goPrinter) isInterface(t model.TypeRef) bool {
	return t.Kind == model.KindObject && p.interfaces[t.Name]
}

func (p *goPrinter) polyFields(d *model.ClassDecl, fields []string) []polyField {
	var out []polyField
	for i, fd := range d.Fields {
		if fd.AdditionalProperties || fd.WireName == "" {
			continue
		}
		switch t := fd.Type; {
		case p.isInterface(t):
			out = append(out, polyField{field: fd, id: fields[i], elem: t})
		case t.Kind.IsCollection() && t.Elem != nil && p.isInterface(*t.Elem):
			out = append(out, polyField{field: fd, id: fields[i], elem: *t.Elem})
		}
	}
	return out
}

// jsonMethods prints UnmarshalJSON for classes holding interface-typed
// fields or undeclared properties, and MarshalJSON for the latter.
func (p *goPrinter) jsonMethods(f *jen.File, d *model.ClassDecl, name string, fields []string) {
	poly := p.polyFields(d, fields)
	extra := -1
	for i, fd := range d.Fields {
		if fd.AdditionalProperties {
			extra = i
			break
		}
	}
	if len(poly) == 0 && extra < 0 {
		return
	}

	body := []jen.Code{jen.Type().Id("alias").Id(name)}
	self := jen.Parens(jen.Op("*").Id("alias")).Call(jen.Id("m"))
	if len(poly) == 0 {
		body = append(body, unmarshalCheck(jen.Id("data"), self))
	} else {
		members := []jen.Code{jen.Op("*").Id("alias")}
		for _, pf := range poly {
			members = append(members, jen.Id(pf.id).Add(rawType(pf.field.Type.Kind)).Tag(map[string]string{"json": pf.field.WireName}))
		}
		body = append(body,
			jen.Id("aux").Op(":=").Struct(members...).Values(jen.Dict{jen.Id("alias"): self}),
			unmarshalCheck(jen.Id("data"), jen.Op("&").Id("aux")),
		)
		for _, pf := range poly {
			body = append(body, p.decodePoly(name, pf))
		}
	}
	if extra >= 0 {
		body = append(body, p.decodeExtra(d, name, extra, fields[extra])...)
	}
	body = append(body, jen.Return(jen.Nil()))

	doc := fmt.Sprintf("UnmarshalJSON decodes a %s, passing interface-typed fields to their decoders.", name)
	if extra >= 0 {
		doc = fmt.Sprintf("UnmarshalJSON decodes a %s and keeps undeclared properties in %s.", name, fields[extra])
	}
	f.Line()
	f.Comment(doc)
	f.Func().Params(jen.Id("m").Op("*").Id(name)).Id("UnmarshalJSON").Params(jen.Id("data").Index().Byte()).Error().Block(body...)

	if extra >= 0 {
		marshalExtra(f, name, fields[extra])
	}
}

func unmarshalCheck(data, into jen.Code) jen.Code {
	return jen.If(
		jen.Err().Op(":=").Qual(jsonPkg, "Unmarshal").Call(data, into),
		jen.Err().Op("!=").Nil(),
	).Block(jen.Return(jen.Err()))
}

func rawType(container model.Kind) *jen.Statement {
	raw := jen.Qual(jsonPkg, "RawMessage")
	switch container {
	case model.KindList, model.KindSet:
		return jen.Index().Add(raw)
	case model.KindMap:
		return jen.Map(jen.String()).Add(raw)
	}
	return raw
}

func wrapDecodeErr(msg string, args ...jen.Code) jen.Code {
	args = append([]jen.Code{jen.Lit(msg + ": %w")}, args...)
	args = append(args, jen.Err())
	return jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Qual(fmtPkg, "Errorf").Call(args...)))
}

// decodePoly assigns one interface-typed field from its raw JSON.
func (p *goPrinter) decodePoly(class string, pf polyField) jen.Code {
	decoder := p.decoders[pf.elem.Name]
	raw := jen.Id("aux").Dot(pf.id)
	target := jen.Id("m").Dot(pf.id)
	where := class + "." + pf.field.WireName

	switch pf.field.Type.Kind {
	case model.KindList, model.KindSet:
		return jen.If(raw.Clone().Op("!=").Nil()).Block(
			target.Clone().Op("=").Make(jen.Index().Id(p.typeName(pf.elem.Name)), jen.Lit(0), jen.Len(raw.Clone())),
			jen.For(jen.List(jen.Id("i"), jen.Id("item")).Op(":=").Range().Add(raw.Clone())).Block(
				jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(decoder).Call(jen.Id("item")),
				wrapDecodeErr(where+"[%d]", jen.Id("i")),
				target.Clone().Op("=").Append(target.Clone(), jen.Id("v")),
			),
		)
	case model.KindMap:
		return jen.If(raw.Clone().Op("!=").Nil()).Block(
			target.Clone().Op("=").Make(jen.Map(jen.String()).Id(p.typeName(pf.elem.Name)), jen.Len(raw.Clone())),
			jen.For(jen.List(jen.Id("key"), jen.Id("item")).Op(":=").Range().Add(raw.Clone())).Block(
				jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(decoder).Call(jen.Id("item")),
				wrapDecodeErr(where+"[%q]", jen.Id("key")),
				target.Clone().Index(jen.Id("key")).Op("=").Id("v"),
			),
		)
	}
	return jen.If(jen.Len(raw.Clone()).Op(">").Lit(0).Op("&&").String().Call(raw.Clone()).Op("!=").Lit("null")).Block(
		jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(decoder).Call(raw.Clone()),
		wrapDecodeErr(where),
		target.Clone().Op("=").Id("v"),
	)
}

// decodeExtra collects every property not declared by the class into the
// open map field.
func (p *goPrinter) decodeExtra(d *model.ClassDecl, name string, extra int, id string) []jen.Code {
	var known []jen.Code
	for _, fd := range d.Fields {
		if fd.WireName != "" {
			known = append(known, jen.Lit(fd.WireName))
		}
	}

	elem := model.Any()
	if e := d.Fields[extra].Type.Elem; e != nil {
		elem = *e
	}
	target := jen.Id("m").Dot(id)

	var loop []jen.Code
	if len(known) > 0 {
		loop = append(loop, jen.Switch(jen.Id("key")).Block(jen.Case(known...).Block(jen.Continue())))
	}
	if p.isInterface(elem) {
		loop = append(loop,
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(p.decoders[elem.Name]).Call(jen.Id("item")),
			wrapDecodeErr(name+": property %q", jen.Id("key")),
		)
	} else {
		loop = append(loop,
			jen.Var().Id("v").Add(p.typeOf(elem)),
			jen.If(
				jen.Err().Op(":=").Qual(jsonPkg, "Unmarshal").Call(jen.Id("item"), jen.Op("&").Id("v")),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Qual(fmtPkg, "Errorf").Call(jen.Lit(name+": property %q: %w"), jen.Id("key"), jen.Err()))),
		)
	}
	loop = append(loop,
		jen.If(target.Clone().Op("==").Nil()).Block(
			target.Clone().Op("=").Make(jen.Map(jen.String()).Add(p.typeOf(elem))),
		),
		target.Clone().Index(jen.Id("key")).Op("=").Id("v"),
	)

	return []jen.Code{
		jen.Var().Id("all").Map(jen.String()).Qual(jsonPkg, "RawMessage"),
		unmarshalCheck(jen.Id("data"), jen.Op("&").Id("all")),
		jen.For(jen.List(jen.Id("key"), jen.Id("item")).Op(":=").Range().Id("all")).Block(loop...),
	}
}

// marshalExtra prints MarshalJSON, writing undeclared properties back next
// to the declared ones. Declared properties win on a name clash.
func marshalExtra(f *jen.File, name, id string) {
	extra := jen.Id("m").Dot(id)
	f.Line()
	f.Comment(fmt.Sprintf("MarshalJSON encodes a %s with the entries of %s as top-level properties.", name, id))
	f.Func().Params(jen.Id("m").Id(name)).Id("MarshalJSON").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Type().Id("alias").Id(name),
		jen.List(jen.Id("data"), jen.Err()).Op(":=").Qual(jsonPkg, "Marshal").Call(jen.Id("alias").Call(jen.Id("m"))),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
		jen.If(jen.Len(extra.Clone()).Op("==").Lit(0)).Block(jen.Return(jen.Id("data"), jen.Nil())),
		jen.Var().Id("out").Map(jen.String()).Qual(jsonPkg, "RawMessage"),
		jen.If(
			jen.Err().Op(":=").Qual(jsonPkg, "Unmarshal").Call(jen.Id("data"), jen.Op("&").Id("out")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Nil(), jen.Err())),
		jen.For(jen.List(jen.Id("key"), jen.Id("value")).Op(":=").Range().Add(extra.Clone())).Block(
			jen.If(jen.List(jen.Id("_"), jen.Id("ok")).Op(":=").Id("out").Index(jen.Id("key")), jen.Id("ok")).Block(jen.Continue()),
			jen.List(jen.Id("raw"), jen.Err()).Op(":=").Qual(jsonPkg, "Marshal").Call(jen.Id("value")),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
			jen.Id("out").Index(jen.Id("key")).Op("=").Id("raw"),
		),
		jen.Return(jen.Qual(jsonPkg, "Marshal").Call(jen.Id("out"))),
	)
}
