package typegen

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasmodels/internal/issues"
	"github.com/erraggy/oasmodels/internal/naming"
	"github.com/erraggy/oasmodels/internal/severity"
	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/oaserrors"
	"github.com/erraggy/oasmodels/schema"
	"github.com/go-openapi/inflect"
)

// anonymousName is used when a hint normalizes to nothing.
const anonymousName = "Anonymous"

// Resolver turns schema nodes into type references, generating declarations
// into its Registry as it goes. It holds the state of one generation run.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	components *schema.Components
	registry   *Registry
	cfg        *config
	issues     []issues.Issue
}

// NewResolver returns a resolver that dereferences $ref nodes against components.
func NewResolver(components *schema.Components, opts ...Option) (*Resolver, error) {
	if components == nil {
		return nil, &oaserrors.ConfigError{Option: "components", Message: "typegen: component table is required"}
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return newResolver(components, cfg), nil
}

func newResolver(components *schema.Components, cfg *config) *Resolver {
	return &Resolver{
		components: components,
		registry:   NewRegistry(),
		cfg:        cfg,
	}
}

// Registry returns the registry the resolver declares into.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Declarations returns a snapshot of everything generated so far.
func (r *Resolver) Declarations() model.Set {
	return r.registry.Declarations()
}

// Issues returns the recoverable problems recorded so far.
func (r *Resolver) Issues() []issues.Issue {
	return append([]issues.Issue(nil), r.issues...)
}

// ResolveOrGenerate returns the type that represents s. Objects,
// compositions and enums become declarations named from hint, or reuse the
// declaration already generated for s. Arrays wrap their item type.
// Primitives need no declaration. A node that matches no kind returns
// KindUnresolved and is left for the caller to skip.
//
// A $ref that cannot be resolved returns an *oaserrors.ReferenceError.
func (r *Resolver) ResolveOrGenerate(hint string, s *schema.Schema) (model.TypeRef, error) {
	if s == nil {
		return model.Primitive(model.KindUnresolved), nil
	}

	switch s.Shape() {
	case schema.ShapeReference:
		name, target, err := r.deref(s)
		if err != nil {
			return model.TypeRef{}, err
		}
		return r.ResolveOrGenerate(name, target)

	case schema.ShapeEnum:
		name := r.buildEnum(hint, s)
		return model.Declared(model.KindEnum, name), nil

	case schema.ShapeComposition:
		var (
			name string
			err  error
		)
		if len(s.OneOf) > 0 {
			name, err = r.buildInterface(hint, s)
		} else {
			name, err = r.buildClass(hint, s)
		}
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Declared(model.KindObject, name), nil

	case schema.ShapeArray:
		return r.resolveArray(hint, s)

	case schema.ShapeObject:
		if s.IsOpenObject() {
			return model.Any(), nil
		}
		name, err := r.buildClass(hint, s)
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Declared(model.KindObject, name), nil

	default:
		return model.Primitive(Dispatch(s)), nil
	}
}

// resolveArray wraps the item type in a list, or a set when items are unique.
// Arrays without items hold untyped values.
func (r *Resolver) resolveArray(hint string, s *schema.Schema) (model.TypeRef, error) {
	elem := model.Any()
	if s.Items != nil {
		var err error
		elem, err = r.ResolveOrGenerate(r.itemHint(hint), s.Items)
		if err != nil {
			return model.TypeRef{}, err
		}
		if elem.Innermost().Kind == model.KindUnresolved {
			return model.Primitive(model.KindUnresolved), nil
		}
	}
	if s.UniqueItems {
		return model.SetOf(elem), nil
	}
	return model.ListOf(elem), nil
}

func (r *Resolver) itemHint(hint string) string {
	if !r.cfg.singularItems || hint == "" {
		return hint
	}
	i := strings.LastIndexByte(hint, '_')
	return hint[:i+1] + inflect.Singularize(hint[i+1:])
}

// deref follows a chain of $ref nodes to the first node that is not a
// reference, returning the component name it was found under.
func (r *Resolver) deref(s *schema.Schema) (string, *schema.Schema, error) {
	var (
		name string
		seen = make(map[*schema.Schema]bool)
	)
	for cur := s; ; {
		if cur.Ref == "" {
			return name, cur, nil
		}
		if seen[cur] {
			return "", nil, &oaserrors.ReferenceError{Ref: s.Ref, Path: s.Location.Path, IsCircular: true}
		}
		seen[cur] = true

		if schema.IsExternal(cur.Ref) {
			return "", nil, &oaserrors.ReferenceError{Ref: cur.Ref, Path: cur.Location.Path, IsExternal: true}
		}
		n, target, ok := r.components.Lookup(cur.Ref)
		if !ok || target == nil {
			return "", nil, &oaserrors.ReferenceError{Ref: cur.Ref, Path: cur.Location.Path}
		}
		r.cfg.logger.Debug("followed reference", "ref", cur.Ref, "component", n)
		name, cur = n, target
	}
}

// typeName normalizes a hint into a type identifier.
func typeName(hint string) string {
	if name := naming.ToTypeIdentifier(hint); name != "" {
		return name
	}
	return anonymousName
}

// report records a recoverable problem found at s.
func (r *Resolver) report(code issues.Code, sev severity.Severity, s *schema.Schema, title, msg string, value any) {
	issue := issues.Issue{
		Code:     code,
		Path:     s.Location.Path,
		Title:    title,
		Message:  msg,
		Severity: sev,
		Value:    value,
		Line:     s.Location.Line,
		Column:   s.Location.Column,
		File:     r.cfg.sourcePath,
	}

	r.issues = append(r.issues, issue)

	attrs := []any{"code", string(code), "path", issue.Path}
	if title != "" {
		attrs = append(attrs, "title", title)
	}
	switch sev {
	case severity.SeverityInfo:
		r.cfg.logger.Info(msg, attrs...)
	default:
		r.cfg.logger.Warn(msg, attrs...)
	}
}

func (r *Resolver) reportUnsupported(s *schema.Schema, title, what string) {
	r.report(issues.CodeUnsupportedShape, severity.SeverityWarning, s, title,
		fmt.Sprintf("%s matches no field kind (type %q, format %q); skipped", what, s.Type, s.Format), nil)
}
