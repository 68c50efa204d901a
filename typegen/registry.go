package typegen

import (
	"slices"
	"strconv"
	"sync"

	"github.com/erraggy/oasmodels/model"
	"github.com/erraggy/oasmodels/schema"
)

// Registry is the memoized store binding schema identities to generated
// names. It lives for one generation run.
//
// Identity is pointer identity: two structurally equal schema nodes are two
// entries. A name is bound before the declaration behind it is filled in, so
// a schema that refers back to itself resolves to the reserved name instead
// of recursing.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu sync.Mutex

	nameToSchema map[string]*schema.Schema
	schemaToName map[*schema.Schema]string
	occurrences  map[string]int
	reservedAs   map[string]reservation

	order        []string
	declarations map[string]model.Declaration
	implementers map[string][]string
	implements   map[string][]string
}

// reservation records the hint and occurrence a name was derived from.
type reservation struct {
	hint string
	n    int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nameToSchema: make(map[string]*schema.Schema),
		schemaToName: make(map[*schema.Schema]string),
		occurrences:  make(map[string]int),
		reservedAs:   make(map[string]reservation),
		declarations: make(map[string]model.Declaration),
		implementers: make(map[string][]string),
		implements:   make(map[string][]string),
	}
}

// Reserve returns the name bound to s, binding a new one derived from hint
// when s has none yet. The first use of a hint is unsuffixed; later
// collisions append 1, 2, and so on. reused reports whether s was already
// bound.
func (r *Registry) Reserve(hint string, s *schema.Schema) (name string, reused bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name, ok := r.schemaToName[s]; ok {
		return name, true
	}

	name, n := r.uniqueName(hint)
	r.reservedAs[name] = reservation{hint: hint, n: n}
	r.nameToSchema[name] = s
	r.schemaToName[s] = name
	r.order = append(r.order, name)
	return name, false
}

// uniqueName must be called with r.mu held. It returns the name and the
// occurrence of hint it used.
func (r *Registry) uniqueName(hint string) (string, int) {
	for {
		n := r.occurrences[hint]
		r.occurrences[hint] = n + 1

		name := hint
		if n > 0 {
			name = hint + strconv.Itoa(n)
		}
		if _, taken := r.nameToSchema[name]; !taken {
			return name, n
		}
	}
}

// Release undoes a failed build: it drops the binding of s and every binding
// reserved after it, with their declarations and implementer relations, and
// rewinds the occurrence counters so the released names are handed out
// again. Declarations reserved after s may refer to it, so they go too.
//
// Release is meant for the resolver that reserved s; reservations made by
// other resolvers sharing the registry in the meantime are dropped as well.
func (r *Registry) Release(s *schema.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.schemaToName[s]
	if !ok {
		return
	}
	i := slices.Index(r.order, name)
	if i < 0 {
		return
	}

	released := r.order[i:]
	gone := make(map[string]bool, len(released))
	for _, n := range released {
		gone[n] = true
		if bound, ok := r.nameToSchema[n]; ok {
			delete(r.schemaToName, bound)
		}
		delete(r.nameToSchema, n)
		delete(r.declarations, n)
		delete(r.implementers, n)
		delete(r.implements, n)
		if res, ok := r.reservedAs[n]; ok {
			r.occurrences[res.hint] = min(r.occurrences[res.hint], res.n)
			delete(r.reservedAs, n)
		}
	}
	isGone := func(n string) bool { return gone[n] }
	for iface, classes := range r.implementers {
		r.implementers[iface] = slices.DeleteFunc(classes, isGone)
	}
	for class, ifaces := range r.implements {
		r.implements[class] = slices.DeleteFunc(ifaces, isGone)
	}
	r.order = slices.Clone(r.order[:i])
}

// NameOf returns the name bound to s.
func (r *Registry) NameOf(s *schema.Schema) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.schemaToName[s]
	return name, ok
}

// SchemaOf returns the schema a name was generated from.
func (r *Registry) SchemaOf(name string) (*schema.Schema, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.nameToSchema[name]
	return s, ok
}

// Declare records the declaration for a reserved name. Declaring a name
// that was never reserved is a no-op.
func (r *Registry) Declare(d model.Declaration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nameToSchema[d.DeclName()]; !ok {
		return
	}
	r.declarations[d.DeclName()] = d
}

// Lookup returns the declaration recorded for name.
func (r *Registry) Lookup(name string) (model.Declaration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.declarations[name]
	return d, ok
}

// AddImplementer adds class to the implementer set of iface. The set is
// created on first use, and adding a member twice has no effect.
func (r *Registry) AddImplementer(iface, class string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.implementers[iface], class) {
		r.implementers[iface] = append(r.implementers[iface], class)
	}
	if !slices.Contains(r.implements[class], iface) {
		r.implements[class] = append(r.implements[class], iface)
	}
}

// Implementers returns the implementer set of iface in first-registration order.
func (r *Registry) Implementers(iface string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.implementers[iface])
}

// Len returns the number of bound names.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Declarations returns a snapshot of every declaration in reservation order.
// Class and interface entries are copies carrying the current implementer
// relations, so later registrations do not change an earlier snapshot.
func (r *Registry) Declarations() model.Set {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(model.Set, 0, len(r.order))
	for _, name := range r.order {
		d, ok := r.declarations[name]
		if !ok {
			continue
		}
		switch d := d.(type) {
		case *model.ClassDecl:
			c := *d
			c.Implements = slices.Clone(r.implements[name])
			out = append(out, &c)
		case *model.InterfaceDecl:
			i := *d
			i.Implementers = slices.Clone(r.implementers[name])
			if i.Implementers == nil {
				i.Implementers = []string{}
			}
			out = append(out, &i)
		default:
			out = append(out, d)
		}
	}
	return out
}
