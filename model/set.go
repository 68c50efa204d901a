package model

// Set is the ordered output of one generation run.
type Set []Declaration

// Lookup returns the declaration with the given name.
func (s Set) Lookup(name string) (Declaration, bool) {
	for _, d := range s {
		if d.DeclName() == name {
			return d, true
		}
	}
	return nil, false
}

// Class returns the named ClassDecl, or nil.
func (s Set) Class(name string) *ClassDecl {
	d, _ := s.Lookup(name)
	c, _ := d.(*ClassDecl)
	return c
}

// Enum returns the named EnumDecl, or nil.
func (s Set) Enum(name string) *EnumDecl {
	d, _ := s.Lookup(name)
	e, _ := d.(*EnumDecl)
	return e
}

// Interface returns the named InterfaceDecl, or nil.
func (s Set) Interface(name string) *InterfaceDecl {
	d, _ := s.Lookup(name)
	i, _ := d.(*InterfaceDecl)
	return i
}

// Count returns how many declarations of kind k the set holds.
func (s Set) Count(k DeclKind) int {
	n := 0
	for _, d := range s {
		if d.DeclKind() == k {
			n++
		}
	}
	return n
}

// Names returns the declaration names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.DeclName()
	}
	return names
}
