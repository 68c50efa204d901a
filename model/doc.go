// Package model defines the target-agnostic type declarations produced by the
// typegen package.
//
// A run yields a set of [Declaration] values: [ClassDecl] for object schemas
// (including flattened allOf/anyOf compositions), [EnumDecl] for enum schemas,
// and [InterfaceDecl] for oneOf unions. Fields refer to other declarations by
// name through a [TypeRef], so the set is self-contained and acyclic even when
// the source schemas are not.
//
// Printers (see the emitter package) consume this model; nothing in it is tied
// to a particular output language.
package model
