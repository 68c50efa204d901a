// Package schema defines the in-memory schema graph consumed by the type
// resolver.
//
// A [Schema] is one node of an OpenAPI or JSON Schema document: an object,
// array, enum, primitive, composition (allOf/anyOf/oneOf) or reference. Nodes
// are produced by the loader package and are read-only afterwards. Identity
// matters: two structurally identical nodes are still two schemas, and the
// resolver keys its name registry on the *Schema pointer.
//
// A [Components] table maps component names to their nodes and dereferences
// local "$ref" strings. A [Document] bundles the table with the inline
// response-body schemas that should also become declarations.
package schema
