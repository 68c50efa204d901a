// Package typegen resolves a schema graph into a set of abstract type
// declarations: classes, enums and interfaces.
//
// # Quick Start
//
//	doc, err := loader.LoadWithOptions(loader.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := typegen.Generate(doc, typegen.WithPackageNamespace("petstore"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, d := range result.Declarations {
//		fmt.Println(d.DeclKind(), d.DeclName())
//	}
//
// For finer control, create a [Resolver] over a component table and call
// [Resolver.ResolveOrGenerate] for each schema of interest.
//
// # Resolution Rules
//
// A schema's kind is chosen by precedence: "$ref" first, then "enum", then
// allOf/anyOf/oneOf, then type and format.
//   - Objects and allOf/anyOf compositions become a ClassDecl. Members are
//     flattened into the owner in member order; the first property with a
//     given wire name wins.
//   - oneOf becomes an InterfaceDecl. Referenced and inline object branches
//     are registered as implementers; array and scalar branches are skipped.
//   - Enums become an EnumDecl with upper snake case constants.
//   - Arrays wrap their item type in a List, or a Set when uniqueItems is set.
//   - An object with nothing declared about its contents is untyped (Any).
//
// Each distinct schema node is declared at most once. Names come from the
// component name, or from the owner and property for inline schemas, and are
// made unique with a numeric suffix ("Pet", "Pet1", ...). Names are reserved
// before a declaration is filled in, so cyclic schemas terminate.
//
// # Errors and Issues
//
// A $ref that cannot be resolved is fatal and returns an
// *oaserrors.ReferenceError. Properties that match no field kind and
// defaults that do not fit their field are skipped and reported as [Issue]
// values with the schema's path and source location.
package typegen
