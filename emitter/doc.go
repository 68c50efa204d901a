// Package emitter prints a model.Set produced by the typegen package.
//
// Three formats are supported:
//
//   - [FormatGo]: a gofmt-formatted Go file built with jennifer. Classes are
//     structs with json and validate tags, enums are named types with
//     constants, and oneOf interfaces are marker interfaces with an
//     Unmarshal function that picks the implementer. Classes holding
//     interface-typed fields decode them through that function, and
//     classes with an additionalProperties map keep undeclared properties
//     in it on decode and write them back on encode.
//   - [FormatJSON] and [FormatYAML]: a [Manifest] of the abstract model,
//     one entry per declaration.
//
// # Quick Start
//
//	result, err := typegen.Generate(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	file, err := emitter.Render(result.Declarations, "models", emitter.FormatGo)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := emitter.WriteFiles("./models", file); err != nil {
//		log.Fatal(err)
//	}
//
// # Defaults
//
// A class with defaulted fields gets an ApplyDefaults method. Structured
// defaults (dates, UUIDs, URIs) are parsed when the method runs and a parse
// failure is returned as an error.
package emitter
