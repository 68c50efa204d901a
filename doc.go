// Package oasmodels turns OpenAPI and JSON Schema documents into model
// declarations and prints them as Go source or as a declaration manifest.
//
// # Overview
//
// The library consists of four primary packages:
//
//   - loader: Read an OAS 2.0, OAS 3.x or JSON Schema document into a schema tree
//   - typegen: Resolve the schema tree into class, enum and interface declarations
//   - model: The declaration types shared by typegen and emitter
//   - emitter: Print declarations as Go source, JSON or YAML
//
// Supported inputs:
//   - OAS 2.0 (Swagger) definitions
//   - OAS 3.0.x and 3.1.x components.schemas
//   - Standalone JSON Schema documents (the root schema and its $defs)
//
// # Installation
//
//	go get github.com/erraggy/oasmodels
//
// # Quick Start
//
//	doc, err := loader.Load("openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := typegen.Generate(doc, typegen.WithPackageNamespace("petstore"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//
//	file, err := emitter.Render(result.Declarations, result.PackageNamespace, emitter.FormatGo)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := emitter.WriteFiles("petstore", file); err != nil {
//		log.Fatal(err)
//	}
//
// # Declarations
//
// Every object schema becomes a class. A string, integer, number or boolean
// schema with an enum becomes an enum. A oneOf becomes an interface whose
// implementers are the classes of its branches; the discriminator, when
// present, selects the decoding strategy. allOf and anyOf members are
// flattened into a single class.
//
// Names follow the schema's position: components keep their own names,
// inline objects are named after their owner and property ("Pet_owner"),
// and inline enums after their property ("StatusEnum").
//
// # Issues
//
// Problems that do not stop generation are reported as issues with a
// severity, a code and the JSON path of the offending schema. Use
// typegen.WithStrict to mark a run with warnings as unsuccessful.
//
// # Command Line
//
// The oasmodels command wraps the packages above:
//
//	oasmodels generate -p petstore -o ./petstore openapi.yaml
//	oasmodels inspect openapi.yaml
//	oasmodels mcp
//
// Defaults can be kept in an oasmodels.yaml project file next to the document.
package oasmodels
