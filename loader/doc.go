// Package loader reads an OpenAPI 2.0/3.x or JSON Schema document into the
// schema graph consumed by the typegen package.
//
// The document is decoded into a yaml.Node tree (JSON is valid YAML), then
// walked once. Every mapping node becomes exactly one *schema.Schema, so YAML
// anchors and aliases keep their shared identity. Property order is preserved,
// and each node records its JSON path and source line/column for issue
// reporting.
//
// # Quick Start
//
//	doc, err := loader.LoadWithOptions(loader.WithFilePath("openapi.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.Components.Names())
//
// # Component Tables
//
// OpenAPI 3.x documents use components.schemas; Swagger 2.0 documents use
// definitions. A plain JSON Schema document uses $defs or definitions, and its
// root schema is added as an inline schema named from its title.
//
// # Inline Response Bodies
//
// Inline (non-$ref) response-body schemas are collected with a name hint built
// from the operationId, or from the method and path when there is none. The
// status code is appended for every status other than 200. Disable this with
// WithInlineResponses(false).
package loader
