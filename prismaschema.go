// Package prismaschema parses, validates and resolves Prisma schema
// files.
//
// The library is organized in layers:
//   - parser lexes and parses schema.prisma into an AST
//   - datamodel resolves the AST into typed models, enums and relations
//   - config loads prisma.conf and expands environment variables
//   - datasource resolves connection URLs and checks connectivity
//   - formatter pretty-prints a parsed schema
//   - codegen emits Go structs and enums from a resolved schema
//   - watcher re-runs a callback when the schema file changes
//
// Example usage:
//
//	schema, errs, err := parser.ParseFile("prisma/schema.prisma")
//	if err != nil {
//	    log.Fatal(parser.FormatErrors(errs))
//	}
//
//	dm, diags, err := datamodel.Resolve(schema)
//	if err != nil {
//	    log.Fatal(diags)
//	}
//
//	for _, model := range dm.Models {
//	    fmt.Println(model.Name, "->", model.DBName)
//	}
//
// For more examples and documentation, visit:
// https://github.com/carlosnayan/prisma-schema
package prismaschema

const Version = "0.1.0"
