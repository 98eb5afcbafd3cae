package codegen

import (
	"bytes"
	"fmt"

	"github.com/carlosnayan/prisma-schema/datamodel"
)

// goScalarTypes maps schema scalar types to Go types.
var goScalarTypes = map[datamodel.ScalarType]string{
	datamodel.ScalarString:   "string",
	datamodel.ScalarInt:      "int",
	datamodel.ScalarBigInt:   "int64",
	datamodel.ScalarFloat:    "float64",
	datamodel.ScalarDecimal:  "float64",
	datamodel.ScalarBoolean:  "bool",
	datamodel.ScalarDateTime: "time.Time",
	datamodel.ScalarJson:     "json.RawMessage",
	datamodel.ScalarBytes:    "[]byte",
}

// nonPointerOptionals are Go types that are already nullable.
var nonPointerOptionals = map[string]bool{
	"json.RawMessage": true,
	"[]byte":          true,
}

func writeModel(buf *bytes.Buffer, model *datamodel.Model) {
	writeModelImports(buf, model)

	name := toPascalCase(model.Name)
	fmt.Fprintf(buf, "// %s maps to the table %q.\n", name, model.DBName)
	fmt.Fprintf(buf, "type %s struct {\n", name)

	for _, field := range model.Fields {
		goType := fieldGoType(field)
		if goType == "" {
			continue
		}
		fmt.Fprintf(buf, "\t%s %s `json:%q db:%q`\n",
			toPascalCase(field.Name), goType, toSnakeCase(field.Name), field.DBName)
	}

	fmt.Fprintf(buf, "}\n")
}

func writeModelImports(buf *bytes.Buffer, model *datamodel.Model) {
	needTime, needJSON := false, false
	for _, field := range model.Fields {
		if field.Kind != datamodel.KindScalar {
			continue
		}
		switch field.Scalar {
		case datamodel.ScalarDateTime:
			needTime = true
		case datamodel.ScalarJson:
			needJSON = true
		}
	}

	if !needTime && !needJSON {
		return
	}

	buf.WriteString("import (\n")
	if needJSON {
		buf.WriteString("\t\"encoding/json\"\n")
	}
	if needTime {
		buf.WriteString("\t\"time\"\n")
	}
	buf.WriteString(")\n\n")
}

// fieldGoType maps a resolved field to its Go type. Unsupported fields
// are skipped.
func fieldGoType(field *datamodel.Field) string {
	var goType string

	switch field.Kind {
	case datamodel.KindScalar:
		goType = goScalarTypes[field.Scalar]
	case datamodel.KindEnum:
		// Enum constants live in their own package, the column value
		// travels as a string
		goType = "string"
	case datamodel.KindRelation:
		goType = toPascalCase(field.Relation.To.Name)
		if field.IsList {
			return "[]" + goType
		}
		return "*" + goType
	default:
		return ""
	}

	if field.IsList {
		return "[]" + goType
	}
	if field.IsOptional && !nonPointerOptionals[goType] {
		return "*" + goType
	}
	return goType
}
