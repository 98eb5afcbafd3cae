package codegen

import (
	"bytes"
	"fmt"

	"github.com/carlosnayan/prisma-schema/datamodel"
)

func writeEnum(buf *bytes.Buffer, enum *datamodel.Enum) {
	name := toPascalCase(enum.Name)

	fmt.Fprintf(buf, "// %s maps to the enum %q.\n", name, enum.DBName)
	fmt.Fprintf(buf, "type %s string\n\n", name)

	buf.WriteString("const (\n")
	for _, value := range enum.Values {
		fmt.Fprintf(buf, "\t%s%s %s = %q\n", name, toPascalCase(value), name, value)
	}
	buf.WriteString(")\n\n")

	fmt.Fprintf(buf, "// Values lists every value of %s.\n", name)
	fmt.Fprintf(buf, "func (%s) Values() []string {\n", name)
	fmt.Fprintf(buf, "\treturn []string{")
	for i, value := range enum.Values {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "%q", value)
	}
	buf.WriteString("}\n}\n\n")

	fmt.Fprintf(buf, "// IsValid reports whether v is a declared value of %s.\n", name)
	fmt.Fprintf(buf, "func (v %s) IsValid() bool {\n", name)
	buf.WriteString("\tswitch string(v) {\n\tcase ")
	for i, value := range enum.Values {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "%q", value)
	}
	buf.WriteString(":\n\t\treturn true\n\t}\n\treturn false\n}\n")
}
