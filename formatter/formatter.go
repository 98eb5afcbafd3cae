// Package formatter formata um schema parseado de volta para texto,
// com campos alinhados em colunas como o `prisma format`.
package formatter

import (
	"fmt"
	"strings"

	"github.com/carlosnayan/prisma-schema/parser"
)

// Format formata um schema completo. Os blocos mantêm a ordem de
// declaração do arquivo original.
func Format(schema *parser.Schema) string {
	var result strings.Builder

	for _, ds := range schema.Datasources {
		result.WriteString(formatConfigBlock("datasource", ds.Name, ds.Fields))
		result.WriteString("\n")
	}

	for _, gen := range schema.Generators {
		result.WriteString(formatConfigBlock("generator", gen.Name, gen.Fields))
		result.WriteString("\n")
	}

	for _, model := range schema.Models {
		result.WriteString(formatModel(model))
		result.WriteString("\n")
	}

	for _, enum := range schema.Enums {
		result.WriteString(formatEnum(enum))
		result.WriteString("\n")
	}

	return strings.TrimSpace(result.String()) + "\n"
}

func formatConfigBlock(keyword, name string, fields []*parser.ConfigField) string {
	var result strings.Builder
	result.WriteString(keyword)
	result.WriteString(" ")
	result.WriteString(name)
	result.WriteString(" {\n")

	// Alinhar os nomes dos campos
	width := 0
	for _, field := range fields {
		if len(field.Name) > width {
			width = len(field.Name)
		}
	}

	for _, field := range fields {
		result.WriteString(fmt.Sprintf("  %-*s = %s\n", width, field.Name, formatValue(field.Value)))
	}

	result.WriteString("}\n")
	return result.String()
}

func formatModel(model *parser.Model) string {
	var result strings.Builder
	result.WriteString("model ")
	result.WriteString(model.Name)
	result.WriteString(" {\n")

	// Larguras das colunas de nome e tipo, para alinhar os atributos
	nameWidth, typeWidth := 0, 0
	for _, field := range model.Fields {
		if len(field.Name) > nameWidth {
			nameWidth = len(field.Name)
		}
		if field.Type != nil && len(field.Type.String()) > typeWidth {
			typeWidth = len(field.Type.String())
		}
	}

	for _, field := range model.Fields {
		result.WriteString(formatField(field, nameWidth, typeWidth))
	}

	if len(model.BlockAttributes) > 0 {
		result.WriteString("\n")
		for _, attr := range model.BlockAttributes {
			result.WriteString("  ")
			result.WriteString(formatAttribute(attr, "@@"))
			result.WriteString("\n")
		}
	}

	result.WriteString("}\n")
	return result.String()
}

func formatField(field *parser.Field, nameWidth, typeWidth int) string {
	var result strings.Builder

	typeStr := ""
	if field.Type != nil {
		typeStr = field.Type.String()
	}

	if len(field.Attributes) == 0 {
		// Sem atributos não há coluna seguinte para alinhar
		result.WriteString(fmt.Sprintf("  %-*s %s\n", nameWidth, field.Name, typeStr))
		return result.String()
	}

	result.WriteString(fmt.Sprintf("  %-*s %-*s", nameWidth, field.Name, typeWidth, typeStr))
	for _, attr := range field.Attributes {
		result.WriteString(" ")
		result.WriteString(formatAttribute(attr, "@"))
	}
	result.WriteString("\n")
	return result.String()
}

func formatAttribute(attr *parser.Attribute, prefix string) string {
	var result strings.Builder
	result.WriteString(prefix)
	result.WriteString(attr.Name)

	if len(attr.Arguments) > 0 {
		args := make([]string, 0, len(attr.Arguments))
		for _, arg := range attr.Arguments {
			if arg.Name != "" {
				args = append(args, fmt.Sprintf("%s: %s", arg.Name, formatValue(arg.Value)))
			} else {
				args = append(args, formatValue(arg.Value))
			}
		}
		result.WriteString("(")
		result.WriteString(strings.Join(args, ", "))
		result.WriteString(")")
	}

	return result.String()
}

func formatEnum(enum *parser.Enum) string {
	var result strings.Builder
	result.WriteString("enum ")
	result.WriteString(enum.Name)
	result.WriteString(" {\n")

	for _, value := range enum.Values {
		result.WriteString("  ")
		result.WriteString(value.Name)
		for _, attr := range value.Attributes {
			result.WriteString(" ")
			result.WriteString(formatAttribute(attr, "@"))
		}
		result.WriteString("\n")
	}

	result.WriteString("}\n")
	return result.String()
}

// formatValue formata um valor do schema. Os tipos de valor já sabem se
// imprimir; a lista é reformatada para manter espaçamento consistente.
func formatValue(v parser.Value) string {
	if list, ok := v.(*parser.ListValue); ok {
		items := make([]string, 0, len(list.Values))
		for _, item := range list.Values {
			items = append(items, formatValue(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	if v == nil {
		return ""
	}
	return v.String()
}
