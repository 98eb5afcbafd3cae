package parser

import (
	"fmt"
	"os"
	"strings"
)

// ParseFile parseia um arquivo schema.prisma e retorna a AST
func ParseFile(filePath string) (*Schema, []*ParseError, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao ler arquivo: %w", err)
	}
	return Parse(string(data))
}

// Parse parseia uma string contendo o schema e retorna a AST.
// Erros de sintaxe e de validação são acumulados: a AST parcial é sempre
// retornada para que os chamadores possam reportar tudo de uma vez.
func Parse(input string) (*Schema, []*ParseError, error) {
	lexer := NewLexer(input)
	p := NewParser(lexer)

	schema := p.ParseSchema()

	errs := p.Errors()
	errs = append(errs, Validate(schema)...)

	if len(errs) > 0 {
		return schema, errs, fmt.Errorf("%d erro(s) encontrado(s) durante o parsing", len(errs))
	}

	return schema, nil, nil
}

// ParseAndValidate parseia e valida um schema, retornando um único erro
// agregado quando há problemas
func ParseAndValidate(input string) (*Schema, error) {
	schema, errs, err := Parse(input)
	if err != nil {
		return schema, fmt.Errorf("erros de validação:\n%s", FormatErrors(errs))
	}
	return schema, nil
}

// FormatErrors formata os erros para exibição numerada
func FormatErrors(errs []*ParseError) string {
	var b strings.Builder
	for i, err := range errs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}
