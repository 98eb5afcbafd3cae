// Package codegen emits Go source for the models and enums of a
// resolved schema.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/carlosnayan/prisma-schema/datamodel"
	"github.com/carlosnayan/prisma-schema/internal/logger"
)

// Options configures the output of Generate.
type Options struct {
	OutputDir string // directory for the generated packages
	Package   string // base package name, defaults to "db"
}

// Generate writes one Go file per model and per enum under
// OutputDir/models and OutputDir/enums.
func Generate(dm *datamodel.DataModel, opts Options) error {
	if opts.Package == "" {
		opts.Package = "db"
	}

	modelsDir := filepath.Join(opts.OutputDir, "models")
	if err := os.MkdirAll(modelsDir, 0755); err != nil {
		return fmt.Errorf("failed to create models directory: %w", err)
	}

	for _, model := range dm.Models {
		src, err := renderFile("models", func(buf *bytes.Buffer) {
			writeModel(buf, model)
		})
		if err != nil {
			return fmt.Errorf("failed to generate model %s: %w", model.Name, err)
		}
		path := filepath.Join(modelsDir, toSnakeCase(model.Name)+".go")
		if err := os.WriteFile(path, src, 0644); err != nil {
			return err
		}
		logger.Debug("generated %s", path)
	}

	if len(dm.Enums) > 0 {
		enumsDir := filepath.Join(opts.OutputDir, "enums")
		if err := os.MkdirAll(enumsDir, 0755); err != nil {
			return fmt.Errorf("failed to create enums directory: %w", err)
		}

		for _, enum := range dm.Enums {
			src, err := renderFile("enums", func(buf *bytes.Buffer) {
				writeEnum(buf, enum)
			})
			if err != nil {
				return fmt.Errorf("failed to generate enum %s: %w", enum.Name, err)
			}
			path := filepath.Join(enumsDir, toSnakeCase(enum.Name)+".go")
			if err := os.WriteFile(path, src, 0644); err != nil {
				return err
			}
			logger.Debug("generated %s", path)
		}
	}

	return nil
}

// renderFile assembles a generated file and runs it through gofmt.
func renderFile(pkg string, body func(*bytes.Buffer)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated from the Prisma schema. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	body(&buf)

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("generated code does not compile: %w", err)
	}
	return src, nil
}

// toPascalCase converts snake_case to PascalCase.
func toPascalCase(s string) string {
	parts := strings.Split(s, "_")
	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}
	return result.String()
}

// toSnakeCase converts PascalCase to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
