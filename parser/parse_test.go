package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.prisma")
	content := `
datasource db {
  provider = "sqlite"
  url      = "file:dev.db"
}

model User {
  id Int @id
}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	schema, errs, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v (%v)", err, errs)
	}
	if len(schema.Models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(schema.Models))
	}
}

func TestParseFileNotFound(t *testing.T) {
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "missing.prisma"))
	if err == nil {
		t.Fatal("expected an error for missing file")
	}
}

func TestParseAccumulatesErrors(t *testing.T) {
	input := `
model User {
  id Int @id
}

model User {
  id Int @id
}

enum Empty {
}
`
	schema, errs, err := Parse(input)
	if err == nil {
		t.Fatal("expected an aggregate error")
	}
	if schema == nil {
		t.Fatal("partial schema must still be returned")
	}
	if len(errs) < 2 {
		t.Fatalf("expected at least 2 errors, got %d: %v", len(errs), errs)
	}
}

func TestFormatErrors(t *testing.T) {
	errs := []*ParseError{
		{Line: 3, Column: 5, Message: "esperado }, encontrado EOF"},
		{Line: 7, Column: 1, Message: "model 'User' duplicado"},
	}

	out := FormatErrors(errs)
	if !strings.Contains(out, "1. esperado }, encontrado EOF na linha 3, coluna 5") {
		t.Errorf("unexpected formatting: %s", out)
	}
	if !strings.Contains(out, "2. model 'User' duplicado na linha 7, coluna 1") {
		t.Errorf("unexpected formatting: %s", out)
	}
}
