package parser

import (
	"strings"
	"testing"
)

func validate(t *testing.T, input string) []*ParseError {
	t.Helper()
	p := NewParser(NewLexer(input))
	schema := p.ParseSchema()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return Validate(schema)
}

func assertError(t *testing.T, errs []*ParseError, substr string) {
	t.Helper()
	for _, err := range errs {
		if strings.Contains(err.Message, substr) {
			return
		}
	}
	t.Errorf("expected an error containing %q, got %v", substr, errs)
}

func TestValidateValidSchema(t *testing.T) {
	input := `
datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

model User {
  id    Int    @id
  email String @unique
}
`
	errs := validate(t, input)
	if len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestValidateMissingProvider(t *testing.T) {
	input := `
datasource db {
  url = "postgresql://localhost/app"
}
`
	assertError(t, validate(t, input), "provider")
}

func TestValidateInvalidProvider(t *testing.T) {
	input := `
datasource db {
  provider = "oracle"
  url      = "oracle://localhost/app"
}
`
	assertError(t, validate(t, input), "provider inválido")
}

func TestValidateDuplicateModel(t *testing.T) {
	input := `
model User {
  id Int @id
}

model User {
  id Int @id
}
`
	assertError(t, validate(t, input), "duplicado")
}

func TestValidateDuplicateField(t *testing.T) {
	input := `
model User {
  id Int @id
  id String
}
`
	assertError(t, validate(t, input), "campo 'id' duplicado")
}

func TestValidateEnumModelConflict(t *testing.T) {
	input := `
model Role {
  id Int @id
}

enum Role {
  USER
}
`
	assertError(t, validate(t, input), "conflita com model")
}

func TestValidateEmptyEnum(t *testing.T) {
	input := `
enum Empty {
}
`
	assertError(t, validate(t, input), "não tem valores")
}

func TestValidateDefaultWithoutValue(t *testing.T) {
	input := `
model User {
  id   Int    @id
  name String @default
}
`
	assertError(t, validate(t, input), "@default")
}

func TestValidateRelationFieldsWithoutReferences(t *testing.T) {
	input := `
model Post {
  id       Int  @id
  author   User @relation(fields: [authorId])
  authorId Int
}

model User {
  id    Int    @id
  posts Post[]
}
`
	assertError(t, validate(t, input), "@relation")
}

func TestIsScalarType(t *testing.T) {
	for _, name := range ScalarTypes() {
		if !IsScalarType(name) {
			t.Errorf("expected %s to be a scalar type", name)
		}
	}
	if IsScalarType("User") {
		t.Error("User must not be a scalar type")
	}
}
