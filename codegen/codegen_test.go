package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosnayan/prisma-schema/datamodel"
	"github.com/carlosnayan/prisma-schema/parser"
)

func resolveSchema(t *testing.T, input string) *datamodel.DataModel {
	t.Helper()
	p := parser.NewParser(parser.NewLexer(input))
	schema := p.ParseSchema()
	require.Empty(t, p.Errors())

	dm, diags, err := datamodel.Resolve(schema)
	require.NoError(t, err, "diagnostics: %v", diags)
	return dm
}

func TestGenerateModel(t *testing.T) {
	dm := resolveSchema(t, `
model UserAccount {
  id        Int      @id
  email     String   @unique
  name      String?
  createdAt DateTime @map("created_at")
}
`)

	dir := t.TempDir()
	require.NoError(t, Generate(dm, Options{OutputDir: dir}))

	src, err := os.ReadFile(filepath.Join(dir, "models", "user_account.go"))
	require.NoError(t, err)
	code := string(src)

	assert.Contains(t, code, "package models")
	assert.Contains(t, code, "type UserAccount struct")
	assert.Contains(t, code, "\"time\"")
	assert.Regexp(t, `Name\s+\*string`, code)
	assert.Regexp(t, `CreatedAt\s+time\.Time`, code)
	assert.Contains(t, code, "db:\"created_at\"")
	assert.Contains(t, code, "json:\"created_at\"")
}

func TestGenerateEnum(t *testing.T) {
	dm := resolveSchema(t, `
model User {
  id   Int  @id
  role Role
}

enum Role {
  USER
  ADMIN
}
`)

	dir := t.TempDir()
	require.NoError(t, Generate(dm, Options{OutputDir: dir}))

	src, err := os.ReadFile(filepath.Join(dir, "enums", "role.go"))
	require.NoError(t, err)
	code := string(src)

	assert.Contains(t, code, "type Role string")
	assert.Regexp(t, `RoleUSER\s+Role = "USER"`, code)
	assert.Regexp(t, `RoleADMIN\s+Role = "ADMIN"`, code)
	assert.Contains(t, code, "func (v Role) IsValid() bool")
}

func TestGenerateRelationFields(t *testing.T) {
	dm := resolveSchema(t, `
model Post {
  id       Int  @id
  author   User @relation(fields: [authorId], references: [id])
  authorId Int
}

model User {
  id    Int    @id
  posts Post[]
}
`)

	dir := t.TempDir()
	require.NoError(t, Generate(dm, Options{OutputDir: dir}))

	post, err := os.ReadFile(filepath.Join(dir, "models", "post.go"))
	require.NoError(t, err)
	assert.Regexp(t, `Author\s+\*User`, string(post))

	user, err := os.ReadFile(filepath.Join(dir, "models", "user.go"))
	require.NoError(t, err)
	assert.Regexp(t, `Posts\s+\[\]Post`, string(user))
}

func TestGenerateSkipsUnsupportedFields(t *testing.T) {
	dm := resolveSchema(t, `
model Geo {
  id       Int @id
  location Unsupported("geometry")?
}
`)

	dir := t.TempDir()
	require.NoError(t, Generate(dm, Options{OutputDir: dir}))

	src, err := os.ReadFile(filepath.Join(dir, "models", "geo.go"))
	require.NoError(t, err)
	assert.NotContains(t, string(src), "Location")
}

func TestCaseConversion(t *testing.T) {
	assert.Equal(t, "UserAccount", toPascalCase("user_account"))
	assert.Equal(t, "user_account", toSnakeCase("UserAccount"))
	assert.Equal(t, "Id", toPascalCase("id"))
}
