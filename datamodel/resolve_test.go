package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosnayan/prisma-schema/parser"
)

func resolve(t *testing.T, input string) (*DataModel, Diagnostics) {
	t.Helper()
	p := parser.NewParser(parser.NewLexer(input))
	schema := p.ParseSchema()
	require.Empty(t, p.Errors(), "schema must parse cleanly")

	dm, diags, _ := Resolve(schema)
	return dm, diags
}

func resolveOK(t *testing.T, input string) *DataModel {
	t.Helper()
	dm, diags := resolve(t, input)
	require.Empty(t, diags, "expected no diagnostics")
	return dm
}

func TestResolveScalarFields(t *testing.T) {
	dm := resolveOK(t, `
model User {
  id      Int      @id
  email   String   @unique
  age     Int?
  scores  Float[]
  joined  DateTime @map("joined_at")
}
`)

	user := dm.Model("User")
	require.NotNil(t, user)

	id := user.Field("id")
	require.NotNil(t, id)
	assert.Equal(t, KindScalar, id.Kind)
	assert.Equal(t, ScalarInt, id.Scalar)
	assert.True(t, id.IsID)

	assert.True(t, user.Field("email").IsUnique)
	assert.True(t, user.Field("age").IsOptional)
	assert.True(t, user.Field("scores").IsList)
	assert.Equal(t, "joined_at", user.Field("joined").DBName)
}

func TestResolveEnumField(t *testing.T) {
	dm := resolveOK(t, `
model User {
  id   Int  @id
  role Role @default(USER)
}

enum Role {
  USER
  ADMIN
}
`)

	role := dm.Model("User").Field("role")
	assert.Equal(t, KindEnum, role.Kind)
	require.NotNil(t, role.Enum)
	assert.Equal(t, "Role", role.Enum.Name)

	require.NotNil(t, role.Default)
	assert.Equal(t, DefaultEnumValue, role.Default.Kind)
	assert.Equal(t, "USER", role.Default.Literal)
}

func TestResolveUnknownType(t *testing.T) {
	_, diags := resolve(t, `
model User {
  id      Int     @id
  profile Profile
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "Profile")
}

func TestResolveModelMap(t *testing.T) {
	dm := resolveOK(t, `
model User {
  id Int @id

  @@map("users")
}
`)

	assert.Equal(t, "users", dm.Model("User").DBName)
}

func TestResolveCompoundPrimaryKey(t *testing.T) {
	dm := resolveOK(t, `
model Membership {
  userId Int
  teamId Int

  @@id([userId, teamId])
}
`)

	pk := dm.Model("Membership").Primary
	require.NotNil(t, pk)
	require.Len(t, pk.Fields, 2)
	assert.Equal(t, "userId", pk.Fields[0].Name)
	assert.Equal(t, "teamId", pk.Fields[1].Name)
}

func TestResolveIDAndCompoundIDConflict(t *testing.T) {
	_, diags := resolve(t, `
model Bad {
  id    Int @id
  other Int

  @@id([id, other])
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "@@id")
}

func TestResolveMissingUniqueCriterion(t *testing.T) {
	_, diags := resolve(t, `
model Log {
  message String
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "unique criterion")
}

func TestResolveOneToMany(t *testing.T) {
	dm := resolveOK(t, `
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

	author := dm.Model("Post").Field("author")
	require.Equal(t, KindRelation, author.Kind)
	rel := author.Relation
	require.NotNil(t, rel)

	assert.Equal(t, OneToMany, rel.Cardinality)
	assert.Equal(t, "User", rel.To.Name)
	assert.True(t, rel.IsOwning())
	require.Len(t, rel.Fields, 1)
	assert.Equal(t, "authorId", rel.Fields[0].Name)
	assert.True(t, rel.Fields[0].IsForeignKey)
	require.Len(t, rel.References, 1)
	assert.Equal(t, "id", rel.References[0].Name)

	posts := dm.Model("User").Field("posts")
	require.NotNil(t, posts.Relation)
	assert.Equal(t, OneToMany, posts.Relation.Cardinality)
	assert.False(t, posts.Relation.IsOwning())
	assert.Same(t, author, posts.Relation.Back)
}

func TestResolveOneToOneRequiresUniqueFK(t *testing.T) {
	_, diags := resolve(t, `
model Profile {
  id     Int  @id
  user   User @relation(fields: [userId], references: [id])
  userId Int
}

model User {
  id      Int      @id
  profile Profile?
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "unique")
}

func TestResolveOneToOne(t *testing.T) {
	dm := resolveOK(t, `
model Profile {
  id     Int  @id
  user   User @relation(fields: [userId], references: [id])
  userId Int  @unique
}

model User {
  id      Int      @id
  profile Profile?
}
`)

	user := dm.Model("Profile").Field("user")
	assert.Equal(t, OneToOne, user.Relation.Cardinality)
}

func TestResolveManyToMany(t *testing.T) {
	dm := resolveOK(t, `
model Post {
  id   Int   @id
  tags Tag[]
}

model Tag {
  id    Int    @id
  posts Post[]
}
`)

	tags := dm.Model("Post").Field("tags")
	assert.Equal(t, ManyToMany, tags.Relation.Cardinality)
	assert.Empty(t, tags.Relation.Fields)
}

func TestResolveMissingOppositeField(t *testing.T) {
	_, diags := resolve(t, `
model Post {
  id       Int  @id
  author   User @relation(fields: [authorId], references: [id])
  authorId Int
}

model User {
  id Int @id
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "opposite relation field")
}

func TestResolveAmbiguousRelation(t *testing.T) {
	_, diags := resolve(t, `
model Message {
  id         Int  @id
  sender     User @relation(fields: [senderId], references: [id])
  senderId   Int
  receiver   User @relation(fields: [receiverId], references: [id])
  receiverId Int
}

model User {
  id       Int       @id
  sent     Message[]
  received Message[]
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "ambiguous")
}

func TestResolveNamedRelations(t *testing.T) {
	dm := resolveOK(t, `
model Message {
  id         Int  @id
  sender     User @relation("sent", fields: [senderId], references: [id])
  senderId   Int
  receiver   User @relation("received", fields: [receiverId], references: [id])
  receiverId Int
}

model User {
  id       Int       @id
  sent     Message[] @relation("sent")
  received Message[] @relation("received")
}
`)

	sender := dm.Model("Message").Field("sender")
	assert.Equal(t, "sent", sender.Relation.Name)
	assert.Equal(t, "sent", sender.Relation.Back.Name)

	receiver := dm.Model("Message").Field("receiver")
	assert.Equal(t, "received", receiver.Relation.Name)
}

func TestResolveSelfRelation(t *testing.T) {
	dm := resolveOK(t, `
model Employee {
  id        Int        @id
  manager   Employee?  @relation("reports", fields: [managerId], references: [id])
  managerId Int?
  reports   Employee[] @relation("reports")
}
`)

	manager := dm.Model("Employee").Field("manager")
	require.NotNil(t, manager.Relation)
	assert.Equal(t, OneToMany, manager.Relation.Cardinality)
	assert.Equal(t, "reports", manager.Relation.Back.Name)
}

func TestResolveFKTypeMismatch(t *testing.T) {
	_, diags := resolve(t, `
model Post {
  id       Int    @id
  author   User   @relation(fields: [authorId], references: [id])
  authorId String
}

model User {
  id    Int    @id
  posts Post[]
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "does not match the type")
}

func TestResolveReferencesNonUnique(t *testing.T) {
	_, diags := resolve(t, `
model Post {
  id          Int    @id
  author      User   @relation(fields: [authorEmail], references: [email])
  authorEmail String
}

model User {
  id    Int    @id
  email String
  posts Post[]
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "unique criterion")
}

func TestResolveUniqueConstraintsAndIndexes(t *testing.T) {
	dm := resolveOK(t, `
model User {
  id        Int    @id
  firstName String
  lastName  String
  email     String @unique

  @@unique([firstName, lastName])
  @@index([lastName], map: "idx_user_last_name")
}
`)

	user := dm.Model("User")
	require.Len(t, user.Uniques, 2)
	assert.Len(t, user.Uniques[0].Fields, 2)

	require.Len(t, user.Indexes, 1)
	assert.Equal(t, "idx_user_last_name", user.Indexes[0].DBName)
}

func TestResolveUpdatedAtRequiresDateTime(t *testing.T) {
	_, diags := resolve(t, `
model User {
  id      Int    @id
  updated String @updatedAt
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "@updatedAt")
}

func TestResolveNativeType(t *testing.T) {
	dm := resolveOK(t, `
model Session {
  id    String @id @db.Uuid
  token String @db.VarChar(255)
}
`)

	session := dm.Model("Session")
	assert.Equal(t, "Uuid", session.Field("id").NativeType)
	assert.Equal(t, "VarChar(255)", session.Field("token").NativeType)
}

func TestDiagnosticError(t *testing.T) {
	_, diags := resolve(t, `
model Log {
  message String
}
`)

	require.Error(t, diags.Err())
	assert.Contains(t, diags[0].Error(), "P1012")
}
