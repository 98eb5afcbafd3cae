package datamodel

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLiteralDefaults(t *testing.T) {
	dm := resolveOK(t, `
model Settings {
  id       Int     @id
  name     String  @default("anonymous")
  retries  Int     @default(3)
  ratio    Float   @default(0.5)
  enabled  Boolean @default(true)
  priority Float   @default(1)
}
`)

	settings := dm.Model("Settings")

	name := settings.Field("name").Default
	require.NotNil(t, name)
	assert.Equal(t, DefaultLiteral, name.Kind)
	assert.Equal(t, "anonymous", name.Literal)

	assert.Equal(t, int64(3), settings.Field("retries").Default.Literal)
	assert.Equal(t, 0.5, settings.Field("ratio").Default.Literal)
	assert.Equal(t, true, settings.Field("enabled").Default.Literal)

	// Int literals widen to float on Float fields
	assert.Equal(t, float64(1), settings.Field("priority").Default.Literal)
}

func TestResolveDefaultTypeMismatch(t *testing.T) {
	_, diags := resolve(t, `
model Settings {
  id      Int @id
  retries Int @default("three")
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "does not match field type")
}

func TestResolveDefaultOnListRejected(t *testing.T) {
	_, diags := resolve(t, `
model Settings {
  id   Int      @id
  tags String[] @default("a")
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "list")
}

func TestResolveFunctionDefaults(t *testing.T) {
	dm := resolveOK(t, `
model Record {
  id        Int      @id @default(autoincrement())
  token     String   @default(uuid())
  shortId   String   @default(cuid())
  createdAt DateTime @default(now())
  counter   Int      @default(dbgenerated("nextval('counter_seq')"))
}
`)

	record := dm.Model("Record")
	assert.Equal(t, DefaultAutoincrement, record.Field("id").Default.Kind)
	assert.Equal(t, DefaultUUID, record.Field("token").Default.Kind)
	assert.Equal(t, DefaultCUID, record.Field("shortId").Default.Kind)
	assert.Equal(t, DefaultNow, record.Field("createdAt").Default.Kind)

	counter := record.Field("counter").Default
	assert.Equal(t, DefaultDBGenerated, counter.Kind)
	assert.Equal(t, "nextval('counter_seq')", counter.Expr)
}

func TestResolveAutoincrementOnStringRejected(t *testing.T) {
	_, diags := resolve(t, `
model Record {
  id String @id @default(autoincrement())
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "autoincrement()")
}

func TestResolveUnknownDefaultFunction(t *testing.T) {
	_, diags := resolve(t, `
model Record {
  id String @id @default(nanoid())
}
`)

	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Message, "nanoid")
}

func TestDefaultEvaluable(t *testing.T) {
	evaluable := &Default{Kind: DefaultNow}
	assert.True(t, evaluable.Evaluable())

	dbSide := &Default{Kind: DefaultAutoincrement}
	assert.False(t, dbSide.Evaluable())
}

func TestDefaultValueUUID(t *testing.T) {
	d := &Default{Kind: DefaultUUID}

	v, err := d.Value()
	require.NoError(t, err)

	s, ok := v.(string)
	require.True(t, ok)
	_, err = uuid.Parse(s)
	assert.NoError(t, err, "uuid() must produce a valid UUID")
}

func TestDefaultValueCUID(t *testing.T) {
	d := &Default{Kind: DefaultCUID}

	v, err := d.Value()
	require.NoError(t, err)

	s, ok := v.(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(s, "c"), "cuid values start with 'c'")

	v2, err := d.Value()
	require.NoError(t, err)
	assert.NotEqual(t, v, v2, "consecutive cuid values must differ")
}

func TestDefaultValueNow(t *testing.T) {
	d := &Default{Kind: DefaultNow}

	v, err := d.Value()
	require.NoError(t, err)

	ts, ok := v.(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestDefaultValueAutoincrementNotEvaluable(t *testing.T) {
	d := &Default{Kind: DefaultAutoincrement}

	_, err := d.Value()
	assert.ErrorIs(t, err, ErrNotEvaluable)
}
