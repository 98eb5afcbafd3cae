// Package datamodel resolves a parsed schema into a validated data model:
// field kinds are classified, relations are paired and checked, and
// attribute defaults are resolved into typed values.
package datamodel

import (
	"github.com/carlosnayan/prisma-schema/parser"
)

// FieldKind classifies what a model field holds
type FieldKind int

const (
	KindScalar FieldKind = iota
	KindEnum
	KindRelation
	KindUnsupported
)

func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindEnum:
		return "enum"
	case KindRelation:
		return "relation"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// ScalarType is a builtin scalar type of the schema language
type ScalarType string

const (
	ScalarString   ScalarType = "String"
	ScalarInt      ScalarType = "Int"
	ScalarBigInt   ScalarType = "BigInt"
	ScalarFloat    ScalarType = "Float"
	ScalarDecimal  ScalarType = "Decimal"
	ScalarBoolean  ScalarType = "Boolean"
	ScalarDateTime ScalarType = "DateTime"
	ScalarJson     ScalarType = "Json"
	ScalarBytes    ScalarType = "Bytes"
)

// Cardinality describes how two models relate
type Cardinality int

const (
	OneToOne Cardinality = iota
	OneToMany
	ManyToMany
)

func (c Cardinality) String() string {
	switch c {
	case OneToOne:
		return "one-to-one"
	case OneToMany:
		return "one-to-many"
	case ManyToMany:
		return "many-to-many"
	default:
		return "unknown"
	}
}

// DataModel is the resolved form of a schema: every field classified,
// every relation paired, every default typed.
type DataModel struct {
	Models []*Model
	Enums  []*Enum

	modelIndex map[string]*Model
	enumIndex  map[string]*Enum
}

// Model is a resolved model
type Model struct {
	Name    string
	DBName  string // @@map, defaults to Name
	Fields  []*Field
	Primary *PrimaryKey
	Uniques []*UniqueConstraint
	Indexes []*Index

	AST *parser.Model
}

// Field is a resolved model field
type Field struct {
	Name   string
	DBName string // @map, defaults to Name

	Kind     FieldKind
	Scalar   ScalarType // when Kind == KindScalar
	Enum     *Enum      // when Kind == KindEnum
	Relation *Relation  // when Kind == KindRelation

	IsList      bool
	IsOptional  bool
	IsID        bool
	IsUnique    bool
	IsUpdatedAt bool
	// IsForeignKey marks scalar fields that back a relation
	// (listed in some @relation(fields: [...]))
	IsForeignKey bool

	Default    *Default
	NativeType string // @db.* attribute, without the "db." prefix

	AST *parser.Field
}

// Relation describes one side of a resolved relation
type Relation struct {
	// Name is the relation name: the first string argument of @relation,
	// or the alphabetic pairing of the two model names
	Name        string
	To          *Model
	Cardinality Cardinality

	// Fields are the scalar FK fields on the owning model and References
	// are the fields they point to on the target. Only populated on the
	// side that carries @relation(fields: [...], references: [...]).
	Fields     []*Field
	References []*Field

	// Back is the opposite relation field on the target model.
	Back *Field
}

// IsOwning reports whether this side holds the foreign key
func (r *Relation) IsOwning() bool {
	return len(r.Fields) > 0
}

// PrimaryKey describes @id or @@id
type PrimaryKey struct {
	Fields []*Field
}

// UniqueConstraint describes @unique or @@unique
type UniqueConstraint struct {
	Fields []*Field
}

// Index describes @@index
type Index struct {
	Fields []*Field
	DBName string // map: argument, optional
}

// Enum is a resolved enum
type Enum struct {
	Name   string
	DBName string
	Values []string

	AST *parser.Enum
}

// HasValue reports whether the enum declares the value
func (e *Enum) HasValue(name string) bool {
	for _, v := range e.Values {
		if v == name {
			return true
		}
	}
	return false
}

// Model returns the resolved model by name, or nil
func (dm *DataModel) Model(name string) *Model {
	return dm.modelIndex[name]
}

// Enum returns the resolved enum by name, or nil
func (dm *DataModel) Enum(name string) *Enum {
	return dm.enumIndex[name]
}

// Field returns the resolved field by name, or nil
func (m *Model) Field(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ScalarFields returns the model fields that map to database columns
// (scalars and enums, not relation fields)
func (m *Model) ScalarFields() []*Field {
	var out []*Field
	for _, f := range m.Fields {
		if f.Kind == KindScalar || f.Kind == KindEnum {
			out = append(out, f)
		}
	}
	return out
}

// RelationFields returns the model fields that point at other models
func (m *Model) RelationFields() []*Field {
	var out []*Field
	for _, f := range m.Fields {
		if f.Kind == KindRelation {
			out = append(out, f)
		}
	}
	return out
}

// HasUniqueCriterion reports whether the model can be addressed by a
// unique key: an id, a compound id, a unique field or a unique constraint
func (m *Model) HasUniqueCriterion() bool {
	if m.Primary != nil && len(m.Primary.Fields) > 0 {
		return true
	}
	return len(m.Uniques) > 0
}
