package parser

import "fmt"

// Pos identifica a posição de um nó no arquivo schema.prisma
type Pos struct {
	Line   int
	Column int
}

// Schema representa o documento completo
type Schema struct {
	Datasources []*Datasource
	Generators  []*Generator
	Models      []*Model
	Enums       []*Enum
}

// Datasource representa um bloco datasource
type Datasource struct {
	Name   string
	Fields []*ConfigField
	Pos    Pos
}

// Generator representa um bloco generator
type Generator struct {
	Name   string
	Fields []*ConfigField
	Pos    Pos
}

// ConfigField representa um campo de datasource ou generator (nome = valor)
type ConfigField struct {
	Name  string
	Value Value
	Pos   Pos
}

// Model representa um model (tabela ou coleção)
type Model struct {
	Name            string
	Fields          []*Field
	BlockAttributes []*Attribute // @@id, @@unique, @@index, @@map
	Pos             Pos
}

// Field representa um campo de um model
type Field struct {
	Name       string
	Type       *FieldType
	Attributes []*Attribute // @id, @default, @unique, @relation, ...
	Pos        Pos
}

// FieldType representa o tipo declarado de um campo
type FieldType struct {
	Name             string // String, Int, DateTime, nome de enum ou model, ...
	IsList           bool   // sufixo []
	IsOptional       bool   // sufixo ?
	IsUnsupported    bool   // Unsupported("...")
	UnsupportedValue string
}

// Enum representa um enum
type Enum struct {
	Name   string
	Values []*EnumValue
	Pos    Pos
}

// EnumValue representa um valor de enum
type EnumValue struct {
	Name       string
	Attributes []*Attribute
	Pos        Pos
}

// Attribute representa um atributo de campo (@...) ou de bloco (@@...)
type Attribute struct {
	Name      string // id, default, unique, relation, db.VarChar, ...
	Arguments []*Argument
	Pos       Pos
}

// Argument representa um argumento de atributo, opcionalmente nomeado
type Argument struct {
	Name  string // vazio para argumentos posicionais
	Value Value
	Pos   Pos
}

// Value é um valor do schema: StringValue, IntValue, FloatValue, BoolValue,
// IdentValue, ListValue ou FunctionCall.
type Value interface {
	valueNode()
	String() string
}

// StringValue é um literal string
type StringValue struct{ Value string }

// IntValue é um literal inteiro
type IntValue struct{ Value int64 }

// FloatValue é um literal float
type FloatValue struct{ Value float64 }

// BoolValue é um literal booleano
type BoolValue struct{ Value bool }

// IdentValue é uma referência por identificador (campo, valor de enum)
type IdentValue struct{ Name string }

// ListValue é uma lista de valores ([a, b, c])
type ListValue struct{ Values []Value }

// FunctionCall é uma chamada de função (env("X"), autoincrement(), now(), ...)
type FunctionCall struct {
	Name string
	Args []Value
}

func (*StringValue) valueNode()  {}
func (*IntValue) valueNode()     {}
func (*FloatValue) valueNode()   {}
func (*BoolValue) valueNode()    {}
func (*IdentValue) valueNode()   {}
func (*ListValue) valueNode()    {}
func (*FunctionCall) valueNode() {}

func (v *StringValue) String() string { return fmt.Sprintf("%q", v.Value) }
func (v *IntValue) String() string    { return fmt.Sprintf("%d", v.Value) }
func (v *FloatValue) String() string  { return fmt.Sprintf("%g", v.Value) }
func (v *BoolValue) String() string   { return fmt.Sprintf("%t", v.Value) }
func (v *IdentValue) String() string  { return v.Name }

func (v *ListValue) String() string {
	out := "["
	for i, item := range v.Values {
		if i > 0 {
			out += ", "
		}
		out += item.String()
	}
	return out + "]"
}

func (v *FunctionCall) String() string {
	out := v.Name + "("
	for i, arg := range v.Args {
		if i > 0 {
			out += ", "
		}
		out += arg.String()
	}
	return out + ")"
}

// String retorna o tipo do campo na sintaxe do schema (ex: "String[]", "Int?")
func (t *FieldType) String() string {
	if t == nil {
		return ""
	}
	if t.IsUnsupported {
		return fmt.Sprintf("Unsupported(%q)", t.UnsupportedValue)
	}
	name := t.Name
	if t.IsList {
		name += "[]"
	}
	if t.IsOptional {
		name += "?"
	}
	return name
}

// Attribute lookup helpers usados pelo resolver e pelo formatter.

// FindAttribute retorna o primeiro atributo do campo com o nome dado, ou nil
func (f *Field) FindAttribute(name string) *Attribute {
	for _, attr := range f.Attributes {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// HasAttribute verifica se o campo possui o atributo
func (f *Field) HasAttribute(name string) bool {
	return f.FindAttribute(name) != nil
}

// FindBlockAttribute retorna o primeiro atributo de bloco do model com o nome dado
func (m *Model) FindBlockAttribute(name string) *Attribute {
	for _, attr := range m.BlockAttributes {
		if attr.Name == name {
			return attr
		}
	}
	return nil
}

// FindField retorna o campo do model com o nome dado, ou nil
func (m *Model) FindField(name string) *Field {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Argument retorna o argumento nomeado, ou o posicional de índice idx quando
// não há argumento com esse nome. Retorna nil se não existir.
func (a *Attribute) Argument(name string, idx int) *Argument {
	for _, arg := range a.Arguments {
		if arg.Name == name {
			return arg
		}
	}
	pos := 0
	for _, arg := range a.Arguments {
		if arg.Name != "" {
			continue
		}
		if pos == idx {
			return arg
		}
		pos++
	}
	return nil
}

// StringList extrai uma lista de identificadores/strings de um valor
// (usado em fields: [...], references: [...] e @@index([...]))
func StringList(v Value) []string {
	list, ok := v.(*ListValue)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list.Values {
		switch val := item.(type) {
		case *IdentValue:
			out = append(out, val.Name)
		case *StringValue:
			out = append(out, val.Value)
		}
	}
	return out
}

// Datasource retorna o primeiro datasource do schema, ou nil
func (s *Schema) Datasource() *Datasource {
	if len(s.Datasources) == 0 {
		return nil
	}
	return s.Datasources[0]
}

// Field retorna o valor do campo de configuração com o nome dado, ou nil
func (d *Datasource) Field(name string) Value {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// Field retorna o valor do campo de configuração com o nome dado, ou nil
func (g *Generator) Field(name string) Value {
	for _, f := range g.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}
