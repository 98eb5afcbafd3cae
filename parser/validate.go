package parser

import "fmt"

// validProviders são os providers de datasource suportados
var validProviders = map[string]bool{
	"postgresql": true,
	"postgres":   true,
	"mysql":      true,
	"sqlite":     true,
}

// scalarTypes são os tipos escalares builtin do schema
var scalarTypes = map[string]bool{
	"String":   true,
	"Int":      true,
	"BigInt":   true,
	"Float":    true,
	"Decimal":  true,
	"Boolean":  true,
	"DateTime": true,
	"Json":     true,
	"Bytes":    true,
}

// IsScalarType verifica se o nome é um tipo escalar builtin
func IsScalarType(name string) bool {
	return scalarTypes[name]
}

// ScalarTypes retorna a lista de tipos escalares builtin
func ScalarTypes() []string {
	return []string{
		"String", "Int", "BigInt", "Float", "Decimal",
		"Boolean", "DateTime", "Json", "Bytes",
	}
}

// Validate faz as validações sintáticas do schema: nomes duplicados,
// providers obrigatórios e forma dos atributos. A validação semântica
// (relações, defaults, unicidade) fica no pacote datamodel.
func Validate(schema *Schema) []*ParseError {
	v := &validator{schema: schema}
	v.run()
	return v.errors
}

type validator struct {
	schema *Schema
	errors []*ParseError
}

func (v *validator) errorAt(pos Pos, format string, args ...interface{}) {
	v.errors = append(v.errors, &ParseError{
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *validator) run() {
	for _, ds := range v.schema.Datasources {
		v.validateDatasource(ds)
	}
	for _, gen := range v.schema.Generators {
		v.validateGenerator(gen)
	}

	modelNames := make(map[string]bool)
	for _, model := range v.schema.Models {
		if modelNames[model.Name] {
			v.errorAt(model.Pos, "model '%s' duplicado", model.Name)
		}
		modelNames[model.Name] = true
		v.validateModel(model)
	}

	enumNames := make(map[string]bool)
	for _, enum := range v.schema.Enums {
		if enumNames[enum.Name] {
			v.errorAt(enum.Pos, "enum '%s' duplicado", enum.Name)
		}
		if modelNames[enum.Name] {
			v.errorAt(enum.Pos, "enum '%s' conflita com model de mesmo nome", enum.Name)
		}
		enumNames[enum.Name] = true
		v.validateEnum(enum)
	}
}

func (v *validator) validateDatasource(ds *Datasource) {
	provider := ds.Field("provider")
	if provider == nil {
		v.errorAt(ds.Pos, "datasource '%s' deve ter um campo 'provider'", ds.Name)
		return
	}
	if str, ok := provider.(*StringValue); ok {
		if !validProviders[str.Value] {
			v.errorAt(ds.Pos, "provider inválido no datasource '%s': %s", ds.Name, str.Value)
		}
	}
	if ds.Field("url") == nil {
		v.errorAt(ds.Pos, "datasource '%s' deve ter um campo 'url'", ds.Name)
	}
}

func (v *validator) validateGenerator(gen *Generator) {
	if gen.Field("provider") == nil {
		v.errorAt(gen.Pos, "generator '%s' deve ter um campo 'provider'", gen.Name)
	}
}

func (v *validator) validateModel(model *Model) {
	if model.Name == "" {
		v.errorAt(model.Pos, "model sem nome")
		return
	}

	fieldNames := make(map[string]bool)
	for _, field := range model.Fields {
		if fieldNames[field.Name] {
			v.errorAt(field.Pos, "campo '%s' duplicado no model '%s'", field.Name, model.Name)
		}
		fieldNames[field.Name] = true

		if field.Type == nil || (field.Type.Name == "" && !field.Type.IsUnsupported) {
			v.errorAt(field.Pos, "campo '%s' no model '%s' não tem tipo", field.Name, model.Name)
			continue
		}

		for _, attr := range field.Attributes {
			v.validateFieldAttribute(attr, model, field)
		}
	}
}

func (v *validator) validateFieldAttribute(attr *Attribute, model *Model, field *Field) {
	switch attr.Name {
	case "default":
		if len(attr.Arguments) == 0 {
			v.errorAt(attr.Pos, "@default no campo '%s' do model '%s' deve ter um valor", field.Name, model.Name)
		}
	case "relation":
		// No lado "um" de relações um-para-muitos o atributo pode não ter
		// argumentos. Se tiver fields, precisa de references, e vice-versa.
		hasFields := attr.Argument("fields", -1) != nil
		hasReferences := attr.Argument("references", -1) != nil
		if hasFields != hasReferences {
			v.errorAt(attr.Pos, "@relation no campo '%s' do model '%s' deve ter ambos 'fields' e 'references' ou nenhum", field.Name, model.Name)
		}
	case "map":
		if len(attr.Arguments) == 0 {
			v.errorAt(attr.Pos, "@map no campo '%s' do model '%s' deve ter um nome", field.Name, model.Name)
		}
	}
}

func (v *validator) validateEnum(enum *Enum) {
	if enum.Name == "" {
		v.errorAt(enum.Pos, "enum sem nome")
		return
	}
	if len(enum.Values) == 0 {
		v.errorAt(enum.Pos, "enum '%s' não tem valores", enum.Name)
	}

	valueNames := make(map[string]bool)
	for _, value := range enum.Values {
		if valueNames[value.Name] {
			v.errorAt(value.Pos, "valor '%s' duplicado no enum '%s'", value.Name, enum.Name)
		}
		valueNames[value.Name] = true
	}
}
