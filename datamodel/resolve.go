package datamodel

import (
	"sort"
	"strings"

	"github.com/carlosnayan/prisma-schema/parser"
)

// Resolve turns a parsed schema into a DataModel. All problems found are
// collected as diagnostics; the partially resolved model is returned
// alongside them so callers can report everything at once.
func Resolve(schema *parser.Schema) (*DataModel, Diagnostics, error) {
	r := &resolver{
		schema: schema,
		dm: &DataModel{
			modelIndex: make(map[string]*Model),
			enumIndex:  make(map[string]*Enum),
		},
	}

	r.resolveEnums()
	r.declareModels()
	r.resolveFields()
	r.resolveBlockAttributes()
	r.resolvePrimaryKeys()
	r.resolveRelations()
	r.checkUniqueCriteria()

	return r.dm, r.diags, r.diags.Err()
}

type resolver struct {
	schema *parser.Schema
	dm     *DataModel
	diags  Diagnostics
}

func (r *resolver) resolveEnums() {
	for _, src := range r.schema.Enums {
		enum := &Enum{
			Name:   src.Name,
			DBName: src.Name,
			AST:    src,
		}
		for _, v := range src.Values {
			enum.Values = append(enum.Values, v.Name)
		}
		r.dm.Enums = append(r.dm.Enums, enum)
		r.dm.enumIndex[enum.Name] = enum
	}
}

func (r *resolver) declareModels() {
	for _, src := range r.schema.Models {
		model := &Model{
			Name:   src.Name,
			DBName: src.Name,
			AST:    src,
		}
		r.dm.Models = append(r.dm.Models, model)
		r.dm.modelIndex[model.Name] = model
	}
}

func (r *resolver) resolveFields() {
	for _, model := range r.dm.Models {
		for _, src := range model.AST.Fields {
			field := r.resolveField(model, src)
			model.Fields = append(model.Fields, field)
		}
	}
}

func (r *resolver) resolveField(model *Model, src *parser.Field) *Field {
	field := &Field{
		Name:   src.Name,
		DBName: src.Name,
		AST:    src,
	}

	if src.Type != nil {
		field.IsList = src.Type.IsList
		field.IsOptional = src.Type.IsOptional
		r.classifyFieldType(model, field, src.Type)
	} else {
		// Missing type is reported by parser.Validate
		field.Kind = KindUnsupported
	}

	for _, attr := range src.Attributes {
		switch {
		case attr.Name == "id":
			field.IsID = true
		case attr.Name == "unique":
			field.IsUnique = true
		case attr.Name == "updatedAt":
			field.IsUpdatedAt = true
			if field.Kind != KindScalar || field.Scalar != ScalarDateTime {
				r.diags.addf(attr.Pos, model.Name, field.Name,
					"@updatedAt can only be used on DateTime fields")
			}
		case attr.Name == "map":
			if arg := attr.Argument("", 0); arg != nil {
				if str, ok := arg.Value.(*parser.StringValue); ok {
					field.DBName = str.Value
				}
			}
		case attr.Name == "default":
			field.Default = r.resolveDefault(model, field, attr)
		case strings.HasPrefix(attr.Name, "db."):
			field.NativeType = strings.TrimPrefix(attr.Name, "db.")
			if len(attr.Arguments) > 0 {
				field.NativeType += "(" + formatNativeArgs(attr.Arguments) + ")"
			}
		}
	}

	if field.IsID && field.IsOptional {
		r.diags.addf(src.Pos, model.Name, field.Name, "id fields cannot be optional")
	}
	if field.IsID && field.IsList {
		r.diags.addf(src.Pos, model.Name, field.Name, "id fields cannot be lists")
	}

	return field
}

func formatNativeArgs(args []*parser.Argument) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.Value.String())
	}
	return strings.Join(parts, ", ")
}

func (r *resolver) classifyFieldType(model *Model, field *Field, t *parser.FieldType) {
	if t.IsUnsupported {
		field.Kind = KindUnsupported
		return
	}

	switch {
	case parser.IsScalarType(t.Name):
		field.Kind = KindScalar
		field.Scalar = ScalarType(t.Name)
	case r.dm.enumIndex[t.Name] != nil:
		field.Kind = KindEnum
		field.Enum = r.dm.enumIndex[t.Name]
	case r.dm.modelIndex[t.Name] != nil:
		field.Kind = KindRelation
	default:
		r.diags.addf(field.AST.Pos, model.Name, field.Name,
			"type %q is neither a builtin type, nor refers to another model or enum", t.Name)
		field.Kind = KindUnsupported
	}
}

func (r *resolver) resolveBlockAttributes() {
	for _, model := range r.dm.Models {
		for _, attr := range model.AST.BlockAttributes {
			switch attr.Name {
			case "map":
				if arg := attr.Argument("", 0); arg != nil {
					if str, ok := arg.Value.(*parser.StringValue); ok {
						model.DBName = str.Value
					}
				}
			case "unique":
				if fields := r.lookupFieldList(model, attr, 0); fields != nil {
					model.Uniques = append(model.Uniques, &UniqueConstraint{Fields: fields})
				}
			case "index":
				fields := r.lookupFieldList(model, attr, 0)
				if fields == nil {
					continue
				}
				idx := &Index{Fields: fields}
				if arg := attr.Argument("map", -1); arg != nil {
					if str, ok := arg.Value.(*parser.StringValue); ok {
						idx.DBName = str.Value
					}
				}
				model.Indexes = append(model.Indexes, idx)
			}
		}

		// Unique individual fields also form a unique criterion
		for _, field := range model.Fields {
			if field.IsUnique {
				model.Uniques = append(model.Uniques, &UniqueConstraint{Fields: []*Field{field}})
			}
		}
	}
}

// lookupFieldList resolves the field-name list of a block attribute
// (@@id([a, b]), @@unique([...]), @@index([...])) into resolved fields
func (r *resolver) lookupFieldList(model *Model, attr *parser.Attribute, idx int) []*Field {
	arg := attr.Argument("fields", idx)
	if arg == nil {
		r.diags.addf(attr.Pos, model.Name, "", "@@%s requires a list of fields", attr.Name)
		return nil
	}
	names := parser.StringList(arg.Value)
	if len(names) == 0 {
		r.diags.addf(attr.Pos, model.Name, "", "@@%s requires a non-empty list of fields", attr.Name)
		return nil
	}

	fields := make([]*Field, 0, len(names))
	for _, name := range names {
		field := model.Field(name)
		if field == nil {
			r.diags.addf(attr.Pos, model.Name, "",
				"@@%s references unknown field %q", attr.Name, name)
			return nil
		}
		fields = append(fields, field)
	}
	return fields
}

func (r *resolver) resolvePrimaryKeys() {
	for _, model := range r.dm.Models {
		var idFields []*Field
		for _, field := range model.Fields {
			if field.IsID {
				idFields = append(idFields, field)
			}
		}
		if len(idFields) > 1 {
			r.diags.addf(model.AST.Pos, model.Name, "",
				"at most one field can be marked @id; use @@id for compound keys")
		}

		compound := model.AST.FindBlockAttribute("id")
		if compound != nil && len(idFields) > 0 {
			r.diags.addf(compound.Pos, model.Name, "",
				"model cannot have both @id and @@id")
			continue
		}

		if compound != nil {
			if fields := r.lookupFieldList(model, compound, 0); fields != nil {
				model.Primary = &PrimaryKey{Fields: fields}
			}
			continue
		}
		if len(idFields) > 0 {
			model.Primary = &PrimaryKey{Fields: idFields[:1]}
		}
	}
}

func (r *resolver) resolveRelations() {
	for _, model := range r.dm.Models {
		for _, field := range model.Fields {
			if field.Kind != KindRelation {
				continue
			}
			r.resolveRelationField(model, field)
		}
	}
}

func (r *resolver) resolveRelationField(model *Model, field *Field) {
	target := r.dm.modelIndex[field.AST.Type.Name]
	rel := &Relation{To: target}
	field.Relation = rel

	attr := field.AST.FindAttribute("relation")
	rel.Name = relationName(attr)

	back := r.findBackRelation(model, field, target, rel.Name)
	if back == nil {
		r.diags.addf(field.AST.Pos, model.Name, field.Name,
			"relation to %q is missing an opposite relation field on model %q",
			target.Name, target.Name)
	} else {
		rel.Back = back
		rel.Cardinality = cardinality(field, back)
	}

	if rel.Name == "" {
		rel.Name = canonicalRelationName(model.Name, target.Name)
	}

	if attr != nil {
		r.resolveForeignKey(model, field, target, rel, attr)
	}

	if back != nil {
		r.checkRelationPair(model, field, target, back, rel)
	}
}

// relationName extracts the explicit relation name from @relation("name", ...)
func relationName(attr *parser.Attribute) string {
	if attr == nil {
		return ""
	}
	if arg := attr.Argument("name", 0); arg != nil {
		if str, ok := arg.Value.(*parser.StringValue); ok {
			return str.Value
		}
	}
	return ""
}

func canonicalRelationName(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "To" + b
}

// findBackRelation locates the opposite relation field on the target model
func (r *resolver) findBackRelation(model *Model, field *Field, target *Model, name string) *Field {
	var candidates []*Field
	for _, g := range target.Fields {
		if g.Kind != KindRelation {
			continue
		}
		if g.AST.Type.Name != model.Name {
			continue
		}
		if model == target && g == field {
			continue // self-relation: a field does not pair with itself
		}
		if relationName(g.AST.FindAttribute("relation")) != name {
			continue
		}
		candidates = append(candidates, g)
	}

	if len(candidates) > 1 {
		r.diags.addf(field.AST.Pos, model.Name, field.Name,
			"ambiguous relation to %q: give each relation a name with @relation(\"name\")",
			target.Name)
		// Deterministic pick keeps resolution going after the diagnostic
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

func cardinality(a, b *Field) Cardinality {
	switch {
	case a.IsList && b.IsList:
		return ManyToMany
	case a.IsList || b.IsList:
		return OneToMany
	default:
		return OneToOne
	}
}

// resolveForeignKey resolves @relation(fields: [...], references: [...])
// into scalar FK fields and their referenced counterparts
func (r *resolver) resolveForeignKey(model *Model, field *Field, target *Model, rel *Relation, attr *parser.Attribute) {
	fieldsArg := attr.Argument("fields", -1)
	refsArg := attr.Argument("references", -1)
	if fieldsArg == nil || refsArg == nil {
		// Presence of one without the other is reported by parser.Validate
		return
	}

	fkNames := parser.StringList(fieldsArg.Value)
	refNames := parser.StringList(refsArg.Value)
	if len(fkNames) != len(refNames) {
		r.diags.addf(attr.Pos, model.Name, field.Name,
			"@relation must have the same number of 'fields' and 'references'")
		return
	}

	for _, name := range fkNames {
		fk := model.Field(name)
		if fk == nil {
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"@relation references unknown field %q on model %q", name, model.Name)
			return
		}
		if fk.Kind != KindScalar && fk.Kind != KindEnum {
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"@relation field %q must be a scalar or enum field", name)
			return
		}
		rel.Fields = append(rel.Fields, fk)
	}

	for _, name := range refNames {
		ref := target.Field(name)
		if ref == nil {
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"@relation references unknown field %q on model %q", name, target.Name)
			return
		}
		rel.References = append(rel.References, ref)
	}

	// FK scalar types must line up with what they reference
	for i := range rel.Fields {
		fk, ref := rel.Fields[i], rel.References[i]
		if fk.Kind != ref.Kind || fk.Scalar != ref.Scalar || fk.Enum != ref.Enum {
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"@relation field %q (%s) does not match the type of %s.%s",
				fk.Name, scalarLabel(fk), target.Name, ref.Name)
		}
		fk.IsForeignKey = true
	}

	// The referenced fields must form a unique criterion on the target
	if !referencesUniqueCriterion(target, rel.References) {
		r.diags.addf(attr.Pos, model.Name, field.Name,
			"@relation references fields on model %q that are not a unique criterion", target.Name)
	}
}

func scalarLabel(f *Field) string {
	if f.Kind == KindEnum && f.Enum != nil {
		return f.Enum.Name
	}
	return string(f.Scalar)
}

// referencesUniqueCriterion reports whether refs exactly cover the target's
// primary key, a unique constraint, or a single unique/id field
func referencesUniqueCriterion(target *Model, refs []*Field) bool {
	if len(refs) == 1 && (refs[0].IsID || refs[0].IsUnique) {
		return true
	}
	if target.Primary != nil && sameFieldSet(target.Primary.Fields, refs) {
		return true
	}
	for _, uc := range target.Uniques {
		if sameFieldSet(uc.Fields, refs) {
			return true
		}
	}
	return false
}

func sameFieldSet(a, b []*Field) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[*Field]bool, len(a))
	for _, f := range a {
		set[f] = true
	}
	for _, f := range b {
		if !set[f] {
			return false
		}
	}
	return true
}

// checkRelationPair validates constraints that involve both sides of a
// relation. Symmetric problems are reported once, from the lexically
// first side, so the caller does not see every error twice.
func (r *resolver) checkRelationPair(model *Model, field *Field, target *Model, back *Field, rel *Relation) {
	first := model.Name < target.Name ||
		(model.Name == target.Name && field.Name < back.Name)
	if !first {
		return
	}

	backAttr := back.AST.FindAttribute("relation")
	backOwns := backAttr != nil && backAttr.Argument("fields", -1) != nil
	owns := rel.IsOwning()

	switch rel.Cardinality {
	case ManyToMany:
		// Implicit m-n relations carry no FK on either side
		if owns || backOwns {
			r.diags.addf(field.AST.Pos, model.Name, field.Name,
				"many-to-many relations must not specify fields/references")
		}
	default:
		if owns && backOwns {
			r.diags.addf(field.AST.Pos, model.Name, field.Name,
				"only one side of a relation can specify fields/references")
		}
		if !owns && !backOwns {
			r.diags.addf(field.AST.Pos, model.Name, field.Name,
				"relation between %q and %q must specify fields/references on one side",
				model.Name, target.Name)
		}
	}

	if rel.Cardinality == OneToOne && owns && !fkFieldsUnique(model, rel.Fields) {
		r.diags.addf(field.AST.Pos, model.Name, field.Name,
			"one-to-one relations require the foreign key fields to be unique")
	}
	if rel.Cardinality == OneToOne && backOwns {
		backRel := back.Relation
		if backRel != nil && backRel.IsOwning() && !fkFieldsUnique(target, backRel.Fields) {
			r.diags.addf(back.AST.Pos, target.Name, back.Name,
				"one-to-one relations require the foreign key fields to be unique")
		}
	}

	// A one-to-many relation carries the FK on the singular side
	if rel.Cardinality == OneToMany {
		singular, singularModel := field, model
		if field.IsList {
			singular, singularModel = back, target
		}
		singularAttr := singular.AST.FindAttribute("relation")
		if singularAttr == nil || singularAttr.Argument("fields", -1) == nil {
			r.diags.addf(singular.AST.Pos, singularModel.Name, singular.Name,
				"the singular side of a one-to-many relation must specify fields/references")
		}
	}
}

func fkFieldsUnique(model *Model, fks []*Field) bool {
	if len(fks) == 1 && (fks[0].IsUnique || fks[0].IsID) {
		return true
	}
	if model.Primary != nil && sameFieldSet(model.Primary.Fields, fks) {
		return true
	}
	for _, uc := range model.Uniques {
		if sameFieldSet(uc.Fields, fks) {
			return true
		}
	}
	return false
}

func (r *resolver) checkUniqueCriteria() {
	for _, model := range r.dm.Models {
		if !model.HasUniqueCriterion() {
			r.diags.addf(model.AST.Pos, model.Name, "",
				"model needs a unique criterion: add @id, @@id, @unique or @@unique")
		}
	}
}
