package datamodel

import (
	"fmt"
	"strings"

	"github.com/carlosnayan/prisma-schema/internal/schemaerr"
	"github.com/carlosnayan/prisma-schema/parser"
)

// Diagnostic is a resolution problem tied to a model or field
type Diagnostic struct {
	Code    string // Prisma-style error code, P1012 for schema validation
	Model   string
	Field   string
	Message string
	Pos     parser.Pos
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Code)
	b.WriteString(": ")
	b.WriteString(d.Message)
	if d.Model != "" {
		fmt.Fprintf(&b, " (model %q", d.Model)
		if d.Field != "" {
			fmt.Fprintf(&b, ", field %q", d.Field)
		}
		b.WriteString(")")
	}
	if d.Pos.Line > 0 {
		fmt.Fprintf(&b, " at line %d", d.Pos.Line)
	}
	return b.String()
}

// Diagnostics is the ordered list of problems found during resolution
type Diagnostics []*Diagnostic

// HasErrors reports whether any diagnostic was collected
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}

// Err converts the diagnostics into a single validation error, or nil
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(ds))
	for _, d := range ds {
		msgs = append(msgs, d.Error())
	}
	return schemaerr.NewValidationError(strings.Join(msgs, "; "))
}

// addf appends a diagnostic. Resolution problems all carry the schema
// validation code P1012.
func (ds *Diagnostics) addf(pos parser.Pos, model, field, format string, args ...interface{}) {
	*ds = append(*ds, &Diagnostic{
		Code:    "P1012",
		Model:   model,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	})
}
