package datamodel

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/carlosnayan/prisma-schema/parser"
)

// DefaultKind identifies how a @default value is produced
type DefaultKind int

const (
	DefaultLiteral DefaultKind = iota
	DefaultEnumValue
	DefaultAutoincrement
	DefaultNow
	DefaultUUID
	DefaultCUID
	DefaultDBGenerated
)

func (k DefaultKind) String() string {
	switch k {
	case DefaultLiteral:
		return "literal"
	case DefaultEnumValue:
		return "enum"
	case DefaultAutoincrement:
		return "autoincrement"
	case DefaultNow:
		return "now"
	case DefaultUUID:
		return "uuid"
	case DefaultCUID:
		return "cuid"
	case DefaultDBGenerated:
		return "dbgenerated"
	default:
		return "unknown"
	}
}

// Default is a resolved @default attribute
type Default struct {
	Kind DefaultKind

	// Literal holds the typed literal value (string, int64, float64, bool)
	// for DefaultLiteral, or the enum value name for DefaultEnumValue.
	Literal interface{}

	// Expr holds the raw SQL expression for DefaultDBGenerated.
	Expr string
}

// ErrNotEvaluable is returned by Value for defaults that only the
// database can produce (autoincrement, dbgenerated)
var ErrNotEvaluable = fmt.Errorf("default value is produced by the database")

// Evaluable reports whether Value can produce the default at runtime
func (d *Default) Evaluable() bool {
	switch d.Kind {
	case DefaultAutoincrement, DefaultDBGenerated:
		return false
	default:
		return true
	}
}

// Value evaluates the default: literals return themselves, now() returns
// the current time, uuid() and cuid() generate fresh identifiers.
func (d *Default) Value() (interface{}, error) {
	switch d.Kind {
	case DefaultLiteral, DefaultEnumValue:
		return d.Literal, nil
	case DefaultNow:
		return time.Now().UTC(), nil
	case DefaultUUID:
		return uuid.NewString(), nil
	case DefaultCUID:
		return newCUID(), nil
	default:
		return nil, ErrNotEvaluable
	}
}

var cuidCounter uint64

// newCUID generates a cuid-shaped identifier: "c" prefix, base36 timestamp,
// counter and random blocks. Collision-resistant enough for defaults; not
// a cryptographic identifier.
func newCUID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	count := strconv.FormatUint(atomic.AddUint64(&cuidCounter, 1)%1296, 36)
	random := strconv.FormatInt(rand.Int63n(36*36*36*36), 36)

	var b strings.Builder
	b.WriteByte('c')
	b.WriteString(ts)
	b.WriteString(pad(count, 2))
	b.WriteString(pad(random, 4))
	return b.String()
}

func pad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// resolveDefault turns a @default attribute into a typed Default,
// checking it against the field type
func (r *resolver) resolveDefault(model *Model, field *Field, attr *parser.Attribute) *Default {
	arg := attr.Argument("value", 0)
	if arg == nil {
		return nil // reported by parser.Validate
	}

	if field.IsList {
		r.diags.addf(attr.Pos, model.Name, field.Name, "@default is not supported on list fields")
		return nil
	}

	switch val := arg.Value.(type) {
	case *parser.FunctionCall:
		return r.resolveDefaultFunction(model, field, attr, val)
	case *parser.StringValue:
		if field.Kind == KindScalar {
			switch field.Scalar {
			case ScalarString, ScalarJson, ScalarBytes, ScalarDecimal, ScalarDateTime:
				return &Default{Kind: DefaultLiteral, Literal: val.Value}
			}
		}
	case *parser.IntValue:
		if field.Kind == KindScalar {
			switch field.Scalar {
			case ScalarInt, ScalarBigInt:
				return &Default{Kind: DefaultLiteral, Literal: val.Value}
			case ScalarFloat, ScalarDecimal:
				return &Default{Kind: DefaultLiteral, Literal: float64(val.Value)}
			}
		}
	case *parser.FloatValue:
		if field.Kind == KindScalar && (field.Scalar == ScalarFloat || field.Scalar == ScalarDecimal) {
			return &Default{Kind: DefaultLiteral, Literal: val.Value}
		}
	case *parser.BoolValue:
		if field.Kind == KindScalar && field.Scalar == ScalarBoolean {
			return &Default{Kind: DefaultLiteral, Literal: val.Value}
		}
	case *parser.IdentValue:
		if field.Kind == KindEnum && field.Enum != nil {
			if field.Enum.HasValue(val.Name) {
				return &Default{Kind: DefaultEnumValue, Literal: val.Name}
			}
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"@default value %q is not a value of enum %q", val.Name, field.Enum.Name)
			return nil
		}
	}

	r.diags.addf(attr.Pos, model.Name, field.Name,
		"@default value %s does not match field type %s", arg.Value.String(), field.AST.Type.String())
	return nil
}

func (r *resolver) resolveDefaultFunction(model *Model, field *Field, attr *parser.Attribute, fn *parser.FunctionCall) *Default {
	switch fn.Name {
	case "autoincrement":
		if field.Kind != KindScalar || (field.Scalar != ScalarInt && field.Scalar != ScalarBigInt) {
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"autoincrement() is only allowed on Int and BigInt fields")
			return nil
		}
		return &Default{Kind: DefaultAutoincrement}
	case "now":
		if field.Kind != KindScalar || field.Scalar != ScalarDateTime {
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"now() is only allowed on DateTime fields")
			return nil
		}
		return &Default{Kind: DefaultNow}
	case "uuid":
		if field.Kind != KindScalar || field.Scalar != ScalarString {
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"uuid() is only allowed on String fields")
			return nil
		}
		return &Default{Kind: DefaultUUID}
	case "cuid":
		if field.Kind != KindScalar || field.Scalar != ScalarString {
			r.diags.addf(attr.Pos, model.Name, field.Name,
				"cuid() is only allowed on String fields")
			return nil
		}
		return &Default{Kind: DefaultCUID}
	case "dbgenerated":
		d := &Default{Kind: DefaultDBGenerated}
		if len(fn.Args) > 0 {
			if str, ok := fn.Args[0].(*parser.StringValue); ok {
				d.Expr = str.Value
			}
		}
		return d
	default:
		r.diags.addf(attr.Pos, model.Name, field.Name,
			"unknown function %s() in @default", fn.Name)
		return nil
	}
}
