// Package predicate provides composable filter conditions for dynamic queries.
//
// A Predicate is a single condition bound to one column and one comparison.
// Optional criteria are turned into predicates through the presence-aware
// constructors (TextEq, IntGte, IntLte) and Collect, which drops the absent
// ones. The resulting slice is combined with AND by the query assembler, so
// its order does not change the matched rows.
//
// Example usage:
//
//	preds := predicate.Collect(
//	    predicate.TextEq(usernameField, cond.Username),
//	    predicate.IntGte(ageField, cond.AgeGoe),
//	)
package predicate

import (
	"strings"

	"github.com/aarondl/null/v8"
)

// Op is the comparison of a predicate. It is the variant tag.
type Op string

// Supported comparisons.
const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Field identifies a column of a table taking part in a query.
type Field struct {
	Table  string
	Column string
}

// NewField returns the field for table.column.
func NewField(table, column string) Field {
	return Field{Table: table, Column: column}
}

// String returns the qualified "table.column" name.
func (f Field) String() string {
	return f.Table + "." + f.Column
}

// Predicate is one boolean condition: Field Op Value.
type Predicate struct {
	Field Field
	Op    Op
	Value any
}

// Eq builds field = value.
func Eq(field Field, value any) Predicate {
	return Predicate{Field: field, Op: OpEq, Value: value}
}

// Gte builds field >= value.
func Gte(field Field, value any) Predicate {
	return Predicate{Field: field, Op: OpGte, Value: value}
}

// Lte builds field <= value.
func Lte(field Field, value any) Predicate {
	return Predicate{Field: field, Op: OpLte, Value: value}
}

// Optional is a predicate that may be absent because its input was unset.
type Optional struct {
	pred    Predicate
	present bool
}

// Some wraps a predicate that is always present.
func Some(p Predicate) Optional {
	return Optional{pred: p, present: true}
}

// None is the absent predicate.
func None() Optional {
	return Optional{}
}

// Get returns the predicate and whether it is present.
func (o Optional) Get() (Predicate, bool) {
	return o.pred, o.present
}

// TextEq is field = value when value is set and has a non-space character.
// The comparison uses value as given; case sensitivity is the collation's.
func TextEq(field Field, value null.String) Optional {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return None()
	}
	return Some(Eq(field, value.String))
}

// IntEq is field = value when value is set.
func IntEq(field Field, value null.Int64) Optional {
	if !value.Valid {
		return None()
	}
	return Some(Eq(field, value.Int64))
}

// IntGte is the inclusive lower bound field >= value when value is set.
func IntGte(field Field, value null.Int) Optional {
	if !value.Valid {
		return None()
	}
	return Some(Gte(field, value.Int))
}

// IntLte is the inclusive upper bound field <= value when value is set.
func IntLte(field Field, value null.Int) Optional {
	if !value.Valid {
		return None()
	}
	return Some(Lte(field, value.Int))
}

// Collect returns the present predicates in argument order.
// The result is never nil.
func Collect(opts ...Optional) []Predicate {
	preds := make([]Predicate, 0, len(opts))
	for _, o := range opts {
		if p, ok := o.Get(); ok {
			preds = append(preds, p)
		}
	}
	return preds
}

// Tables returns the set of tables referenced by preds.
func Tables(preds []Predicate) map[string]struct{} {
	tables := make(map[string]struct{}, len(preds))
	for _, p := range preds {
		tables[p.Field.Table] = struct{}{}
	}
	return tables
}
