package sqlboiler

import (
	"fmt"
	"strings"

	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/strmangle"

	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/predicate"
	"github.com/nrfta/filterpage-go/query"
)

// dialect is the PostgreSQL dialect, as generated by sqlboiler's psql driver.
var dialect = drivers.Dialect{
	LQ:                   '"',
	RQ:                   '"',
	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

// NewQuery creates a PostgreSQL query from mods.
func NewQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)
	return q
}

// ContentQueryMods converts a content descriptor into query mods:
//   - Select → qm.Select(`"table"."column" AS "alias"`, ...)
//   - From / Joins → qm.From, qm.LeftOuterJoin / qm.InnerJoin
//   - Where → one qm.Where per predicate (AND-composed)
//   - OrderBy → qm.OrderBy("col1 DESC, col2")
//   - Window → qm.Offset(n) (when > 0), qm.Limit(n)
func ContentQueryMods(d query.Descriptor) []qm.QueryMod {
	mods := make([]qm.QueryMod, 0, len(d.Joins)+len(d.Where)+5)

	columns := make([]string, len(d.Select))
	for i, sel := range d.Select {
		columns[i] = quoteField(sel.Field) + " AS " + quote(sel.Alias)
	}
	mods = append(mods, qm.Select(columns...))
	mods = append(mods, fromMods(d)...)

	if len(d.OrderBy) > 0 {
		mods = append(mods, qm.OrderBy(buildOrderByClause(d.OrderBy)))
	}

	if d.Window != nil {
		if d.Window.Offset > 0 {
			mods = append(mods, qm.Offset(d.Window.Offset))
		}
		if d.Window.Limit > 0 {
			mods = append(mods, qm.Limit(d.Window.Limit))
		}
	}

	return mods
}

// CountQueryMods converts a count descriptor into query mods. Projection,
// ordering and window are never part of a count query.
func CountQueryMods(d query.Descriptor) []qm.QueryMod {
	return fromMods(d)
}

func fromMods(d query.Descriptor) []qm.QueryMod {
	mods := []qm.QueryMod{qm.From(quote(d.From))}

	for _, j := range d.Joins {
		clause := fmt.Sprintf("%s ON %s = %s", quote(j.Table), quoteField(j.Left), quoteField(j.Right))
		switch j.Kind {
		case query.InnerJoin:
			mods = append(mods, qm.InnerJoin(clause))
		default:
			mods = append(mods, qm.LeftOuterJoin(clause))
		}
	}

	for _, p := range d.Where {
		mods = append(mods, whereMod(p))
	}

	return mods
}

func whereMod(p predicate.Predicate) qm.QueryMod {
	return qm.Where(fmt.Sprintf("%s %s ?", quoteField(p.Field), p.Op), p.Value)
}

// buildOrderByClause constructs an ORDER BY clause from OrderBy directives.
// Assumes len(orderBy) > 0 (caller must verify).
//
// Example:
//
//	[]OrderBy{
//	    {Column: "member.age", Desc: true},
//	    {Column: "member.id", Desc: false},
//	}
//	→ `"member"."age" DESC, "member"."id"`
func buildOrderByClause(orderBy []paging.OrderBy) string {
	parts := make([]string, len(orderBy))
	for i, o := range orderBy {
		if o.Desc {
			parts[i] = quote(o.Column) + " DESC"
		} else {
			parts[i] = quote(o.Column)
		}
	}
	return strings.Join(parts, ", ")
}

func quote(ident string) string {
	return strmangle.IdentQuote(dialect.LQ, dialect.RQ, ident)
}

func quoteField(f predicate.Field) string {
	return quote(f.String())
}
