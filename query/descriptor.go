package query

import (
	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/predicate"
)

// Selection projects one field under an output alias.
type Selection struct {
	Field predicate.Field
	Alias string
}

// Projection is the ordered list of output columns of a content query.
type Projection []Selection

// Descriptor is an executable query description: base table, joins,
// AND-composed predicates, projection and optional ordering and window.
// Store executors turn it into SQL.
type Descriptor struct {
	From    string
	Joins   []Join
	Where   []predicate.Predicate
	Select  Projection
	OrderBy []paging.OrderBy
	Window  *paging.PageWindow
}

// IsCount reports whether the descriptor is a count query (no projection).
func (d Descriptor) IsCount() bool {
	return len(d.Select) == 0
}

// WithWindow returns a copy of d restricted to window.
func (d Descriptor) WithWindow(window paging.PageWindow) Descriptor {
	d.Window = &window
	return d
}

// Count returns the count query matching d: same table, joins and
// predicates, without projection, ordering or window.
func (d Descriptor) Count() Descriptor {
	return Descriptor{
		From:  d.From,
		Joins: append([]Join(nil), d.Joins...),
		Where: append([]predicate.Predicate(nil), d.Where...),
	}
}

// CountElided is Count without the joins that cannot change the number of
// matching rows. See ElidableJoins.
func (d Descriptor) CountElided() Descriptor {
	count := d.Count()
	count.Joins = keptJoins(d.Joins, d.Where)
	return count
}

// ElidableJoins returns the joins a count query can drop. A join is elidable
// only when it neither filters nor duplicates rows: it is a LEFT OUTER join
// to at most one row, no predicate references its table, and no remaining
// join hangs off it.
func (d Descriptor) ElidableJoins() []Join {
	kept := keptJoins(d.Joins, d.Where)
	keep := make(map[string]bool, len(kept))
	for _, j := range kept {
		keep[j.Table] = true
	}

	var elidable []Join
	for _, j := range d.Joins {
		if !keep[j.Table] {
			elidable = append(elidable, j)
		}
	}
	return elidable
}

func keptJoins(joins []Join, where []predicate.Predicate) []Join {
	required := predicate.Tables(where)

	keep := make([]bool, len(joins))
	for i := len(joins) - 1; i >= 0; i-- {
		j := joins[i]
		_, filtered := required[j.Table]
		if filtered || j.Kind != LeftOuterJoin || j.Cardinality != ToOne {
			keep[i] = true
			required[j.Left.Table] = struct{}{}
		}
	}

	kept := make([]Join, 0, len(joins))
	for i, j := range joins {
		if keep[i] {
			kept = append(kept, j)
		}
	}
	return kept
}
