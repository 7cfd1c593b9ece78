package query

import (
	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/predicate"
)

// JoinKind is the SQL join type.
type JoinKind string

const (
	// LeftOuterJoin keeps rows of the left side without a match.
	LeftOuterJoin JoinKind = "LEFT"

	// InnerJoin drops rows of the left side without a match.
	InnerJoin JoinKind = "INNER"
)

// Cardinality describes how many right-side rows can match one left-side row.
type Cardinality int

const (
	// ToOne: at most one match per left row (foreign key to a primary key).
	ToOne Cardinality = iota

	// ToMany: any number of matches per left row.
	ToMany
)

// Join attaches Table to the graph on Left = Right, where Left belongs to a
// table already in the graph and Right to Table.
type Join struct {
	Kind        JoinKind
	Table       string
	Left        predicate.Field
	Right       predicate.Field
	Cardinality Cardinality
}

// Graph is the root table plus the joins reachable from it, in join order.
type Graph struct {
	Root  string
	Joins []Join
}

// Tables returns the tables of the graph in join order, root first.
func (g Graph) Tables() []string {
	tables := make([]string, 0, len(g.Joins)+1)
	tables = append(tables, g.Root)
	for _, j := range g.Joins {
		tables = append(tables, j.Table)
	}
	return tables
}

// Reachable reports whether table is the root or one of the joined tables.
func (g Graph) Reachable(table string) bool {
	if table == g.Root {
		return true
	}
	for _, j := range g.Joins {
		if j.Table == table {
			return true
		}
	}
	return false
}

// Validate checks that every join hangs off a table that is already part of
// the graph and that no table is joined twice.
func (g Graph) Validate() error {
	if g.Root == "" {
		return &paging.QueryConstructionError{Reason: "join graph has no root table"}
	}

	seen := map[string]bool{g.Root: true}
	for _, j := range g.Joins {
		if j.Kind != LeftOuterJoin && j.Kind != InnerJoin {
			return &paging.QueryConstructionError{Reason: "unsupported join kind " + string(j.Kind), Field: j.Table}
		}
		if seen[j.Table] {
			return &paging.QueryConstructionError{Reason: "table joined twice", Field: j.Table}
		}
		if !seen[j.Left.Table] {
			return &paging.QueryConstructionError{Reason: "join condition references a table not yet joined", Field: j.Left.String()}
		}
		if j.Right.Table != j.Table {
			return &paging.QueryConstructionError{Reason: "join condition must reference the joined table", Field: j.Right.String()}
		}
		seen[j.Table] = true
	}

	return nil
}
