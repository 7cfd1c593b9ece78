// Package query assembles filter predicates, a join graph and a projection
// into executable query descriptors, and bridges them to paginators.
//
// The assembler validates everything it can before any store round-trip:
// every projected, filtered or ordered field must live on a table reachable
// through the join graph, otherwise a *paging.QueryConstructionError is
// returned.
//
// Example usage:
//
//	d, err := query.Assemble(graph, preds, projection,
//	    query.WithOrderBy(paging.OrderBy{Column: "member.id"}),
//	)
//	fetcher := query.NewFetcher(executor, d, query.CountWithJoins)
//	page, err := offset.New[Row](fetcher).Paginate(ctx, window)
package query

import (
	"strings"

	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/predicate"
)

// Option configures an assembled descriptor.
type Option func(*Descriptor)

// WithWindow attaches offset/limit to the content query.
func WithWindow(window paging.PageWindow) Option {
	return func(d *Descriptor) {
		d.Window = &window
	}
}

// WithOrderBy sets the ordering of the content query. Without it the order
// is whatever the store returns, which is not stable across pages.
func WithOrderBy(orderBy ...paging.OrderBy) Option {
	return func(d *Descriptor) {
		d.OrderBy = append([]paging.OrderBy(nil), orderBy...)
	}
}

// Assemble builds the content query descriptor. All joins of graph are
// applied whether or not a predicate touches the joined table, and preds are
// combined with AND (an empty set filters nothing).
func Assemble(
	graph Graph,
	preds []predicate.Predicate,
	projection Projection,
	opts ...Option,
) (Descriptor, error) {
	if err := graph.Validate(); err != nil {
		return Descriptor{}, err
	}

	if len(projection) == 0 {
		return Descriptor{}, &paging.QueryConstructionError{Reason: "empty projection"}
	}

	aliases := make(map[string]bool, len(projection))
	for _, sel := range projection {
		if !graph.Reachable(sel.Field.Table) {
			return Descriptor{}, &paging.QueryConstructionError{
				Reason: "projected field not reachable from join graph",
				Field:  sel.Field.String(),
			}
		}
		if sel.Alias == "" {
			return Descriptor{}, &paging.QueryConstructionError{Reason: "projection without alias", Field: sel.Field.String()}
		}
		if aliases[sel.Alias] {
			return Descriptor{}, &paging.QueryConstructionError{Reason: "duplicate projection alias", Field: sel.Alias}
		}
		aliases[sel.Alias] = true
	}

	for _, p := range preds {
		if !graph.Reachable(p.Field.Table) {
			return Descriptor{}, &paging.QueryConstructionError{
				Reason: "predicate field not reachable from join graph",
				Field:  p.Field.String(),
			}
		}
	}

	d := Descriptor{
		From:   graph.Root,
		Joins:  append([]Join(nil), graph.Joins...),
		Where:  append([]predicate.Predicate(nil), preds...),
		Select: append(Projection(nil), projection...),
	}
	for _, opt := range opts {
		opt(&d)
	}

	for _, o := range d.OrderBy {
		if err := checkOrderColumn(graph, aliases, o.Column); err != nil {
			return Descriptor{}, err
		}
	}

	if d.Window != nil {
		if err := d.Window.Validate(); err != nil {
			return Descriptor{}, &paging.QueryConstructionError{Reason: err.Error()}
		}
	}

	return d, nil
}

// checkOrderColumn accepts "table.column" on a reachable table or a
// projection alias.
func checkOrderColumn(graph Graph, aliases map[string]bool, column string) error {
	table, col, qualified := strings.Cut(column, ".")
	switch {
	case qualified && table != "" && col != "" && graph.Reachable(table):
		return nil
	case !qualified && aliases[column]:
		return nil
	}

	return &paging.QueryConstructionError{
		Reason: "order column not reachable from join graph",
		Field:  column,
	}
}
