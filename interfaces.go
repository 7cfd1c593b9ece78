package paging

import "context"

// Paginator is the core interface for window-based pagination.
//
// Type parameter T is the item type being paginated (e.g., a projected row).
//
// The implementation in package offset fetches the requested window and only
// issues a total-count query when the window itself cannot determine the total.
type Paginator[T any] interface {
	// Paginate fetches the rows inside window and resolves the total row count.
	Paginate(ctx context.Context, window PageWindow) (*Page[T], error)
}

// Page represents a single page of paginated results.
// It contains the actual items, the total number of matching rows,
// pagination metadata, and observability information.
//
// Invariant: Total >= Window.Offset + len(Nodes). When the page is the last
// one, Total == Window.Offset + len(Nodes).
type Page[T any] struct {
	// Nodes contains the items for this page, in query order.
	Nodes []T

	// Total is the number of rows matching the query, ignoring the window.
	Total int64

	// Window is the slice of the result set this page was fetched for.
	Window PageWindow

	// PageInfo contains pagination metadata (hasNextPage, cursors, etc.)
	PageInfo *PageInfo

	// Metadata provides observability and debugging information.
	Metadata Metadata
}

// Metadata provides observability and debugging information about pagination execution.
type Metadata struct {
	// Strategy identifies which pagination strategy was used.
	// Values: "offset"
	Strategy string

	// CountCase records how the total was obtained.
	// Values: "first_page", "last_page", "count_query"
	CountCase CountCase

	// CountQueried is true when a count round-trip was issued to the store.
	CountQueried bool

	// RoundTrips is the number of store queries issued (1 or 2).
	RoundTrips int

	// QueryTimeMs is the total time spent executing store queries.
	QueryTimeMs int64
}

// Fetcher abstracts the store queries a paginator needs.
// This interface keeps paginators free of any ORM or SQL builder; package
// query provides an implementation on top of a query descriptor and a store
// executor.
//
// Type parameter T is the row type returned by the store.
type Fetcher[T any] interface {
	// Fetch retrieves the rows inside the window described by params.
	// The ordering is owned by the fetcher, not by params.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)

	// Count returns the total number of rows matching the fetcher's filters,
	// without any window applied.
	Count(ctx context.Context, params FetchParams) (int64, error)
}

// FetchParams contains the window parameters for a single fetch.
type FetchParams struct {
	// Limit is the maximum number of items to fetch.
	Limit int

	// Offset is the number of items to skip.
	Offset int
}

// OrderBy represents a sort directive for query results.
type OrderBy struct {
	// Column is the qualified column ("table.column") or projection alias to sort by.
	Column string

	// Desc indicates descending order. False means ascending.
	Desc bool
}

// MapPage converts the nodes of a page with transform, keeping totals,
// window, page info and metadata untouched.
func MapPage[From any, To any](page *Page[From], transform func(From) To) *Page[To] {
	if page == nil {
		return nil
	}

	nodes := make([]To, len(page.Nodes))
	for i, node := range page.Nodes {
		nodes[i] = transform(node)
	}

	return &Page[To]{
		Nodes:    nodes,
		Total:    page.Total,
		Window:   page.Window,
		PageInfo: page.PageInfo,
		Metadata: page.Metadata,
	}
}
