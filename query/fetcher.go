package query

import (
	"context"

	paging "github.com/nrfta/filterpage-go"
)

// Executor runs descriptors against a store. Implementations report store
// failures as *paging.StoreError and must honour ctx cancellation.
//
// Type parameter T is the raw row type the content query is scanned into.
type Executor[T any] interface {
	// Execute runs a content query and returns its rows in store order.
	Execute(ctx context.Context, d Descriptor) ([]T, error)

	// ExecuteScalar runs a count query and returns its single value.
	ExecuteScalar(ctx context.Context, d Descriptor) (int64, error)
}

// CountMode selects how the count query is derived from the content query.
type CountMode int

const (
	// CountWithJoins counts with every join of the content query.
	CountWithJoins CountMode = iota

	// CountElideJoins drops joins that provably neither filter nor
	// duplicate rows (see Descriptor.ElidableJoins).
	CountElideJoins
)

// String returns the config name of the mode.
func (m CountMode) String() string {
	if m == CountElideJoins {
		return "elide"
	}
	return "full"
}

// ParseCountMode maps "full" and "elide" to a CountMode. Anything else is
// the default CountWithJoins.
func ParseCountMode(s string) CountMode {
	if s == "elide" {
		return CountElideJoins
	}
	return CountWithJoins
}

// Fetcher implements paging.Fetcher[T] for a fixed content descriptor.
// Fetch applies the requested window to the descriptor; Count runs the
// derived count descriptor, which never carries a window.
type Fetcher[T any] struct {
	exec    Executor[T]
	content Descriptor
	count   Descriptor
}

// NewFetcher creates a fetcher for the content descriptor d.
func NewFetcher[T any](exec Executor[T], d Descriptor, mode CountMode) *Fetcher[T] {
	count := d.Count()
	if mode == CountElideJoins {
		count = d.CountElided()
	}

	return &Fetcher[T]{
		exec:    exec,
		content: d,
		count:   count,
	}
}

// Fetch retrieves the rows inside the window described by params.
func (f *Fetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	d := f.content.WithWindow(paging.PageWindow{Offset: params.Offset, Limit: params.Limit})
	return f.exec.Execute(ctx, d)
}

// Count returns the total number of rows matching the descriptor's predicates.
func (f *Fetcher[T]) Count(ctx context.Context, _ paging.FetchParams) (int64, error) {
	return f.exec.ExecuteScalar(ctx, f.count)
}

// CountDescriptor exposes the count query the fetcher issues.
func (f *Fetcher[T]) CountDescriptor() Descriptor {
	return f.count
}
