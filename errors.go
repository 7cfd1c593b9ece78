package paging

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("paging: no rows matched")

// QueryConstructionError is returned when a query cannot be assembled, e.g.
// a projected or filtered field lives on a table the join graph cannot reach.
// It is a programming error and is reported before any store round-trip.
type QueryConstructionError struct {
	Reason string
	Field  string
}

func (e *QueryConstructionError) Error() string {
	if e.Field == "" {
		return "query construction: " + e.Reason
	}
	return fmt.Sprintf("query construction: %s: %s", e.Reason, e.Field)
}

// StoreError wraps a failure reported by the store executor
// (connectivity, syntax, constraint violation, timeout).
type StoreError struct {
	// Op is the executor operation that failed ("execute" or "execute_scalar").
	Op string

	// Code is the SQLSTATE reported by the database, when available.
	Code string

	Err error
}

func (e *StoreError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s (sqlstate %s): %v", e.Op, e.Code, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// CancellationError is returned when the caller's context ends while a store
// round-trip is in flight. Err is the context error, Cause the failure the
// store reported (if any).
type CancellationError struct {
	Err   error
	Cause error
}

func (e *CancellationError) Error() string {
	if e.Cause == nil {
		return "operation canceled: " + e.Err.Error()
	}
	return fmt.Sprintf("operation canceled: %v (store: %v)", e.Err, e.Cause)
}

// Unwrap exposes the context error so errors.Is(err, context.Canceled) works.
func (e *CancellationError) Unwrap() error {
	return e.Err
}

// ClassifyError maps a failure observed during ctx to the error taxonomy:
// anything that happened after ctx was done, or that is itself a context
// error, becomes a *CancellationError. Other errors are returned unchanged.
func ClassifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var canceled *CancellationError
	if errors.As(err, &canceled) {
		return err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return newCancellationError(ctxErr, err)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return newCancellationError(context.Canceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return newCancellationError(context.DeadlineExceeded, err)
	}

	return err
}

func newCancellationError(ctxErr, cause error) *CancellationError {
	if cause == ctxErr {
		cause = nil
	}
	return &CancellationError{Err: ctxErr, Cause: cause}
}
