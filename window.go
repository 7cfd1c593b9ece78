package paging

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PageWindow is a requested slice of an ordered result set.
// Offset is the number of rows to skip and Limit the maximum number of rows
// to return. Paging is only stable across calls when the underlying query has
// a deterministic ORDER BY.
type PageWindow struct {
	Offset int `json:"offset" validate:"gte=0"`
	Limit  int `json:"limit" validate:"gt=0"`
}

// NewPageWindow builds a window and validates it.
func NewPageWindow(offset, limit int) (PageWindow, error) {
	w := PageWindow{Offset: offset, Limit: limit}
	if err := w.Validate(); err != nil {
		return PageWindow{}, err
	}
	return w, nil
}

// Validate checks the window invariants: a non-negative offset and a
// positive limit.
func (w PageWindow) Validate() error {
	if err := validate.Struct(w); err != nil {
		return &WindowError{Offset: w.Offset, Limit: w.Limit, Err: err}
	}
	return nil
}

// End returns the exclusive upper bound of the window.
func (w PageWindow) End() int {
	return w.Offset + w.Limit
}

// WindowError is returned when a PageWindow violates its invariants.
type WindowError struct {
	Offset int
	Limit  int
	Err    error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("invalid page window (offset=%d, limit=%d): offset must be >= 0 and limit > 0",
		e.Offset, e.Limit)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}
