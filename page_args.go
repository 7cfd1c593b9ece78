package paging

import "fmt"

const (
	// DefaultPageSize is the default number of items per page when not specified.
	DefaultPageSize = 50

	// DefaultMaxPageSize is the default maximum page size allowed.
	// This protects against resource exhaustion from unreasonably large page requests.
	DefaultMaxPageSize = 1000
)

// PageConfig holds pagination configuration options. The CLI loads it from
// the "paging" config section; NewPageConfig returns the defaults.
//
// Example:
//
//	config := &paging.PageConfig{DefaultSize: 20, MaxSize: 500}
//	window := args.Window(config)
type PageConfig struct {
	// DefaultSize is the page size used when not specified in PageArgs.
	DefaultSize int `mapstructure:"default_size" validate:"gt=0"`

	// MaxSize is the maximum allowed page size. Requests exceeding this
	// will be capped to MaxSize (not rejected).
	MaxSize int `mapstructure:"max_size" validate:"gt=0,gtefield=DefaultSize"`
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultSize: 50
// - MaxSize: 1000
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize: DefaultPageSize,
		MaxSize:     DefaultMaxPageSize,
	}
}

// EffectiveLimit returns the page size to use, applying defaults and caps.
// - If args is nil or First is nil/zero, returns DefaultSize
// - If First exceeds MaxSize, returns MaxSize
// - Otherwise returns First
func (c *PageConfig) EffectiveLimit(args *PageArgs) int {
	if c == nil {
		c = NewPageConfig()
	}

	defaultSize := c.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}

	if args == nil || args.First == nil || *args.First <= 0 {
		return defaultSize
	}

	if *args.First > maxSize {
		return maxSize
	}

	return *args.First
}

// Validate checks if the page size exceeds MaxSize and returns an error if so.
// Unlike EffectiveLimit which caps silently, Validate returns an error for
// explicit rejection of invalid requests.
func (c *PageConfig) Validate(args *PageArgs) error {
	if c == nil {
		c = NewPageConfig()
	}

	if args == nil || args.First == nil {
		return nil
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}

	if *args.First > maxSize {
		return &PageSizeError{
			Requested: *args.First,
			Maximum:   maxSize,
		}
	}

	return nil
}

// PageArgs represents Relay-style pagination query parameters: a page size
// (First), an opaque offset cursor (After) and a sort configuration (SortBy).
type PageArgs struct {
	First  *int    `json:"first,omitempty"`
	After  *string `json:"after,omitempty"`
	SortBy []Sort  `json:"sortBy,omitempty"`
}

// Sort is a single sort column and direction.
type Sort struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

// WithMultiSort configures multiple sort columns with individual directions.
// It modifies the PageArgs and returns it for method chaining.
// If pa is nil, a new PageArgs is created.
func WithMultiSort(pa *PageArgs, sorts ...Sort) *PageArgs {
	if pa == nil {
		pa = &PageArgs{}
	}

	pa.SortBy = sorts
	return pa
}

// Window converts the args into a PageWindow. The offset is decoded from the
// After cursor (0 when absent or undecodable) and the limit follows
// config.EffectiveLimit. A nil receiver yields the first default-sized page.
func (pa *PageArgs) Window(config *PageConfig) PageWindow {
	window := PageWindow{Limit: config.EffectiveLimit(pa)}
	if pa != nil {
		window.Offset = DecodeOffsetCursor(pa.After)
	}
	return window
}

// OrderBy converts SortBy into ordering directives.
func (pa *PageArgs) OrderBy() []OrderBy {
	if pa == nil || len(pa.SortBy) == 0 {
		return nil
	}

	orderBy := make([]OrderBy, len(pa.SortBy))
	for i, s := range pa.SortBy {
		orderBy[i] = OrderBy{Column: s.Column, Desc: s.Desc}
	}
	return orderBy
}

// PageSizeError is returned when the requested page size exceeds the maximum allowed.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested page size %d exceeds maximum allowed page size of %d",
		e.Requested, e.Maximum)
}
