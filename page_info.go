package paging

// PageInfo contains metadata about a paginated result set.
// It uses function fields to enable lazy evaluation of pagination metadata,
// which keeps it compatible with GraphQL resolvers that only ask for some fields.
type PageInfo struct {
	TotalCount      func() (*int, error)
	HasPreviousPage func() (bool, error)
	HasNextPage     func() (bool, error)
	StartCursor     func() (*string, error)
	EndCursor       func() (*string, error)
}

// NewOffsetPageInfo returns a PageInfo for a resolved page: the window the page
// was fetched with and the resolved total.
//
// EndCursor points at the start of the last page of size window.Limit.
func NewOffsetPageInfo(window PageWindow, totalCount int64) *PageInfo {
	count := int(totalCount)
	pageSize := window.Limit
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	endOffset := count - (count % pageSize)
	if endOffset == count {
		endOffset = count - pageSize
	}
	if endOffset < 0 {
		endOffset = 0
	}

	return &PageInfo{
		TotalCount:      func() (*int, error) { return &count, nil },
		StartCursor:     func() (*string, error) { return EncodeOffsetCursor(0), nil },
		EndCursor:       func() (*string, error) { return EncodeOffsetCursor(endOffset), nil },
		HasNextPage:     func() (bool, error) { return window.Offset+pageSize < count, nil },
		HasPreviousPage: func() (bool, error) { return window.Offset > 0, nil },
	}
}

// NewEmptyPageInfo returns an empty instance of PageInfo. Useful for when working on a new page to be able to fulfil PageInfo requirements
func NewEmptyPageInfo() *PageInfo {
	return &PageInfo{
		TotalCount:      func() (*int, error) { return nil, nil },
		StartCursor:     func() (*string, error) { return nil, nil },
		EndCursor:       func() (*string, error) { return nil, nil },
		HasNextPage:     func() (bool, error) { return false, nil },
		HasPreviousPage: func() (bool, error) { return false, nil },
	}
}
