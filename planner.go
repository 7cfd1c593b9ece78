package paging

// CountCase names the rule the planner used to resolve a page total.
type CountCase string

const (
	// CountCaseFirstPage: the first page came back shorter than the limit,
	// so the content is the whole result set.
	CountCaseFirstPage CountCase = "first_page"

	// CountCaseLastPage: a non-empty page came back shorter than the limit,
	// so no rows exist past it and the total is offset + n.
	CountCaseLastPage CountCase = "last_page"

	// CountCaseQuery: the page is full (or empty past the first page), so the
	// total can only be known by asking the store.
	CountCaseQuery CountCase = "count_query"
)

// CountPlan is the outcome of PlanCount for one fetched page.
type CountPlan struct {
	Case   CountCase
	Window PageWindow

	// Fetched is the number of rows the content query returned.
	Fetched int

	// Total is the derived total. Only meaningful when NeedsCount is false.
	Total int64
}

// NeedsCount reports whether a separate count query must be issued.
func (p CountPlan) NeedsCount() bool {
	return p.Case == CountCaseQuery
}

// Resolve returns the page total given the result of a count query.
// For the skip cases the derived total is returned and counted is ignored.
// A non-empty page proves at least offset + n rows exist, so a smaller
// counted total (rows deleted between the two queries) is raised to keep
// total >= offset + n. An empty page proves nothing and the count is used
// as is.
func (p CountPlan) Resolve(counted int64) int64 {
	if !p.NeedsCount() {
		return p.Total
	}

	if p.Fetched > 0 {
		if floor := int64(p.Window.Offset + p.Fetched); counted < floor {
			return floor
		}
	}
	return counted
}

// PlanCount decides, from the window and the number of rows n a content
// query returned, whether a count query is needed.
//
//  1. offset == 0 && n < limit: total is n.
//  2. n > 0 && n < limit: total is offset + n.
//  3. otherwise a count query is required.
//
// Case 2 deliberately requires n > 0: an empty page at a non-zero offset does
// not prove anything about the rows before the offset (they may have been
// deleted, or the offset may be past the end), so it falls through to case 3
// the same way page-based pagers resolve an empty trailing page.
func PlanCount(window PageWindow, n int) CountPlan {
	plan := CountPlan{Window: window, Fetched: n, Case: CountCaseQuery}

	switch {
	case window.Offset == 0 && n < window.Limit:
		plan.Case = CountCaseFirstPage
		plan.Total = int64(n)
	case n > 0 && n < window.Limit:
		plan.Case = CountCaseLastPage
		plan.Total = int64(window.Offset + n)
	}

	return plan
}
