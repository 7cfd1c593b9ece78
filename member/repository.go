// Package member searches members and their teams with optional filters.
//
// Searches are a member LEFT JOIN team query filtered by whichever fields of
// a SearchCondition are present. Paged searches only issue a count query
// when the fetched page does not already determine the total.
//
// Example usage:
//
//	repo := member.NewRepository(sqlboiler.NewExecutor[member.RawRow](db))
//	page, err := repo.SearchPaged(ctx, member.SearchCondition{
//	    TeamName: null.StringFrom("teamA"),
//	}, paging.PageWindow{Offset: 0, Limit: 20})
package member

import (
	"context"

	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/offset"
	"github.com/nrfta/filterpage-go/predicate"
	"github.com/nrfta/filterpage-go/query"
)

// DefaultOrderBy keeps pages stable: member id ascending.
var DefaultOrderBy = []paging.OrderBy{{Column: MemberID.String()}}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the repository logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger.With().Str("component", "member_repository").Logger()
	}
}

// WithOrderBy replaces DefaultOrderBy. Columns are "table.column" or a
// projection alias.
func WithOrderBy(orderBy ...paging.OrderBy) Option {
	return func(r *Repository) {
		r.orderBy = orderBy
	}
}

// WithCountMode selects how count queries are derived (default
// query.CountWithJoins).
func WithCountMode(mode query.CountMode) Option {
	return func(r *Repository) {
		r.countMode = mode
	}
}

// WithPaginatorOptions passes options to the offset paginator of paged searches.
func WithPaginatorOptions(opts ...offset.Option) Option {
	return func(r *Repository) {
		r.paginatorOpts = append(r.paginatorOpts, opts...)
	}
}

// Repository runs member searches through a store executor.
type Repository struct {
	executor      query.Executor[RawRow]
	logger        zerolog.Logger
	orderBy       []paging.OrderBy
	countMode     query.CountMode
	paginatorOpts []offset.Option
}

// NewRepository creates a repository on executor.
func NewRepository(executor query.Executor[RawRow], opts ...Option) *Repository {
	r := &Repository{
		executor:  executor,
		logger:    zerolog.Nop(),
		orderBy:   DefaultOrderBy,
		countMode: query.CountWithJoins,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Search returns every member matching cond, unpaged.
func (r *Repository) Search(ctx context.Context, cond SearchCondition) ([]MemberTeam, error) {
	return r.find(ctx, BuildPredicates(cond))
}

// SearchPaged returns the rows of cond inside window plus the total number of
// matching rows.
func (r *Repository) SearchPaged(
	ctx context.Context,
	cond SearchCondition,
	window paging.PageWindow,
) (*paging.Page[MemberTeam], error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	d, err := r.assemble(BuildPredicates(cond))
	if err != nil {
		return nil, err
	}

	logger := r.logger.With().Str("search_id", uuid.NewString()).Logger()
	fetcher := query.NewFetcher(r.executor, d, r.countMode)
	if elided := d.ElidableJoins(); r.countMode == query.CountElideJoins && len(elided) > 0 {
		logger.Debug().Int("elided_joins", len(elided)).Msg("count query without projection-only joins")
	}

	opts := append([]offset.Option{offset.WithLogger(logger)}, r.paginatorOpts...)
	page, err := offset.New[RawRow](fetcher, opts...).Paginate(ctx, window)
	if err != nil {
		return nil, err
	}

	return paging.MapPage(page, Project), nil
}

// FindByUsername returns the members whose username equals username.
// Unlike a search criterion, a blank username is compared as is.
func (r *Repository) FindByUsername(ctx context.Context, username string) ([]MemberTeam, error) {
	return r.find(ctx, []predicate.Predicate{predicate.Eq(MemberUsername, username)})
}

// FindByID returns the member with the given id, or paging.ErrNotFound.
func (r *Repository) FindByID(ctx context.Context, id int64) (MemberTeam, error) {
	rows, err := r.find(ctx, []predicate.Predicate{predicate.Eq(MemberID, id)})
	if err != nil {
		return MemberTeam{}, err
	}
	if len(rows) == 0 {
		return MemberTeam{}, errors.Wrapf(paging.ErrNotFound, "member %d", id)
	}
	return rows[0], nil
}

func (r *Repository) find(ctx context.Context, preds []predicate.Predicate) ([]MemberTeam, error) {
	d, err := r.assemble(preds)
	if err != nil {
		return nil, err
	}

	rows, err := r.executor.Execute(ctx, d)
	if err != nil {
		return nil, paging.ClassifyError(ctx, err)
	}

	out := make([]MemberTeam, len(rows))
	for i, row := range rows {
		out[i] = Project(row)
	}
	return out, nil
}

func (r *Repository) assemble(preds []predicate.Predicate) (query.Descriptor, error) {
	return query.Assemble(Graph, preds, Projection, query.WithOrderBy(r.orderBy...))
}
