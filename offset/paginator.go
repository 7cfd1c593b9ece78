// Package offset provides offset/limit pagination with count-query elision.
//
// The paginator fetches the requested window first and asks
// paging.PlanCount whether the page boundaries already determine the total.
// A count query is only issued when they do not:
//
//   - first page shorter than the limit: total = n
//   - non-empty page shorter than the limit: total = offset + n
//   - otherwise: total = Fetcher.Count
//
// Example usage:
//
//	paginator := offset.New[Row](fetcher, offset.WithLogger(logger))
//	page, err := paginator.Paginate(ctx, paging.PageWindow{Offset: 20, Limit: 10})
package offset

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	paging "github.com/nrfta/filterpage-go"
)

const strategyName = "offset"

// Option configures a paginator.
type Option func(*config)

type config struct {
	concurrentCount bool
	alwaysCount     bool
	logger          zerolog.Logger
	metrics         *Metrics
}

// WithConcurrentCount issues the count query concurrently with the content
// query. It trades a possibly unneeded count round-trip for latency: the
// derived total still wins when the page determines it.
func WithConcurrentCount() Option {
	return func(c *config) {
		c.concurrentCount = true
	}
}

// WithAlwaysCount disables count elision; every page issues a count query.
func WithAlwaysCount() Option {
	return func(c *config) {
		c.alwaysCount = true
	}
}

// WithLogger sets the logger used for planner decisions.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics records every resolved page in m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// Paginator is the offset-based paginator.
type Paginator[T any] struct {
	fetcher paging.Fetcher[T]
	cfg     config
}

var _ paging.Paginator[any] = (*Paginator[any])(nil)

// New creates an offset paginator over fetcher.
func New[T any](fetcher paging.Fetcher[T], opts ...Option) *Paginator[T] {
	cfg := config{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Paginator[T]{fetcher: fetcher, cfg: cfg}
}

// Paginate fetches the window and resolves the total. Any store failure,
// including a failing count query, is returned; cancellation of ctx is
// reported as *paging.CancellationError and no partial page is returned.
func (p *Paginator[T]) Paginate(ctx context.Context, window paging.PageWindow) (*paging.Page[T], error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	params := paging.FetchParams{Offset: window.Offset, Limit: window.Limit}
	start := time.Now()

	var (
		nodes      []T
		counted    int64
		plan       paging.CountPlan
		roundTrips int
		err        error
	)

	if p.cfg.concurrentCount {
		nodes, counted, err = p.fetchConcurrently(ctx, params)
		roundTrips = 2
		if err == nil {
			plan = p.plan(window, len(nodes))
		}
	} else {
		nodes, err = p.fetcher.Fetch(ctx, params)
		roundTrips = 1
		if err == nil {
			plan = p.plan(window, len(nodes))
			if plan.NeedsCount() {
				counted, err = p.fetcher.Count(ctx, params)
				roundTrips++
			}
		}
	}
	if err != nil {
		return nil, paging.ClassifyError(ctx, err)
	}

	total := plan.Resolve(counted)
	elapsed := time.Since(start)

	p.cfg.logger.Debug().
		Str("strategy", strategyName).
		Int("offset", window.Offset).
		Int("limit", window.Limit).
		Int("fetched", len(nodes)).
		Str("count_case", string(plan.Case)).
		Int64("total", total).
		Int("round_trips", roundTrips).
		Dur("elapsed", elapsed).
		Msg("page resolved")
	p.cfg.metrics.observe(plan.Case, roundTrips, elapsed)

	return &paging.Page[T]{
		Nodes:    nodes,
		Total:    total,
		Window:   window,
		PageInfo: paging.NewOffsetPageInfo(window, total),
		Metadata: paging.Metadata{
			Strategy:     strategyName,
			CountCase:    plan.Case,
			CountQueried: roundTrips > 1,
			RoundTrips:   roundTrips,
			QueryTimeMs:  elapsed.Milliseconds(),
		},
	}, nil
}

func (p *Paginator[T]) plan(window paging.PageWindow, n int) paging.CountPlan {
	plan := paging.PlanCount(window, n)
	if p.cfg.alwaysCount {
		plan.Case = paging.CountCaseQuery
	}
	return plan
}

func (p *Paginator[T]) fetchConcurrently(ctx context.Context, params paging.FetchParams) ([]T, int64, error) {
	var (
		nodes   []T
		counted int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		nodes, err = p.fetcher.Fetch(gctx, params)
		return err
	})
	g.Go(func() error {
		var err error
		counted, err = p.fetcher.Count(gctx, params)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return nodes, counted, nil
}
