// Package sqlboiler runs query descriptors against PostgreSQL through
// SQLBoiler's query builder.
//
// A descriptor is converted into SQLBoiler query mods (ContentQueryMods,
// CountQueryMods) and executed on any boil.ContextExecutor, so the same
// executor works on a *sql.DB or inside the caller's *sql.Tx.
//
// Example usage:
//
//	executor := sqlboiler.NewExecutor[member.RawRow](db)
//	rows, err := executor.Execute(ctx, descriptor)
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/query"
)

const (
	opExecute       = "execute"
	opExecuteScalar = "execute_scalar"
)

// Option configures an Executor.
type Option func(*executorConfig)

type executorConfig struct {
	logger zerolog.Logger
}

// WithLogger logs every statement (SQL and args) at trace level.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *executorConfig) {
		c.logger = logger.With().Str("component", "sqlboiler").Logger()
	}
}

// Executor implements query.Executor[T] for PostgreSQL.
//
// Type parameter T is a struct whose `boil` tags match the projection aliases
// of the content descriptors it executes.
type Executor[T any] struct {
	exec   boil.ContextExecutor
	logger zerolog.Logger
}

var _ query.Executor[struct{}] = (*Executor[struct{}])(nil)

// NewExecutor creates an executor on exec (a *sql.DB or *sql.Tx).
func NewExecutor[T any](exec boil.ContextExecutor, opts ...Option) *Executor[T] {
	cfg := executorConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Executor[T]{exec: exec, logger: cfg.logger}
}

// Execute runs a content query and binds its rows into T.
func (e *Executor[T]) Execute(ctx context.Context, d query.Descriptor) ([]T, error) {
	q := NewQuery(ContentQueryMods(d)...)
	e.trace(opExecute, q)

	var rows []T
	if err := q.Bind(ctx, e.exec, &rows); err != nil {
		return nil, storeError(opExecute, errors.Wrap(err, "sqlboiler: failed to execute content query"))
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

// ExecuteScalar runs a count query.
func (e *Executor[T]) ExecuteScalar(ctx context.Context, d query.Descriptor) (int64, error) {
	q := NewQuery(CountQueryMods(d)...)
	queries.SetCount(q)
	e.trace(opExecuteScalar, q)

	var count int64
	if err := q.QueryRowContext(ctx, e.exec).Scan(&count); err != nil {
		return 0, storeError(opExecuteScalar, errors.Wrap(err, "sqlboiler: failed to count rows"))
	}
	return count, nil
}

func (e *Executor[T]) trace(op string, q *queries.Query) {
	if e.logger.GetLevel() > zerolog.TraceLevel {
		return
	}
	sql, args := queries.BuildQuery(q)
	e.logger.Trace().
		Str("op", op).
		Str("sql", sql).
		Interface("args", args).
		Msg("executing query")
}

// storeError wraps err, keeping the SQLSTATE when the driver reports one.
func storeError(op string, err error) error {
	storeErr := &paging.StoreError{Op: op, Err: err}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		storeErr.Code = string(pqErr.Code)
	}

	return storeErr
}
