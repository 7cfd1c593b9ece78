// Command membersearch runs member searches against a PostgreSQL database.
//
//	membersearch search --dsn postgres://... --team teamA
//	membersearch page --dsn postgres://... --age-goe 15 --age-loe 25 --offset 0 --limit 10
//	membersearch page --dsn postgres://... --sort member.age:desc --sort member.id
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/aarondl/null/v8"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/internal/config"
	"github.com/nrfta/filterpage-go/internal/logger"
	"github.com/nrfta/filterpage-go/member"
	"github.com/nrfta/filterpage-go/offset"
	"github.com/nrfta/filterpage-go/query"
	"github.com/nrfta/filterpage-go/sqlboiler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(config.New(), os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type conditionFlags struct {
	username string
	teamName string
	ageGoe   int
	ageLoe   int
	sorts    []string
}

func (f *conditionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.username, "username", "", "exact username")
	cmd.Flags().StringVar(&f.teamName, "team", "", "exact team name")
	cmd.Flags().IntVar(&f.ageGoe, "age-goe", 0, "minimum age (inclusive)")
	cmd.Flags().IntVar(&f.ageLoe, "age-loe", 0, "maximum age (inclusive)")
	cmd.Flags().StringSliceVar(&f.sorts, "sort", nil, "sort column as table.column or alias, with an optional :desc (repeatable)")
}

// condition only sets the age bounds whose flags were given, so 0 stays a
// usable bound.
func (f *conditionFlags) condition(cmd *cobra.Command) member.SearchCondition {
	cond := member.SearchCondition{
		Username: null.NewString(f.username, f.username != ""),
		TeamName: null.NewString(f.teamName, f.teamName != ""),
	}
	if cmd.Flags().Changed("age-goe") {
		cond.AgeGoe = null.IntFrom(f.ageGoe)
	}
	if cmd.Flags().Changed("age-loe") {
		cond.AgeLoe = null.IntFrom(f.ageLoe)
	}
	return cond
}

// repositoryOptions turns the --sort flags into an ordering that replaces
// member.DefaultOrderBy.
func (f *conditionFlags) repositoryOptions() ([]member.Option, error) {
	sorts, err := parseSorts(f.sorts)
	if err != nil {
		return nil, err
	}

	args := paging.WithMultiSort(nil, sorts...)
	if orderBy := args.OrderBy(); orderBy != nil {
		return []member.Option{member.WithOrderBy(orderBy...)}, nil
	}
	return nil, nil
}

// parseSorts reads "column" and "column:asc|desc" values.
func parseSorts(values []string) ([]paging.Sort, error) {
	if len(values) == 0 {
		return nil, nil
	}

	sorts := make([]paging.Sort, 0, len(values))
	for _, value := range values {
		column, direction, _ := strings.Cut(value, ":")
		if column == "" {
			return nil, fmt.Errorf("invalid sort %q: missing column", value)
		}

		sort := paging.Sort{Column: column}
		switch strings.ToLower(direction) {
		case "", "asc":
		case "desc":
			sort.Desc = true
		default:
			return nil, fmt.Errorf("invalid sort %q: direction must be asc or desc", value)
		}
		sorts = append(sorts, sort)
	}
	return sorts, nil
}

func newRootCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "membersearch",
		Short:         "Search members and their teams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (yaml, json, toml)")
	root.PersistentFlags().String("dsn", "", "PostgreSQL connection string")
	root.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Bool("metrics", false, "print paginator metrics to stderr when done")
	_ = v.BindPFlag("database.dsn", root.PersistentFlags().Lookup("dsn"))
	_ = v.BindPFlag("logger.level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("search.metrics", root.PersistentFlags().Lookup("metrics"))

	var searchFlags conditionFlags
	search := &cobra.Command{
		Use:   "search",
		Short: "List every matching member",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repoOpts, err := searchFlags.repositoryOptions()
			if err != nil {
				return err
			}

			return withRepository(cmd.Context(), v, configPath, func(repo *member.Repository, _ *config.Config) error {
				rows, err := repo.Search(cmd.Context(), searchFlags.condition(cmd))
				if err != nil {
					return err
				}
				return writeJSON(out, rows)
			}, repoOpts...)
		},
	}
	searchFlags.register(search)

	var (
		pageFlags conditionFlags
		first     int
		after     string
	)
	page := &cobra.Command{
		Use:   "page",
		Short: "List one page of matching members with the total count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repoOpts, err := pageFlags.repositoryOptions()
			if err != nil {
				return err
			}

			return withRepository(cmd.Context(), v, configPath, func(repo *member.Repository, cfg *config.Config) error {
				args := &paging.PageArgs{}
				if cmd.Flags().Changed("limit") {
					args.First = &first
				}
				if after != "" {
					args.After = &after
				}
				if err := cfg.Paging.Validate(args); err != nil {
					return err
				}

				window := args.Window(&cfg.Paging)
				if cmd.Flags().Changed("offset") {
					offsetVal, _ := cmd.Flags().GetInt("offset")
					window.Offset = offsetVal
				}

				result, err := repo.SearchPaged(cmd.Context(), pageFlags.condition(cmd), window)
				if err != nil {
					return err
				}

				conn, err := paging.BuildConnection(result, func(row member.MemberTeam) (member.MemberTeam, error) {
					return row, nil
				})
				if err != nil {
					return err
				}
				return writeJSON(out, conn)
			}, repoOpts...)
		},
	}
	pageFlags.register(page)
	page.Flags().IntVar(&first, "limit", 0, "page size (defaults to paging.default_size)")
	page.Flags().Int("offset", 0, "rows to skip")
	page.Flags().StringVar(&after, "after", "", "offset cursor of the previous page")

	root.AddCommand(search, page)
	return root
}

func withRepository(
	ctx context.Context,
	v *viper.Viper,
	configPath string,
	run func(*member.Repository, *config.Config) error,
	repoOpts ...member.Option,
) error {
	cfg, err := config.Load(v, configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logger, os.Stderr)
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	reg := prometheus.NewRegistry()
	repo := newRepository(db, cfg, log, reg, repoOpts...)
	if err := run(repo, cfg); err != nil {
		return err
	}

	if cfg.Search.Metrics {
		return writeMetrics(os.Stderr, reg)
	}
	return nil
}

func newRepository(
	db *sql.DB,
	cfg *config.Config,
	log zerolog.Logger,
	reg prometheus.Registerer,
	extra ...member.Option,
) *member.Repository {
	paginatorOpts := []offset.Option{offset.WithMetrics(offset.NewMetrics(reg))}
	if cfg.Search.ConcurrentCount {
		paginatorOpts = append(paginatorOpts, offset.WithConcurrentCount())
	}

	opts := []member.Option{
		member.WithLogger(log),
		member.WithCountMode(query.ParseCountMode(cfg.Search.CountMode)),
		member.WithPaginatorOptions(paginatorOpts...),
	}
	return member.NewRepository(
		sqlboiler.NewExecutor[member.RawRow](db, sqlboiler.WithLogger(log)),
		append(opts, extra...)...,
	)
}

func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
