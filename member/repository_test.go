package member_test

import (
	"bytes"
	"context"
	"errors"

	"github.com/aarondl/null/v8"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/member"
	"github.com/nrfta/filterpage-go/offset"
	"github.com/nrfta/filterpage-go/query"
)

func usernames(rows []member.MemberTeam) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Username
	}
	return out
}

var _ = Describe("Repository", func() {
	var (
		ctx   context.Context
		store *memStore
		repo  *member.Repository
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newMemStore()
		repo = member.NewRepository(store)
	})

	Describe("Search", func() {
		It("returns every member when no criterion is set", func() {
			rows, err := repo.Search(ctx, member.SearchCondition{})

			Expect(err).ToNot(HaveOccurred())
			Expect(usernames(rows)).To(Equal([]string{"member1", "member2", "member3", "member4", "member5"}))
		})

		It("filters by username", func() {
			rows, err := repo.Search(ctx, member.SearchCondition{Username: null.StringFrom("member1")})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(Equal([]member.MemberTeam{{
				MemberID: 1,
				Username: "member1",
				Age:      10,
				TeamID:   null.Int64From(1),
				TeamName: null.StringFrom("teamA"),
			}}))
		})

		It("treats a blank username as absent", func() {
			rows, err := repo.Search(ctx, member.SearchCondition{Username: null.StringFrom("   ")})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(5))
		})

		It("applies inclusive age bounds", func() {
			rows, err := repo.Search(ctx, member.SearchCondition{
				AgeGoe: null.IntFrom(20),
				AgeLoe: null.IntFrom(30),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(usernames(rows)).To(Equal([]string{"member2", "member3", "member5"}))
		})

		It("combines criteria with AND", func() {
			rows, err := repo.Search(ctx, member.SearchCondition{
				TeamName: null.StringFrom("teamB"),
				AgeGoe:   null.IntFrom(35),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(usernames(rows)).To(Equal([]string{"member4"}))
		})

		It("matches nothing for inconsistent bounds", func() {
			rows, err := repo.Search(ctx, member.SearchCondition{
				AgeGoe: null.IntFrom(30),
				AgeLoe: null.IntFrom(20),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		It("keeps members without a team with null team fields", func() {
			rows, err := repo.Search(ctx, member.SearchCondition{Username: null.StringFrom("member5")})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].TeamID.Valid).To(BeFalse())
			Expect(rows[0].TeamName.Valid).To(BeFalse())
		})

		It("drops members without a team once the team name is filtered", func() {
			rows, err := repo.Search(ctx, member.SearchCondition{TeamName: null.StringFrom("teamA")})

			Expect(err).ToNot(HaveOccurred())
			Expect(usernames(rows)).To(Equal([]string{"member1", "member2"}))
		})

		It("returns the same rows for the same condition", func() {
			cond := member.SearchCondition{AgeGoe: null.IntFrom(15)}

			first, err := repo.Search(ctx, cond)
			Expect(err).ToNot(HaveOccurred())
			second, err := repo.Search(ctx, cond)
			Expect(err).ToNot(HaveOccurred())

			Expect(second).To(Equal(first))
		})

		It("honours a custom order", func() {
			repo = member.NewRepository(store, member.WithOrderBy(paging.OrderBy{Column: member.AliasAge, Desc: true}))

			rows, err := repo.Search(ctx, member.SearchCondition{})

			Expect(err).ToNot(HaveOccurred())
			Expect(usernames(rows)).To(Equal([]string{"member4", "member3", "member5", "member2", "member1"}))
		})

		It("rejects an order column outside the join graph", func() {
			repo = member.NewRepository(store, member.WithOrderBy(paging.OrderBy{Column: "league.name"}))

			_, err := repo.Search(ctx, member.SearchCondition{})

			var qcErr *paging.QueryConstructionError
			Expect(errors.As(err, &qcErr)).To(BeTrue())
			Expect(store.executions()).To(BeZero())
		})

		It("reports store failures", func() {
			store.err = errors.New("connection refused")

			_, err := repo.Search(ctx, member.SearchCondition{})

			var storeErr *paging.StoreError
			Expect(errors.As(err, &storeErr)).To(BeTrue())
		})

		It("reports cancellation", func() {
			ctx, cancel := context.WithCancel(ctx)
			cancel()

			_, err := repo.Search(ctx, member.SearchCondition{})

			var canceled *paging.CancellationError
			Expect(errors.As(err, &canceled)).To(BeTrue())
		})
	})

	Describe("SearchPaged", func() {
		It("counts when the page is full", func() {
			page, err := repo.SearchPaged(ctx, member.SearchCondition{}, paging.PageWindow{Offset: 1, Limit: 2})

			Expect(err).ToNot(HaveOccurred())
			Expect(usernames(page.Nodes)).To(Equal([]string{"member2", "member3"}))
			Expect(page.Total).To(Equal(int64(5)))
			Expect(store.counts()).To(Equal(1))
		})

		It("derives the total of the last page", func() {
			page, err := repo.SearchPaged(ctx, member.SearchCondition{}, paging.PageWindow{Offset: 4, Limit: 2})

			Expect(err).ToNot(HaveOccurred())
			Expect(usernames(page.Nodes)).To(Equal([]string{"member5"}))
			Expect(page.Total).To(Equal(int64(5)))
			Expect(store.counts()).To(BeZero())
		})

		It("derives the total of a short first page", func() {
			page, err := repo.SearchPaged(ctx,
				member.SearchCondition{TeamName: null.StringFrom("teamB")},
				paging.PageWindow{Offset: 0, Limit: 10},
			)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Total).To(Equal(int64(2)))
			Expect(store.counts()).To(BeZero())
		})

		It("agrees with Search on the total", func() {
			cond := member.SearchCondition{AgeGoe: null.IntFrom(15)}
			all, err := repo.Search(ctx, cond)
			Expect(err).ToNot(HaveOccurred())

			page, err := repo.SearchPaged(ctx, cond, paging.PageWindow{Offset: 0, Limit: 2})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Total).To(Equal(int64(len(all))))
			Expect(page.Nodes).To(Equal(all[:2]))
		})

		It("counts with the team join by default", func() {
			_, err := repo.SearchPaged(ctx, member.SearchCondition{}, paging.PageWindow{Offset: 0, Limit: 2})

			Expect(err).ToNot(HaveOccurred())
			Expect(store.lastCount().Joins).To(HaveLen(1))
		})

		It("rejects an invalid window before any round-trip", func() {
			_, err := repo.SearchPaged(ctx, member.SearchCondition{}, paging.PageWindow{Offset: 0, Limit: 0})

			var windowErr *paging.WindowError
			Expect(errors.As(err, &windowErr)).To(BeTrue())
			Expect(store.executions()).To(BeZero())
		})

		Context("with join elision", func() {
			BeforeEach(func() {
				repo = member.NewRepository(store, member.WithCountMode(query.CountElideJoins))
			})

			It("counts without the team join when no team criterion is set", func() {
				page, err := repo.SearchPaged(ctx, member.SearchCondition{}, paging.PageWindow{Offset: 0, Limit: 2})

				Expect(err).ToNot(HaveOccurred())
				Expect(page.Total).To(Equal(int64(5)))
				Expect(store.lastCount().Joins).To(BeEmpty())
			})

			It("keeps the team join when the team name is filtered", func() {
				page, err := repo.SearchPaged(ctx,
					member.SearchCondition{TeamName: null.StringFrom("teamA")},
					paging.PageWindow{Offset: 0, Limit: 2},
				)

				Expect(err).ToNot(HaveOccurred())
				Expect(page.Total).To(Equal(int64(2)))
				Expect(store.lastCount().Joins).To(HaveLen(1))
			})
		})

		It("counts concurrently when asked", func() {
			repo = member.NewRepository(store, member.WithPaginatorOptions(offset.WithConcurrentCount()))

			page, err := repo.SearchPaged(ctx, member.SearchCondition{}, paging.PageWindow{Offset: 4, Limit: 2})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Total).To(Equal(int64(5)))
			Expect(store.counts()).To(Equal(1))
		})

		It("returns no page on store failures", func() {
			store.err = errors.New("statement timeout")

			page, err := repo.SearchPaged(ctx, member.SearchCondition{}, paging.PageWindow{Offset: 0, Limit: 2})

			Expect(page).To(BeNil())
			var storeErr *paging.StoreError
			Expect(errors.As(err, &storeErr)).To(BeTrue())
		})

		Context("on a four member dataset", func() {
			BeforeEach(func() {
				store.tables[member.MemberTable] = store.tables[member.MemberTable][:4]
			})

			DescribeTable("only counts when the page cannot tell the total",
				func(window paging.PageWindow, expected []string, countCase paging.CountCase, counts int) {
					page, err := repo.SearchPaged(ctx, member.SearchCondition{}, window)

					Expect(err).ToNot(HaveOccurred())
					Expect(usernames(page.Nodes)).To(Equal(expected))
					Expect(page.Total).To(Equal(int64(4)))
					Expect(page.Metadata.CountCase).To(Equal(countCase))
					Expect(store.counts()).To(Equal(counts))
				},
				Entry("full middle page", paging.PageWindow{Offset: 1, Limit: 2},
					[]string{"member2", "member3"}, paging.CountCaseQuery, 1),
				Entry("short last page", paging.PageWindow{Offset: 3, Limit: 2},
					[]string{"member4"}, paging.CountCaseLastPage, 0),
				Entry("short first page", paging.PageWindow{Offset: 0, Limit: 10},
					[]string{"member1", "member2", "member3", "member4"}, paging.CountCaseFirstPage, 0),
			)
		})

		It("tags its log events with a search id", func() {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
			repo = member.NewRepository(store, member.WithLogger(logger))

			_, err := repo.SearchPaged(ctx, member.SearchCondition{}, paging.PageWindow{Offset: 0, Limit: 10})

			Expect(err).ToNot(HaveOccurred())
			Expect(buf.String()).To(ContainSubstring(`"search_id":"`))
			Expect(buf.String()).To(ContainSubstring(`"component":"member_repository"`))
		})
	})

	Describe("FindByUsername", func() {
		It("returns the matching members", func() {
			rows, err := repo.FindByUsername(ctx, "member3")

			Expect(err).ToNot(HaveOccurred())
			Expect(usernames(rows)).To(Equal([]string{"member3"}))
		})

		DescribeTable("compares a blank username as is",
			func(username string) {
				rows, err := repo.FindByUsername(ctx, username)

				Expect(err).ToNot(HaveOccurred())
				Expect(rows).To(BeEmpty())
				Expect(store.lastExecuted().Where).To(HaveLen(1))
			},
			Entry("empty", ""),
			Entry("spaces", "   "),
		)
	})

	Describe("FindByID", func() {
		It("returns the member", func() {
			row, err := repo.FindByID(ctx, 4)

			Expect(err).ToNot(HaveOccurred())
			Expect(row.Username).To(Equal("member4"))
			Expect(row.TeamName).To(Equal(null.StringFrom("teamB")))
		})

		It("returns ErrNotFound for an unknown id", func() {
			_, err := repo.FindByID(ctx, 99)

			Expect(errors.Is(err, paging.ErrNotFound)).To(BeTrue())
			Expect(err).To(MatchError(ContainSubstring("member 99")))
		})
	})
})
