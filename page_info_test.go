package paging_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paging "github.com/nrfta/filterpage-go"
)

var _ = Describe("NewOffsetPageInfo", func() {
	It("reports a next page while rows remain past the window", func() {
		info := paging.NewOffsetPageInfo(paging.PageWindow{Offset: 0, Limit: 2}, 5)

		hasNext, err := info.HasNextPage()
		Expect(err).ToNot(HaveOccurred())
		Expect(hasNext).To(BeTrue())

		hasPrev, _ := info.HasPreviousPage()
		Expect(hasPrev).To(BeFalse())

		total, _ := info.TotalCount()
		Expect(*total).To(Equal(5))
	})

	It("reports no next page on the last page", func() {
		info := paging.NewOffsetPageInfo(paging.PageWindow{Offset: 4, Limit: 2}, 5)

		hasNext, _ := info.HasNextPage()
		Expect(hasNext).To(BeFalse())

		hasPrev, _ := info.HasPreviousPage()
		Expect(hasPrev).To(BeTrue())
	})

	It("points the end cursor at the start of the last page", func() {
		info := paging.NewOffsetPageInfo(paging.PageWindow{Offset: 0, Limit: 2}, 5)

		start, _ := info.StartCursor()
		Expect(paging.DecodeOffsetCursor(start)).To(Equal(0))

		end, _ := info.EndCursor()
		Expect(paging.DecodeOffsetCursor(end)).To(Equal(4))
	})

	It("handles a total that is a multiple of the limit", func() {
		info := paging.NewOffsetPageInfo(paging.PageWindow{Offset: 0, Limit: 2}, 4)

		end, _ := info.EndCursor()
		Expect(paging.DecodeOffsetCursor(end)).To(Equal(2))
	})

	It("never points the end cursor before the first row", func() {
		info := paging.NewOffsetPageInfo(paging.PageWindow{Offset: 0, Limit: 10}, 0)

		end, _ := info.EndCursor()
		Expect(paging.DecodeOffsetCursor(end)).To(Equal(0))
	})
})

var _ = Describe("NewEmptyPageInfo", func() {
	It("should return empty PageInfo with nil/false values", func() {
		pageInfo := paging.NewEmptyPageInfo()

		totalCount, err := pageInfo.TotalCount()
		Expect(err).ToNot(HaveOccurred())
		Expect(totalCount).To(BeNil())

		startCursor, err := pageInfo.StartCursor()
		Expect(err).ToNot(HaveOccurred())
		Expect(startCursor).To(BeNil())

		endCursor, err := pageInfo.EndCursor()
		Expect(err).ToNot(HaveOccurred())
		Expect(endCursor).To(BeNil())

		hasNext, err := pageInfo.HasNextPage()
		Expect(err).ToNot(HaveOccurred())
		Expect(hasNext).To(BeFalse())

		hasPrev, err := pageInfo.HasPreviousPage()
		Expect(err).ToNot(HaveOccurred())
		Expect(hasPrev).To(BeFalse())
	})
})
