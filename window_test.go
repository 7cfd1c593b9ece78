package paging_test

import (
	"errors"

	"github.com/go-playground/validator/v10"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paging "github.com/nrfta/filterpage-go"
)

var _ = Describe("PageWindow", func() {
	It("accepts a zero offset and a positive limit", func() {
		w, err := paging.NewPageWindow(0, 10)

		Expect(err).ToNot(HaveOccurred())
		Expect(w.Offset).To(Equal(0))
		Expect(w.Limit).To(Equal(10))
		Expect(w.End()).To(Equal(10))
	})

	DescribeTable("rejects invalid windows",
		func(offset, limit int) {
			_, err := paging.NewPageWindow(offset, limit)
			Expect(err).To(HaveOccurred())

			var windowErr *paging.WindowError
			Expect(errors.As(err, &windowErr)).To(BeTrue())
			Expect(windowErr.Offset).To(Equal(offset))
			Expect(windowErr.Limit).To(Equal(limit))

			var validationErrs validator.ValidationErrors
			Expect(errors.As(err, &validationErrs)).To(BeTrue())
		},
		Entry("negative offset", -1, 10),
		Entry("zero limit", 0, 0),
		Entry("negative limit", 5, -3),
	)

	It("names the offending values in the message", func() {
		err := paging.PageWindow{Offset: -2, Limit: 0}.Validate()

		Expect(err).To(MatchError(ContainSubstring("offset=-2, limit=0")))
	})
})
