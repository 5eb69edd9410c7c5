package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/engram/pkg/memory"
)

var _ = Describe("Registry", func() {
	var reg *memory.Registry[int]

	BeforeEach(func() {
		reg = memory.NewRegistry[int]()
	})

	Describe("NewRegistry", func() {
		It("starts with exactly one clone", func() {
			Expect(reg.Count()).To(Equal(1))
		})

		It("starts clone 1 with an empty history", func() {
			out, err := reg.Check(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(memory.CheckBasic))
		})
	})

	Describe("clone number resolution", func() {
		It("rejects zero", func() {
			Expect(reg.Learn(0, 1)).To(MatchError(memory.InvalidCloneError{Number: 0}))
		})

		It("rejects negative numbers", func() {
			Expect(reg.Rollback(-3)).To(MatchError(memory.InvalidCloneError{Number: -3}))
		})

		It("rejects numbers above the current count", func() {
			_, err := reg.Check(2)
			Expect(err).To(MatchError(memory.InvalidCloneError{Number: 2}))

			_, err = reg.Clone(2)
			Expect(err).To(MatchError(memory.InvalidCloneError{Number: 2}))

			Expect(reg.Relearn(2)).To(MatchError(memory.InvalidCloneError{Number: 2}))
		})

		It("accepts numbers that become valid after cloning", func() {
			n, err := reg.Clone(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))

			Expect(reg.Learn(2, 42)).To(Succeed())
		})
	})

	Describe("Clone", func() {
		It("always assigns the next number regardless of the source", func() {
			n, err := reg.Clone(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))

			n, err = reg.Clone(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))

			n, err = reg.Clone(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(4))

			Expect(reg.Count()).To(Equal(4))
		})
	})

	Describe("error propagation", func() {
		It("surfaces ErrEmptyHistory unchanged from the clone", func() {
			Expect(reg.Rollback(1)).To(MatchError(memory.ErrEmptyHistory))
			Expect(reg.Relearn(1)).To(MatchError(memory.ErrEmptyHistory))
		})
	})

	Describe("reference scenario", func() {
		It("matches the documented behavior end to end", func() {
			Expect(reg.Learn(1, 5)).To(Succeed())
			Expect(reg.Learn(1, 7)).To(Succeed())
			Expect(reg.Rollback(1)).To(Succeed())

			out, err := reg.Check(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("5"))

			n, err := reg.Clone(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))

			Expect(reg.Relearn(2)).To(Succeed())

			out, err = reg.Check(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("7"))

			Expect(reg.Rollback(1)).To(Succeed())

			out, err = reg.Check(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(memory.CheckBasic))

			// Clone 2 is untouched by clone 1's rollback.
			out, err = reg.Check(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("7"))
		})
	})
})
