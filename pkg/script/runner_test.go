package script_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/engram/pkg/memory"
	"github.com/papercomputeco/engram/pkg/script"
)

var _ = Describe("Runner", func() {
	var (
		reg *memory.Registry[int]
		out *bytes.Buffer
	)

	BeforeEach(func() {
		reg = memory.NewRegistry[int]()
		out = &bytes.Buffer{}
	})

	Describe("Run", func() {
		It("runs the reference scenario", func() {
			input := strings.Join([]string{
				"learn 1 5",
				"learn 1 7",
				"rollback 1",
				"check 1",
				"clone 1",
				"relearn 2",
				"check 2",
				"rollback 1",
				"check 1",
			}, "\n")

			runner := script.NewRunner(reg, out)
			Expect(runner.Run(strings.NewReader(input))).To(Succeed())

			Expect(out.String()).To(Equal("5\n7\nbasic\n"))
			Expect(runner.Applied()).To(Equal(9))
		})

		It("skips blank lines", func() {
			runner := script.NewRunner(reg, out)
			Expect(runner.Run(strings.NewReader("learn 1 5\n\n\ncheck 1\n"))).To(Succeed())
			Expect(out.String()).To(Equal("5\n"))
		})

		It("reports parse errors with line numbers", func() {
			runner := script.NewRunner(reg, out)
			err := runner.Run(strings.NewReader("learn 1 5\nforget 1\n"))

			var perr script.ParseError
			Expect(err).To(BeAssignableToTypeOf(perr))
			Expect(err.Error()).To(ContainSubstring("line 2"))
		})

		It("stops at the first registry error", func() {
			runner := script.NewRunner(reg, out)
			err := runner.Run(strings.NewReader("learn 2 5\ncheck 1\n"))

			Expect(err).To(MatchError(memory.InvalidCloneError{Number: 2}))
			Expect(err.Error()).To(ContainSubstring("line 1"))
			Expect(out.Len()).To(BeZero())
		})

		It("surfaces empty-history errors", func() {
			runner := script.NewRunner(reg, out)
			err := runner.Run(strings.NewReader("rollback 1\n"))
			Expect(err).To(MatchError(memory.ErrEmptyHistory))
		})
	})

	Describe("Apply", func() {
		It("reports the number assigned by clone", func() {
			runner := script.NewRunner(reg, out)

			res, err := runner.Apply(script.Command{Verb: script.VerbClone, Clone: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.NewClone).To(Equal(2))
		})

		It("notifies the observer after each applied command", func() {
			var seen []script.Command
			runner := script.NewRunner(reg, out, script.WithObserver(func(cmd script.Command, _ script.Result) {
				seen = append(seen, cmd)
			}))

			_, err := runner.Apply(script.Command{Verb: script.VerbLearn, Clone: 1, Value: 5, HasValue: true})
			Expect(err).NotTo(HaveOccurred())

			_, err = runner.Apply(script.Command{Verb: script.VerbCheck, Clone: 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(seen).To(HaveLen(2))
			Expect(seen[0].Verb).To(Equal(script.VerbLearn))
			Expect(seen[1].Verb).To(Equal(script.VerbCheck))
		})

		It("does not notify the observer on failure", func() {
			calls := 0
			runner := script.NewRunner(reg, out, script.WithObserver(func(script.Command, script.Result) {
				calls++
			}))

			_, err := runner.Apply(script.Command{Verb: script.VerbRollback, Clone: 1})
			Expect(err).To(HaveOccurred())
			Expect(calls).To(BeZero())
		})
	})
})
