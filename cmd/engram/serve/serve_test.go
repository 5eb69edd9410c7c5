package servecmder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	servecmder "github.com/papercomputeco/engram/cmd/engram/serve"
)

var _ = Describe("NewServeCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := servecmder.NewServeCmd()
		Expect(cmd.Use).To(Equal("serve"))
	})

	It("registers the listen flag with its shorthand", func() {
		cmd := servecmder.NewServeCmd()
		flag := cmd.Flags().Lookup("listen")
		Expect(flag).NotTo(BeNil())
		Expect(flag.Shorthand).To(Equal("l"))
	})

	It("registers the eventstream flags", func() {
		cmd := servecmder.NewServeCmd()
		for _, name := range []string{
			"eventstream-provider",
			"eventstream-brokers",
			"eventstream-topic",
		} {
			Expect(cmd.Flags().Lookup(name)).NotTo(BeNil(), name)
		}
	})

	It("registers the log-file flag", func() {
		cmd := servecmder.NewServeCmd()
		Expect(cmd.Flags().Lookup("log-file")).NotTo(BeNil())
	})
})
