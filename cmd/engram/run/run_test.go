package runcmder_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	engramcmder "github.com/papercomputeco/engram/cmd/engram"
	runcmder "github.com/papercomputeco/engram/cmd/engram/run"
)

var _ = Describe("NewRunCmd", func() {
	It("creates a command with the correct use string", func() {
		cmd := runcmder.NewRunCmd()
		Expect(cmd.Use).To(Equal("run [file]"))
	})

	It("accepts at most one argument", func() {
		cmd := runcmder.NewRunCmd()
		Expect(cmd.Args(cmd, []string{})).NotTo(HaveOccurred())
		Expect(cmd.Args(cmd, []string{"script.txt"})).NotTo(HaveOccurred())
		Expect(cmd.Args(cmd, []string{"a", "b"})).To(HaveOccurred())
	})
})

var _ = Describe("Run command execution", func() {
	var (
		tmpDir  string
		origDir string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "engram-run-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	writeScript := func(contents string) string {
		path := filepath.Join(tmpDir, "script.txt")
		err := os.WriteFile(path, []byte(contents), 0o644)
		Expect(err).NotTo(HaveOccurred())
		return path
	}

	It("runs a valid script file", func() {
		path := writeScript("learn 1 5\nlearn 1 7\nrollback 1\ncheck 1\n")

		cmd := engramcmder.NewEngramCmd()
		cmd.SetArgs([]string{"run", path})
		err := cmd.Execute()
		Expect(err).NotTo(HaveOccurred())
	})

	It("fails on a script with an unknown verb", func() {
		path := writeScript("remember 1 5\n")

		cmd := engramcmder.NewEngramCmd()
		cmd.SetArgs([]string{"run", path})
		err := cmd.Execute()
		Expect(err).To(HaveOccurred())
	})

	It("fails on an invalid clone number", func() {
		path := writeScript("check 99\n")

		cmd := engramcmder.NewEngramCmd()
		cmd.SetArgs([]string{"run", path})
		err := cmd.Execute()
		Expect(err).To(HaveOccurred())
	})

	It("fails when the script file does not exist", func() {
		cmd := engramcmder.NewEngramCmd()
		cmd.SetArgs([]string{"run", filepath.Join(tmpDir, "missing.txt")})
		err := cmd.Execute()
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unknown eventstream provider", func() {
		path := writeScript("check 1\n")

		cmd := engramcmder.NewEngramCmd()
		cmd.SetArgs([]string{"run", path, "--eventstream-provider", "bogus"})
		err := cmd.Execute()
		Expect(err).To(HaveOccurred())
	})
})
