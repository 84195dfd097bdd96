package core

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DirResolver", func() {
	var (
		dir      string
		resolver DirResolver
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		resolver = DirResolver{Dir: dir}

		Expect(os.WriteFile(filepath.Join(dir, "math.ad"), []byte("add a1 1\n"), 0o644)).To(Succeed())
	})

	It("should read NAME.ad from the directory", func() {
		Expect(resolver.Resolve("math")).To(Equal("add a1 1\n"))
	})

	It("should report a missing library", func() {
		_, err := resolver.Resolve("nolib")
		Expect(err).To(MatchError(ErrLibraryNotFound))
	})

	DescribeTable("should refuse names that escape the directory",
		func(name string) {
			_, err := resolver.Resolve(name)
			Expect(err).To(MatchError(ErrLibraryNotFound))
		},
		Entry("parent", "../math"),
		Entry("dotdot", ".."),
		Entry("nested", "sub/math"),
		Entry("backslash", `sub\math`),
		Entry("empty", ""),
	)

	It("should inline a library from disk", func() {
		r := Load("", "import math\nimport math\nshow a1", resolver, 0).Run()

		Expect(r.Status).To(Equal(HaltedNormal))
		Expect(r.Registers.Get(A1)).To(Equal(int64(2)))
	})
})

var _ = Describe("MapResolver", func() {
	It("should serve libraries from memory", func() {
		m := MapResolver{"x": "set a1 1"}

		Expect(m.Resolve("x")).To(Equal("set a1 1"))

		_, err := m.Resolve("y")
		Expect(err).To(MatchError(ErrLibraryNotFound))
	})
})
