package terminal_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/asmdone/api"
	"github.com/sarchlab/asmdone/config"
	"github.com/sarchlab/asmdone/core"
	"github.com/sarchlab/asmdone/terminal"
)

type lineSink struct {
	lines []string
}

func (s *lineSink) WriteLines(lines []string) {
	s.lines = append(s.lines, lines...)
}

type snapshotSink struct {
	shown []core.Snapshot
}

func (s *snapshotSink) ShowRegisters(snap core.Snapshot) {
	s.shown = append(s.shown, snap)
}

type failingPlugin struct{}

func (failingPlugin) Name() string { return "boom" }

func (failingPlugin) Handle(terminal.Request) (terminal.Response, error) {
	return terminal.Response{}, errors.New("exploded")
}

type echoPlugin struct{}

func (echoPlugin) Name() string { return "echo" }

func (echoPlugin) Handle(req terminal.Request) (terminal.Response, error) {
	return terminal.Response{Lines: req.Args}, nil
}

var _ = Describe("Shell", func() {
	var (
		dir   string
		out   *lineSink
		regs  *snapshotSink
		shell *terminal.Shell
	)

	build := func(cfg config.Config) {
		out = &lineSink{}
		regs = &snapshotSink{}
		driver := api.NewDriverBuilder().
			WithConfig(cfg).
			WithResolver(core.DirResolver{Dir: filepath.Join(dir, "packages")}).
			WithOutputSink(out).
			WithRegisterSink(regs).
			WithArtifactSink(api.FileArtifactSink{}).
			Build()
		shell = terminal.NewShell(driver, out, regs)
	}

	writeFile := func(name, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		build(config.Default())
	})

	It("should echo the command and greet", func() {
		shell.Execute("  hello ")

		Expect(out.lines).To(Equal([]string{"$ hello", "Terminal ready."}))
	})

	It("should ignore empty lines", func() {
		shell.Execute("   ")

		Expect(out.lines).To(BeEmpty())
	})

	It("should print the version", func() {
		shell.Execute("VER")

		Expect(out.lines).To(Equal([]string{"$ VER", "AsmDone Core: 1.0.0"}))
	})

	It("should report unknown commands", func() {
		shell.Execute("ls -la")

		Expect(out.lines).To(Equal([]string{"$ ls -la", "bash: ls: command not found"}))
	})

	It("should greet in the configured language", func() {
		cfg := config.Default()
		cfg.Language = "ru"
		build(cfg)

		shell.Execute("hello")

		Expect(out.lines).To(ContainElement("Терминал готов."))
	})

	It("should clear the screen", func() {
		shell.Execute("cls")

		Expect(out.lines).To(ContainElement(terminal.ClearScreen))
	})

	It("should run a file with its libraries", func() {
		writeFile("packages/double.ad", "add a1 a1")
		path := writeFile("prog.ad", "set a1 21\nimport double\nshow a1")

		shell.Execute("run " + path)

		Expect(out.lines).To(Equal([]string{
			"$ run " + path,
			"--- RUNNING CODE ---",
			"OUT: a1 = 42",
			"--- FINISHED --- (Ops: 3)",
		}))
		Expect(regs.shown).To(HaveLen(1))

		shell.Execute("regs")

		Expect(regs.shown).To(HaveLen(2))
		Expect(regs.shown[1].Get(core.A1)).To(Equal(int64(42)))
	})

	It("should add the extension when it is missing", func() {
		writeFile("prog.ad", "show b2")

		shell.Execute("run " + filepath.Join(dir, "prog"))

		Expect(out.lines).To(ContainElement("OUT: b2 = 0"))
	})

	It("should report a missing file", func() {
		shell.Execute("run " + filepath.Join(dir, "nope.ad"))

		Expect(out.lines).To(HaveLen(2))
		Expect(out.lines[1]).To(HavePrefix("File Error: "))
	})

	It("should ask for a file", func() {
		shell.Execute("run")

		Expect(out.lines).To(ContainElement("Err: missing FILE"))
	})

	It("should save the transpiled file next to the source", func() {
		path := writeFile("prog.ad", "set a1 1\n> end\n(end)")

		shell.Execute("save " + path)

		asm, err := os.ReadFile(filepath.Join(dir, "prog.asm"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(asm)).To(ContainSubstring("    JMP end\nend:\n"))
		Expect(out.lines).To(ContainElement("[SAVE] Exported: prog.ad -> prog.asm"))
	})

	It("should check a file", func() {
		clean := writeFile("clean.ad", "set a1 1")
		broken := writeFile("broken.ad", "set z9 1")

		shell.Execute("check " + clean)
		Expect(out.lines).To(ContainElement("No issues found"))

		shell.Execute("check " + broken)
		Expect(out.lines[len(out.lines)-1]).To(ContainSubstring("[OPERAND] broken:1"))
	})

	It("should list commands and plugins", func() {
		Expect(shell.Register(echoPlugin{})).To(Succeed())

		shell.Execute("help")

		Expect(out.lines).To(ContainElement("Commands:"))
		Expect(out.lines).To(ContainElement("  run FILE"))
		Expect(out.lines).To(ContainElement("Plugins: echo"))
	})

	It("should stop on exit", func() {
		Expect(shell.Done()).To(BeFalse())

		shell.Execute("exit")

		Expect(shell.Done()).To(BeTrue())
	})

	Context("plugins", func() {
		It("should reject a duplicate name", func() {
			Expect(shell.Register(echoPlugin{})).To(Succeed())

			err := shell.Register(echoPlugin{})

			Expect(errors.Is(err, terminal.ErrDuplicatePlugin)).To(BeTrue())
		})

		It("should pass arguments and print the response", func() {
			Expect(shell.Register(echoPlugin{})).To(Succeed())

			shell.Execute("plugin echo one two")

			Expect(out.lines).To(Equal([]string{"$ plugin echo one two", "one", "two"}))
		})

		It("should report plugin errors", func() {
			Expect(shell.Register(failingPlugin{})).To(Succeed())

			shell.Execute("plugin boom")

			Expect(out.lines).To(ContainElement("Plugin Err: exploded"))
		})

		It("should report unknown plugins", func() {
			shell.Execute("plugin ghost")

			Expect(out.lines).To(ContainElement("Err: plugin not found: ghost"))
		})

		It("should print transpiled text with the asm plugin", func() {
			path := writeFile("prog.ad", "sub c3 2")
			Expect(shell.Register(terminal.AsmPlugin{})).To(Succeed())

			shell.Execute("plugin asm " + path)

			Expect(out.lines).To(ContainElement("; AUTOMATIC CONVERSION FROM AD TO ASM"))
			Expect(out.lines).To(ContainElement("    SUB c3, 2"))
			Expect(out.lines[len(out.lines)-1]).To(Equal("    INT 0x80"))
			_, err := os.Stat(filepath.Join(dir, "prog.asm"))
			Expect(os.IsNotExist(err)).To(BeTrue())
		})
	})

	It("should name sources after the file", func() {
		Expect(terminal.SourceName("a/b/countdown.ad")).To(Equal("countdown"))
		Expect(terminal.SourceName("plain")).To(Equal("plain"))
	})
})
