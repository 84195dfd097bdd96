// Package terminal implements the line-oriented command shell of the
// AsmDone host.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sarchlab/asmdone/api"
	"github.com/sarchlab/asmdone/config"
	"github.com/sarchlab/asmdone/core"
)

// ClearScreen is written to the output when the screen is cleared.
const ClearScreen = "\033[H\033[2J"

type command struct {
	usage string
	run   func(s *Shell, args []string)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"hello":  {"hello", (*Shell).hello},
		"ver":    {"ver", (*Shell).version},
		"cls":    {"cls", (*Shell).clear},
		"run":    {"run FILE", (*Shell).run},
		"save":   {"save FILE", (*Shell).save},
		"check":  {"check FILE", (*Shell).check},
		"regs":   {"regs", (*Shell).regs},
		"help":   {"help", (*Shell).help},
		"plugin": {"plugin NAME [ARGS...]", (*Shell).plugin},
		"exit":   {"exit", (*Shell).exit},
	}
}

// Shell executes terminal commands against a driver. A shell is used
// from one goroutine.
type Shell struct {
	driver    api.Driver
	output    api.OutputSink
	registers api.RegisterSink
	plugins   map[string]Plugin
	last      core.Snapshot
	done      bool
}

// NewShell creates a shell that prints to output and shows registers on
// registers. The driver should print to the same output.
func NewShell(driver api.Driver, output api.OutputSink, registers api.RegisterSink) *Shell {
	return &Shell{
		driver:    driver,
		output:    output,
		registers: registers,
		plugins:   make(map[string]Plugin),
	}
}

// Done reports whether the exit command was executed.
func (s *Shell) Done() bool {
	return s.done
}

// Execute runs one command line. Empty lines are ignored.
func (s *Shell) Execute(line string) {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return
	}

	s.print("$ " + raw)

	parts := strings.Fields(raw)
	name := strings.ToLower(parts[0])

	cmd, ok := commands[name]
	if !ok {
		s.print(fmt.Sprintf(s.messages().NotFoundTmpl, name))
		return
	}

	slog.Debug("Shell", "command", name, "args", parts[1:])
	cmd.run(s, parts[1:])
}

func (s *Shell) messages() config.Messages {
	return s.driver.Config().Messages()
}

func (s *Shell) print(lines ...string) {
	s.output.WriteLines(lines)
}

func (s *Shell) hello(_ []string) {
	s.print(s.messages().TermReady)
}

func (s *Shell) version(_ []string) {
	s.print(VersionLine())
}

// VersionLine is the line printed by the ver command.
func VersionLine() string {
	return "AsmDone Core: " + config.Version
}

func (s *Shell) clear(_ []string) {
	s.print(ClearScreen)
}

func (s *Shell) exit(_ []string) {
	s.done = true
}

func (s *Shell) readSource(args []string) (path, src string, ok bool) {
	if len(args) < 1 {
		s.print("Err: missing FILE")
		return "", "", false
	}

	path = args[0]
	if !strings.HasSuffix(path, core.LibraryExt) {
		path += core.LibraryExt
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.print(fmt.Sprintf("%s: %v", s.messages().FileError, err))
		return "", "", false
	}

	return path, string(data), true
}

func (s *Shell) run(args []string) {
	path, src, ok := s.readSource(args)
	if !ok {
		return
	}

	res := s.driver.Run(SourceName(path), src)
	s.last = res.Registers
}

func (s *Shell) save(args []string) {
	path, src, ok := s.readSource(args)
	if !ok {
		return
	}

	// Save reports its own failures on the shared output.
	_, _ = s.driver.Save(path, src)
}

func (s *Shell) check(args []string) {
	path, src, ok := s.readSource(args)
	if !ok {
		return
	}

	if issues := s.driver.Check(SourceName(path), src); len(issues) == 0 {
		s.print("No issues found")
	}
}

func (s *Shell) regs(_ []string) {
	s.registers.ShowRegisters(s.last)
}

func (s *Shell) help(_ []string) {
	usages := make([]string, 0, len(commands))
	for _, cmd := range commands {
		usages = append(usages, "  "+cmd.usage)
	}
	sort.Strings(usages)

	s.print(append([]string{"Commands:"}, usages...)...)

	if len(s.plugins) > 0 {
		s.print("Plugins: " + strings.Join(s.PluginNames(), ", "))
	}
}

func (s *Shell) plugin(args []string) {
	if len(args) < 1 {
		s.print("Err: missing plugin NAME")
		return
	}

	p, ok := s.plugins[args[0]]
	if !ok {
		s.print(fmt.Sprintf("Err: plugin not found: %s", args[0]))
		return
	}

	resp, err := p.Handle(Request{Args: args[1:], Driver: s.driver})
	if err != nil {
		s.print(fmt.Sprintf("Plugin Err: %v", err))
		return
	}

	s.print(resp.Lines...)
}

// SourceName maps a file path to the source name used in warnings,
// such as "countdown" for "dir/countdown.ad".
func SourceName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), core.LibraryExt)
}
