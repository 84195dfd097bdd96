package terminal

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sarchlab/asmdone/api"
	"github.com/sarchlab/asmdone/core"
	"github.com/sarchlab/asmdone/transpile"
)

// ErrDuplicatePlugin is returned when two plugins share a name.
var ErrDuplicatePlugin = errors.New("duplicate plugin")

// Request is the message a plugin receives for "plugin NAME ARGS...".
type Request struct {
	Args   []string
	Driver api.Driver
}

// Response holds the lines a plugin wants printed.
type Response struct {
	Lines []string
}

// Plugin extends the shell with a named command. Plugins only exchange
// messages with the shell and cannot reach into it.
type Plugin interface {
	Name() string
	Handle(req Request) (Response, error)
}

// Register adds a plugin to the shell.
func (s *Shell) Register(p Plugin) error {
	name := p.Name()
	if _, ok := s.plugins[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, name)
	}

	s.plugins[name] = p
	return nil
}

// PluginNames lists the registered plugins in order.
func (s *Shell) PluginNames() []string {
	names := make([]string, 0, len(s.plugins))
	for name := range s.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AsmPlugin prints the transpiled text of a file without saving it.
type AsmPlugin struct{}

func (AsmPlugin) Name() string {
	return "asm"
}

func (AsmPlugin) Handle(req Request) (Response, error) {
	if len(req.Args) < 1 {
		return Response{}, errors.New("usage: plugin asm FILE")
	}

	path := req.Args[0]
	if !strings.HasSuffix(path, core.LibraryExt) {
		path += core.LibraryExt
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return Response{}, err
	}

	a := transpile.Transpile(string(src), transpile.Options{
		SourceName: path,
		Header:     req.Driver.Config().Messages().ConvHeader,
	})

	return Response{Lines: core.SplitLines(strings.TrimSuffix(a.Text, "\n"))}, nil
}
