package api

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sarchlab/asmdone/core"
	"github.com/sarchlab/asmdone/transpile"
)

// OutputSink receives the lines a run or command prints.
type OutputSink interface {
	WriteLines(lines []string)
}

// RegisterSink receives the final register values of a run.
type RegisterSink interface {
	ShowRegisters(s core.Snapshot)
}

// ArtifactSink persists a source together with its transpiled text.
type ArtifactSink interface {
	SaveArtifact(source string, a transpile.Artifact) error
}

// WriterOutputSink prints each line to W.
type WriterOutputSink struct {
	W io.Writer
}

// WriteLines prints the lines, one per row.
func (s WriterOutputSink) WriteLines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(s.W, l)
	}
}

// TableRegisterSink draws the registers as a table on W.
type TableRegisterSink struct {
	W     io.Writer
	Title string
}

// ShowRegisters renders the snapshot.
func (s TableRegisterSink) ShowRegisters(snap core.Snapshot) {
	fmt.Fprintln(s.W, core.RenderRegisters(s.Title, snap))
}

// FileArtifactSink writes x.ad and x.asm next to each other.
type FileArtifactSink struct{}

// SaveArtifact writes both files, creating the directory if needed.
func (FileArtifactSink) SaveArtifact(source string, a transpile.Artifact) error {
	if err := os.MkdirAll(filepath.Dir(a.SourceName), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(a.SourceName, []byte(source), 0o644); err != nil {
		return err
	}

	return os.WriteFile(a.Name, []byte(a.Text), 0o644)
}

type discardOutput struct{}

func (discardOutput) WriteLines([]string) {}

type discardRegisters struct{}

func (discardRegisters) ShowRegisters(core.Snapshot) {}

type discardArtifacts struct{}

func (discardArtifacts) SaveArtifact(string, transpile.Artifact) error { return nil }
