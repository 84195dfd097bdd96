// Package api defines the host-facing driver of the AsmDone engine.
package api

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sarchlab/asmdone/config"
	"github.com/sarchlab/asmdone/core"
	"github.com/sarchlab/asmdone/transpile"
	"github.com/sarchlab/asmdone/verify"
)

// Driver runs, saves and checks AD programs on behalf of a host.
type Driver interface {
	// Run assembles and executes source. The output lines go to the
	// output sink, bracketed by the run banners, and the final registers
	// go to the register sink. Runs on one driver never overlap.
	Run(name, source string) core.Result

	// Save transpiles source and hands the pair to the artifact sink.
	// A path without the .ad extension gets it appended.
	Save(path, source string) (transpile.Artifact, error)

	// Check lints source without running it.
	Check(name, source string) []verify.Issue

	// Config returns the configuration the driver was built with.
	Config() config.Config
}

type driverImpl struct {
	mu sync.Mutex

	cfg       config.Config
	resolver  core.LibraryResolver
	output    OutputSink
	registers RegisterSink
	artifacts ArtifactSink
	clock     func() time.Time
}

func (d *driverImpl) Config() config.Config {
	return d.cfg
}

func (d *driverImpl) Run(name, source string) core.Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	msgs := d.cfg.Messages()
	d.output.WriteLines([]string{msgs.RunStart})

	m := core.Load(name, source, d.resolver, d.cfg.MaxSteps)
	res := d.execute(m)

	d.output.WriteLines(res.Log)
	d.output.WriteLines([]string{fmt.Sprintf("%s (Ops: %d)", msgs.RunEnd, res.Steps)})
	d.registers.ShowRegisters(res.Registers)

	core.LogState(res)

	return res
}

func (d *driverImpl) execute(m *core.Machine) core.Result {
	if d.cfg.Engine != config.EngineSim {
		return m.Run()
	}

	res, err := core.RunOnEngine(m)
	if err != nil {
		slog.Error("Engine", "Err", err)
		return m.Result()
	}

	return res
}

func (d *driverImpl) Save(path, source string) (transpile.Artifact, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	msgs := d.cfg.Messages()

	if !strings.HasSuffix(path, core.LibraryExt) {
		path += core.LibraryExt
	}

	artifact := transpile.Transpile(source, transpile.Options{
		SourceName: path,
		Header:     msgs.ConvHeader,
		Time:       d.clock(),
	})

	if err := d.artifacts.SaveArtifact(source, artifact); err != nil {
		d.output.WriteLines([]string{fmt.Sprintf("%s: %v", msgs.FileError, err)})
		return artifact, fmt.Errorf("saving %s: %w", path, err)
	}

	d.output.WriteLines([]string{
		fmt.Sprintf("[SAVE] Exported: %s -> %s",
			filepath.Base(artifact.SourceName), filepath.Base(artifact.Name)),
		msgs.SaveMsg,
	})

	slog.Info("Save", "source", artifact.SourceName, "artifact", artifact.Name)

	return artifact, nil
}

func (d *driverImpl) Check(name, source string) []verify.Issue {
	d.mu.Lock()
	defer d.mu.Unlock()

	issues := verify.CheckSource(name, source, d.resolver)

	lines := make([]string, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, issue.String())
	}
	d.output.WriteLines(lines)

	return issues
}
