package api

import (
	"time"

	"github.com/sarchlab/asmdone/config"
	"github.com/sarchlab/asmdone/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	cfg       config.Config
	resolver  core.LibraryResolver
	output    OutputSink
	registers RegisterSink
	artifacts ArtifactSink
	clock     func() time.Time
}

// NewDriverBuilder returns a builder with the default configuration.
func NewDriverBuilder() DriverBuilder {
	return DriverBuilder{
		cfg: config.Default(),
	}
}

// WithConfig sets the configuration.
func (b DriverBuilder) WithConfig(cfg config.Config) DriverBuilder {
	b.cfg = cfg
	return b
}

// WithResolver sets where imported libraries come from. Without one the
// driver reads them from the configured packages directory.
func (b DriverBuilder) WithResolver(r core.LibraryResolver) DriverBuilder {
	b.resolver = r
	return b
}

// WithOutputSink sets where printed lines go.
func (b DriverBuilder) WithOutputSink(s OutputSink) DriverBuilder {
	b.output = s
	return b
}

// WithRegisterSink sets where final registers are shown.
func (b DriverBuilder) WithRegisterSink(s RegisterSink) DriverBuilder {
	b.registers = s
	return b
}

// WithArtifactSink sets where saved programs go.
func (b DriverBuilder) WithArtifactSink(s ArtifactSink) DriverBuilder {
	b.artifacts = s
	return b
}

// WithClock sets the time source of the transpiler header.
func (b DriverBuilder) WithClock(clock func() time.Time) DriverBuilder {
	b.clock = clock
	return b
}

// Build create a driver.
func (b DriverBuilder) Build() Driver {
	d := &driverImpl{
		cfg:       b.cfg,
		resolver:  b.resolver,
		output:    b.output,
		registers: b.registers,
		artifacts: b.artifacts,
		clock:     b.clock,
	}

	if d.resolver == nil {
		d.resolver = core.DirResolver{Dir: b.cfg.PackagesDir}
	}
	if d.output == nil {
		d.output = discardOutput{}
	}
	if d.registers == nil {
		d.registers = discardRegisters{}
	}
	if d.artifacts == nil {
		d.artifacts = discardArtifacts{}
	}
	if d.clock == nil {
		d.clock = time.Now
	}

	return d
}
