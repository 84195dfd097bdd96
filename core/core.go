package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// Core clocks a Machine with an akita event engine, executing one
// instruction per tick.
type Core struct {
	*sim.TickingComponent

	machine *Machine
	ticks   int
}

// MapProgram loads the machine the core runs and schedules the first tick.
func (c *Core) MapProgram(m *Machine) {
	c.machine = m
	c.ticks = 0

	if m.Status() == Running {
		c.TickNow()
	}
}

// Tick runs the program for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.machine == nil {
		return false
	}

	c.ticks++
	return c.machine.Step()
}

// Ticks returns the number of cycles the core has been ticked.
func (c *Core) Ticks() int {
	return c.ticks
}

// Result returns the result of the mapped machine.
func (c *Core) Result() Result {
	if c.machine == nil {
		return Result{Status: HaltedNormal}
	}
	return c.machine.Result()
}

// RunOnEngine maps m onto a fresh serial engine and runs it to completion.
func RunOnEngine(m *Machine) (Result, error) {
	engine := sim.NewSerialEngine()

	c := NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("AsmDone.Core")

	c.MapProgram(m)

	if err := engine.Run(); err != nil {
		return Result{}, fmt.Errorf("running engine: %w", err)
	}

	return c.Result(), nil
}
