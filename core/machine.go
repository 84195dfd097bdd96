package core

import (
	"errors"
	"fmt"
	"log/slog"
)

// DefaultMaxSteps is the reference step budget of a run.
const DefaultMaxSteps = 5000

// Status is the state of a machine.
type Status int

const (
	Running Status = iota
	HaltedNormal
	HaltedBudget
	HaltedError
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case HaltedNormal:
		return "Halted-Normal"
	case HaltedBudget:
		return "Halted-Budget"
	case HaltedError:
		return "Halted-Error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the observable outcome of a run.
type Result struct {
	Status    Status
	Registers Snapshot
	Log       []string
	Steps     int
	PC        int
	Fault     error
	Warnings  []AssemblyWarning
}

// Machine executes one flat program. A machine is single use and is
// not safe for concurrent use.
type Machine struct {
	state    coreState
	emu      instEmulator
	steps    int
	maxSteps int
	status   Status
	fault    error
	warnings []AssemblyWarning
}

// NewMachine prepares a machine at PC 0 with every register at zero.
// A maxSteps of zero or less selects DefaultMaxSteps.
func NewMachine(program Program, labels LabelTable, maxSteps int) *Machine {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	return &Machine{
		state: coreState{
			Code:   program,
			Labels: labels,
		},
		maxSteps: maxSteps,
		status:   Running,
	}
}

// Load assembles src, resolves its labels and returns a machine ready to
// run. A label conflict yields a machine that is already halted with the
// conflict as its fault, so the host still gets a result to display.
func Load(name, src string, resolver LibraryResolver, maxSteps int) *Machine {
	program, warnings := Assemble(name, src, resolver)
	return LoadProgram(program, warnings, maxSteps)
}

// LoadProgram is Load for a program that is already assembled. The
// warnings are recorded in the log as Load does.
func LoadProgram(program Program, warnings []AssemblyWarning, maxSteps int) *Machine {
	labels, err := ResolveLabels(program)

	m := NewMachine(program, labels, maxSteps)
	m.warnings = warnings
	for _, w := range warnings {
		m.state.Log = append(m.state.Log, w.String())
	}

	if err != nil {
		var conflict *LabelConflictError
		if errors.As(err, &conflict) {
			m.state.PC = conflict.Second
		}
		m.halt(HaltedError, err)
	}

	return m
}

// Status returns the current state of the machine.
func (m *Machine) Status() Status {
	return m.status
}

// Step executes at most one instruction and reports whether the
// machine is still running afterwards.
func (m *Machine) Step() bool {
	if m.status != Running {
		return false
	}

	if m.state.PC < 0 || m.state.PC >= len(m.state.Code) {
		m.halt(HaltedNormal, nil)
		return false
	}

	if m.steps >= m.maxSteps {
		m.halt(HaltedBudget, nil)
		return false
	}

	pc := m.state.PC
	inst := m.state.Code[pc]

	Trace("Inst", "PC", pc, "Source", inst.Source, "Line", inst.Line, "Inst", inst.String())

	if err := m.exec(inst); err != nil {
		m.state.PC = pc
		m.halt(HaltedError, &RuntimeFault{PC: pc, Inst: inst, Err: err})
		return false
	}

	m.steps++
	return true
}

func (m *Machine) exec(inst Instruction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	return m.emu.RunInst(inst, &m.state)
}

// Run steps the machine until it halts and returns the result.
func (m *Machine) Run() Result {
	for m.Step() {
	}

	return m.Result()
}

// Result returns the current observable state.
func (m *Machine) Result() Result {
	log := make([]string, len(m.state.Log))
	copy(log, m.state.Log)

	return Result{
		Status:    m.status,
		Registers: m.state.Registers.Snapshot(),
		Log:       log,
		Steps:     m.steps,
		PC:        m.state.PC,
		Fault:     m.fault,
		Warnings:  m.warnings,
	}
}

func (m *Machine) halt(status Status, fault error) {
	m.status = status
	m.fault = fault

	switch status {
	case HaltedBudget:
		m.state.Log = append(m.state.Log,
			fmt.Sprintf("step budget of %d exhausted at instruction %d", m.maxSteps, m.state.PC))
		slog.Warn("Halt", "Status", status, "Steps", m.steps, "PC", m.state.PC)
	case HaltedError:
		m.state.Log = append(m.state.Log, fault.Error())
		slog.Error("Halt", "Status", status, "Steps", m.steps, "PC", m.state.PC, "Err", fault)
	default:
		slog.Debug("Halt", "Status", status, "Steps", m.steps, "PC", m.state.PC)
	}
}
