package core

import (
	"errors"
	"fmt"
)

var (
	ErrUndeclaredRegister = errors.New("undeclared register")
	ErrUndefinedLabel     = errors.New("undefined label")
	ErrMissingOperand     = errors.New("missing operand")
	ErrBadLiteral         = errors.New("not an integer literal")
	ErrMalformedCheck     = errors.New("malformed check clause")
	ErrUnknownInstruction = errors.New("unknown instruction")
	ErrOverflow           = errors.New("integer overflow")
	ErrLibraryNotFound    = errors.New("library not found")
	ErrEmptyLabel         = errors.New("empty label name")
)

// AssemblyWarning reports an import that could not be inlined. Assembly
// always continues past a warning.
type AssemblyWarning struct {
	Source string
	Line   int
	Msg    string
}

func (w AssemblyWarning) String() string {
	return fmt.Sprintf("[WARN] %s:%d: %s", w.Source, w.Line, w.Msg)
}

// LabelConflictError is returned when a label is defined twice.
type LabelConflictError struct {
	Name   string
	First  int
	Second int
}

func (e *LabelConflictError) Error() string {
	return fmt.Sprintf("label %q defined at instruction %d and again at instruction %d",
		e.Name, e.First, e.Second)
}

// RuntimeFault halts a run. PC is the index of the offending
// instruction in the flat program.
type RuntimeFault struct {
	PC   int
	Inst Instruction
	Err  error
}

func (f *RuntimeFault) Error() string {
	return fmt.Sprintf("runtime fault at instruction %d (%s:%d %q): %v",
		f.PC, f.Inst.Source, f.Inst.Line, f.Inst.String(), f.Err)
}

func (f *RuntimeFault) Unwrap() error {
	return f.Err
}
