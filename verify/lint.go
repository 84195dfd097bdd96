package verify

import (
	"errors"
	"fmt"

	"github.com/sarchlab/asmdone/core"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct  IssueType = "STRUCT"
	IssueOperand IssueType = "OPERAND"
	IssueControl IssueType = "CONTROL"
	IssueImport  IssueType = "IMPORT"
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Index   int // instruction index, -1 for import issues
	Source  string
	Line    int
	Message string
}

func (i Issue) String() string {
	if i.Index < 0 {
		return fmt.Sprintf("[%s] %s:%d: %s", i.Type, i.Source, i.Line, i.Message)
	}
	return fmt.Sprintf("[%s] %s:%d (instruction %d): %s", i.Type, i.Source, i.Line, i.Index, i.Message)
}

// CheckSource assembles src and lints the result, reporting assembly
// warnings as IMPORT issues.
func CheckSource(name, src string, resolver core.LibraryResolver) []Issue {
	program, warnings := core.Assemble(name, src, resolver)
	return CheckProgram(program, warnings)
}

// CheckProgram lints an assembled program together with the warnings
// its assembly produced.
func CheckProgram(program core.Program, warnings []core.AssemblyWarning) []Issue {
	var issues []Issue
	for _, w := range warnings {
		issues = append(issues, Issue{
			Type:    IssueImport,
			Index:   -1,
			Source:  w.Source,
			Line:    w.Line,
			Message: w.Msg,
		})
	}

	return append(issues, RunLint(program)...)
}

// RunLint reports every static problem of a flat program.
func RunLint(program core.Program) []Issue {
	var issues []Issue

	report := func(t IssueType, idx int, format string, args ...any) {
		inst := program[idx]
		issues = append(issues, Issue{
			Type:    t,
			Index:   idx,
			Source:  inst.Source,
			Line:    inst.Line,
			Message: fmt.Sprintf(format, args...),
		})
	}

	labels := collectLabels(program, report)

	for idx, inst := range program {
		if _, ok := inst.Label(); ok {
			continue
		}

		ops := inst.Operands()
		switch inst.Opcode() {
		case core.OpSet:
			if !hasOperands(report, idx, inst, 2) {
				continue
			}
			checkRegister(report, idx, ops[0])
			checkLiteral(report, idx, ops[1])
		case core.OpAdd, core.OpSub:
			if !hasOperands(report, idx, inst, 2) {
				continue
			}
			checkRegister(report, idx, ops[0])
			if _, err := core.ParseRegister(ops[1]); err != nil {
				checkLiteral(report, idx, ops[1])
			}
		case core.OpCheck:
			if !hasOperands(report, idx, inst, 3) {
				continue
			}
			checkRegister(report, idx, ops[0])
			checkOperator(report, idx, ops[1])
			checkLiteral(report, idx, ops[2])

			target, ok, err := core.ParseCheckClause(ops[3:])
			if err != nil {
				report(IssueStruct, idx, "%v", err)
			} else if ok {
				checkTarget(report, idx, labels, target)
			}
		case core.OpShow:
			if !hasOperands(report, idx, inst, 1) {
				continue
			}
			checkRegister(report, idx, ops[0])
		case core.OpJump:
			if !hasOperands(report, idx, inst, 1) {
				continue
			}
			checkTarget(report, idx, labels, ops[0])
		default:
			report(IssueStruct, idx, "unknown instruction %q", string(inst.Opcode()))
		}
	}

	return issues
}

type reporter func(t IssueType, idx int, format string, args ...any)

// collectLabels records the first definition of each label and reports
// every redefinition, rather than stopping at the first like
// core.ResolveLabels.
func collectLabels(program core.Program, report reporter) core.LabelTable {
	labels := make(core.LabelTable)

	for idx, inst := range program {
		name, ok := inst.Label()
		if !ok {
			continue
		}

		if name == "" {
			report(IssueStruct, idx, "%v", core.ErrEmptyLabel)
			continue
		}

		if first, exists := labels[name]; exists {
			err := &core.LabelConflictError{Name: name, First: first, Second: idx}
			report(IssueStruct, idx, "%v", err)
			continue
		}

		labels[name] = idx
	}

	return labels
}

func hasOperands(report reporter, idx int, inst core.Instruction, n int) bool {
	if got := len(inst.Operands()); got < n {
		report(IssueStruct, idx, "%s expects %d operand(s), got %d", inst.Opcode(), n, got)
		return false
	}
	return true
}

func checkRegister(report reporter, idx int, name string) {
	if _, err := core.ParseRegister(name); err != nil {
		report(IssueOperand, idx, "%v", err)
	}
}

func checkLiteral(report reporter, idx int, tok string) {
	if _, err := core.ParseLiteral(tok); err != nil {
		report(IssueOperand, idx, "%v", err)
	}
}

func checkOperator(report reporter, idx int, op string) {
	for _, known := range core.CompareOps {
		if op == known {
			return
		}
	}
	report(IssueStruct, idx, "%v: unknown operator %q", core.ErrMalformedCheck, op)
}

func checkTarget(report reporter, idx int, labels core.LabelTable, target string) {
	if _, err := labels.Lookup(target); err != nil {
		if errors.Is(err, core.ErrUndefinedLabel) {
			report(IssueControl, idx, "jump target %v", err)
			return
		}
		report(IssueControl, idx, "%v", err)
	}
}
