package core

import (
	"fmt"
	"strconv"
)

type coreState struct {
	PC        int
	Registers RegisterFile
	Code      Program
	Labels    LabelTable
	Log       []string
}

type instEmulator struct {
}

// RunInst executes one instruction. Non-jump instructions advance the
// PC by one; jumps set it directly.
func (i instEmulator) RunInst(inst Instruction, state *coreState) error {
	if _, ok := inst.Label(); ok {
		state.PC++
		return nil
	}

	instFuncs := map[Opcode]func(Instruction, *coreState) error{
		OpSet:   i.runSet,
		OpAdd:   i.runAdd,
		OpSub:   i.runSub,
		OpCheck: i.runCheck,
		OpShow:  i.runShow,
		OpJump:  i.runJump,
	}

	// An unknown opcode faults; it is never skipped as a no-op.
	instFunc, ok := instFuncs[inst.Opcode()]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownInstruction, string(inst.Opcode()))
	}

	return instFunc(inst, state)
}

func (i instEmulator) runSet(inst Instruction, state *coreState) error {
	ops, err := operands(inst, 2)
	if err != nil {
		return err
	}

	dst, err := ParseRegister(ops[0])
	if err != nil {
		return err
	}

	v, err := ParseLiteral(ops[1])
	if err != nil {
		return err
	}

	state.Registers.Set(dst, v)
	state.PC++
	return nil
}

func (i instEmulator) runAdd(inst Instruction, state *coreState) error {
	return i.runArith(inst, state, addInt64)
}

func (i instEmulator) runSub(inst Instruction, state *coreState) error {
	return i.runArith(inst, state, subInt64)
}

func (i instEmulator) runArith(
	inst Instruction,
	state *coreState,
	op func(a, b int64) (int64, bool),
) error {
	ops, err := operands(inst, 2)
	if err != nil {
		return err
	}

	dst, err := ParseRegister(ops[0])
	if err != nil {
		return err
	}

	src, err := i.readOperand(ops[1], state)
	if err != nil {
		return err
	}

	res, ok := op(state.Registers.Get(dst), src)
	if !ok {
		return fmt.Errorf("%w: %s %d %s %d", ErrOverflow,
			dst, state.Registers.Get(dst), inst.Opcode(), src)
	}

	state.Registers.Set(dst, res)
	state.PC++
	return nil
}

// runCheck implements
//
//	check R OP V [then [>] LABEL]
func (i instEmulator) runCheck(inst Instruction, state *coreState) error {
	ops, err := operands(inst, 3)
	if err != nil {
		return err
	}

	reg, err := ParseRegister(ops[0])
	if err != nil {
		return err
	}

	rhs, err := ParseLiteral(ops[2])
	if err != nil {
		return err
	}

	res, err := compare(state.Registers.Get(reg), ops[1], rhs)
	if err != nil {
		return err
	}

	target, hasClause, err := ParseCheckClause(ops[3:])
	if err != nil {
		return err
	}

	if !res || !hasClause {
		state.PC++
		return nil
	}

	idx, err := state.Labels.Lookup(target)
	if err != nil {
		return err
	}

	state.PC = idx
	return nil
}

func (i instEmulator) runShow(inst Instruction, state *coreState) error {
	ops, err := operands(inst, 1)
	if err != nil {
		return err
	}

	value := "ERR"
	if reg, err := ParseRegister(ops[0]); err == nil {
		value = strconv.FormatInt(state.Registers.Get(reg), 10)
	}

	state.Log = append(state.Log, fmt.Sprintf("OUT: %s = %s", ops[0], value))
	state.PC++
	return nil
}

func (i instEmulator) runJump(inst Instruction, state *coreState) error {
	ops, err := operands(inst, 1)
	if err != nil {
		return err
	}

	idx, err := state.Labels.Lookup(ops[0])
	if err != nil {
		return err
	}

	state.PC = idx
	return nil
}

// readOperand resolves a register name to its value, or parses a literal.
func (i instEmulator) readOperand(tok string, state *coreState) (int64, error) {
	if reg, err := ParseRegister(tok); err == nil {
		return state.Registers.Get(reg), nil
	}
	return ParseLiteral(tok)
}

// ParseCheckClause parses the optional tail of a check instruction. An
// empty tail has no clause; otherwise it must be "then LABEL" or
// "then > LABEL".
func ParseCheckClause(rest []string) (target string, ok bool, err error) {
	switch {
	case len(rest) == 0:
		return "", false, nil
	case rest[0] != "then":
		return "", false, fmt.Errorf("%w: expected \"then\", got %q", ErrMalformedCheck, rest[0])
	case len(rest) == 2 && rest[1] != string(OpJump):
		return rest[1], true, nil
	case len(rest) == 3 && rest[1] == string(OpJump):
		return rest[2], true, nil
	default:
		return "", false, fmt.Errorf("%w: expected \"then > LABEL\"", ErrMalformedCheck)
	}
}

// CompareOps lists the comparison operators accepted by check.
var CompareOps = []string{"==", "!=", ">", "<"}

func compare(lhs int64, op string, rhs int64) (bool, error) {
	switch op {
	case "==":
		return lhs == rhs, nil
	case "!=":
		return lhs != rhs, nil
	case ">":
		return lhs > rhs, nil
	case "<":
		return lhs < rhs, nil
	default:
		return false, fmt.Errorf("%w: unknown operator %q", ErrMalformedCheck, op)
	}
}

func operands(inst Instruction, n int) ([]string, error) {
	ops := inst.Operands()
	if len(ops) < n {
		return nil, fmt.Errorf("%w: %s expects %d operand(s), got %d",
			ErrMissingOperand, inst.Opcode(), n, len(ops))
	}
	return ops, nil
}

// ParseLiteral parses a base-10 signed integer literal.
func ParseLiteral(tok string) (int64, error) {
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrBadLiteral, tok)
	}
	return v, nil
}

func addInt64(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

func subInt64(a, b int64) (int64, bool) {
	r := a - b
	if (b > 0 && r > a) || (b < 0 && r < a) {
		return 0, false
	}
	return r, true
}
