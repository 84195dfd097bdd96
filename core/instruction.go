package core

import "strings"

// Opcode names the operation of an instruction.
type Opcode string

const (
	OpSet    Opcode = "set"
	OpAdd    Opcode = "add"
	OpSub    Opcode = "sub"
	OpCheck  Opcode = "check"
	OpShow   Opcode = "show"
	OpJump   Opcode = ">"
	OpImport Opcode = "import"
)

// Instruction is one non-empty token list of the flat program.
type Instruction struct {
	Tokens []string
	Source string // source unit the line came from ("main" or a library name)
	Line   int    // 1-based line inside Source
}

// Opcode returns the first token of the instruction.
func (i Instruction) Opcode() Opcode {
	if len(i.Tokens) == 0 {
		return ""
	}
	return Opcode(i.Tokens[0])
}

// Operands returns every token after the opcode.
func (i Instruction) Operands() []string {
	if len(i.Tokens) < 2 {
		return nil
	}
	return i.Tokens[1:]
}

// Label returns the label defined by the instruction, if it is a
// label-definition line such as "(loop)".
func (i Instruction) Label() (string, bool) {
	if len(i.Tokens) == 0 {
		return "", false
	}
	return parenthesized(i.Tokens[0])
}

// String renders the instruction the way it would be typed.
func (i Instruction) String() string {
	return strings.Join(i.Tokens, " ")
}

func parenthesized(tok string) (string, bool) {
	if len(tok) >= 2 && strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")") {
		return tok[1 : len(tok)-1], true
	}
	return "", false
}

// LabelName strips optional parentheses from a jump target.
func LabelName(tok string) string {
	if name, ok := parenthesized(tok); ok {
		return name
	}
	return tok
}
