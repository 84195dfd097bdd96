// Package transpile renders AD source as assembly-style text.
//
// The translation is per line and context free. Every source line yields
// exactly one body line, and constructs without a rendering become
// "UNKNOWN" comments, so transpilation never fails.
//
//	set R V          ->  MOV R, V
//	add R V          ->  ADD R, V
//	sub R V          ->  SUB R, V
//	check R OP V ... ->  CMP R, V
//	(name)           ->  name:
//	> (name)         ->  JMP name
package transpile

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sarchlab/asmdone/core"
)

const (
	// AsmExt is the extension of the rendered artifact.
	AsmExt = ".asm"

	DefaultHeader = "; AUTOMATIC CONVERSION FROM AD TO ASM"
	TimeLayout    = "2006-01-02 15:04:05"

	indent = "    "
)

// Options controls the fixed header of the artifact.
type Options struct {
	SourceName string    // shown in the header; defaults to "main.ad"
	Header     string    // first header line; defaults to DefaultHeader
	Time       time.Time // defaults to time.Now()
}

// Artifact is the rendered text paired with the source it came from.
type Artifact struct {
	SourceName string
	Name       string
	Text       string
}

// ArtifactName maps x.ad to x.asm, keeping the directory.
func ArtifactName(sourceName string) string {
	return strings.TrimSuffix(sourceName, filepath.Ext(sourceName)) + AsmExt
}

// Transpile renders src. It never fails.
func Transpile(src string, opts Options) Artifact {
	if opts.SourceName == "" {
		opts.SourceName = core.MainSource + core.LibraryExt
	}
	if opts.Header == "" {
		opts.Header = DefaultHeader
	}
	if opts.Time.IsZero() {
		opts.Time = time.Now()
	}

	var b strings.Builder

	b.WriteString(opts.Header + "\n")
	fmt.Fprintf(&b, "; Source: %s\n", filepath.Base(opts.SourceName))
	fmt.Fprintf(&b, "; Date: %s\n", opts.Time.Format(TimeLayout))
	b.WriteString("\n")
	b.WriteString("SECTION .text\n")
	b.WriteString("GLOBAL _start\n")
	b.WriteString("_start:\n")

	for _, line := range core.SplitLines(src) {
		b.WriteString(Line(line) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(indent + "MOV EAX, 1\n")
	b.WriteString(indent + "INT 0x80\n")

	return Artifact{
		SourceName: opts.SourceName,
		Name:       ArtifactName(opts.SourceName),
		Text:       b.String(),
	}
}

// Line renders one source line as one line of output.
func Line(text string) string {
	trimmed := strings.TrimSpace(text)
	tokens := core.Tokenize(text)

	if len(tokens) == 0 {
		if trimmed == "" {
			return indent + ";"
		}
		return indent + "; " + trimmed
	}

	if name, ok := (core.Instruction{Tokens: tokens}).Label(); ok && name != "" {
		return name + ":"
	}

	switch core.Opcode(tokens[0]) {
	case core.OpSet:
		if len(tokens) >= 3 {
			return fmt.Sprintf("%sMOV %s, %s", indent, tokens[1], tokens[2])
		}
	case core.OpAdd:
		if len(tokens) >= 3 {
			return fmt.Sprintf("%sADD %s, %s", indent, tokens[1], tokens[2])
		}
	case core.OpSub:
		if len(tokens) >= 3 {
			return fmt.Sprintf("%sSUB %s, %s", indent, tokens[1], tokens[2])
		}
	case core.OpCheck:
		if len(tokens) >= 4 {
			return fmt.Sprintf("%sCMP %s, %s", indent, tokens[1], tokens[3])
		}
	case core.OpJump:
		if len(tokens) >= 2 {
			return fmt.Sprintf("%sJMP %s", indent, core.LabelName(tokens[1]))
		}
	}

	return indent + "; UNKNOWN: " + trimmed
}
