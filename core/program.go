package core

import (
	"errors"
	"fmt"
	"log/slog"
)

// MainSource is the source name given to the unit being run when the
// host does not provide one.
const MainSource = "main"

// Program is the flat, import-inlined instruction list of one run.
type Program []Instruction

// Assemble tokenizes src and inlines its imports one level deep.
// Problems with imports are returned as warnings; they never stop
// assembly of the remaining lines.
func Assemble(name, src string, resolver LibraryResolver) (Program, []AssemblyWarning) {
	if name == "" {
		name = MainSource
	}

	var (
		program  Program
		warnings []AssemblyWarning
	)

	warn := func(source string, line int, format string, args ...any) {
		w := AssemblyWarning{Source: source, Line: line, Msg: fmt.Sprintf(format, args...)}
		slog.Warn("Assemble", "source", w.Source, "line", w.Line, "msg", w.Msg)
		warnings = append(warnings, w)
	}

	for _, line := range TokenizeSource(src) {
		if len(line.Tokens) == 0 {
			continue
		}

		if Opcode(line.Tokens[0]) != OpImport {
			program = append(program, Instruction{Tokens: line.Tokens, Source: name, Line: line.Number})
			continue
		}

		if len(line.Tokens) < 2 {
			warn(name, line.Number, "import without a library name")
			continue
		}

		lib := line.Tokens[1]
		if resolver == nil {
			warn(name, line.Number, "library not found: %s", lib)
			continue
		}

		libSrc, err := resolver.Resolve(lib)
		if err != nil {
			if errors.Is(err, ErrLibraryNotFound) {
				warn(name, line.Number, "library not found: %s", lib)
			} else {
				warn(name, line.Number, "library %s: %v", lib, err)
			}
			continue
		}

		program, warnings = inlineLibrary(program, warnings, lib, libSrc)
	}

	return program, warnings
}

// inlineLibrary splices the lines of one library. Imports inside a
// library are reported and dropped; expansion is single-level.
func inlineLibrary(
	program Program,
	warnings []AssemblyWarning,
	lib, src string,
) (Program, []AssemblyWarning) {
	for _, line := range TokenizeSource(src) {
		if len(line.Tokens) == 0 {
			continue
		}

		if Opcode(line.Tokens[0]) == OpImport {
			w := AssemblyWarning{
				Source: lib,
				Line:   line.Number,
				Msg:    fmt.Sprintf("nested import %q not expanded", line.String()),
			}
			slog.Warn("Assemble", "source", w.Source, "line", w.Line, "msg", w.Msg)
			warnings = append(warnings, w)
			continue
		}

		program = append(program, Instruction{Tokens: line.Tokens, Source: lib, Line: line.Number})
	}

	return program, warnings
}
