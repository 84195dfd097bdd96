package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/asmdone/core"
)

// VerificationReport pairs the static lint of a program with a trial run.
type VerificationReport struct {
	Name          string
	Instructions  int
	LintIssues    []Issue
	StructIssues  []Issue
	OperandIssues []Issue
	ControlIssues []Issue
	ImportIssues  []Issue
	Run           core.Result
}

// GenerateReport lints src and runs it once with the given step budget.
func GenerateReport(name, src string, resolver core.LibraryResolver, maxSteps int) *VerificationReport {
	program, warnings := core.Assemble(name, src, resolver)

	report := &VerificationReport{
		Name:         name,
		Instructions: len(program),
		LintIssues:   CheckProgram(program, warnings),
	}

	groups := IssuesByType(report.LintIssues)
	report.StructIssues = groups[IssueStruct]
	report.OperandIssues = groups[IssueOperand]
	report.ControlIssues = groups[IssueControl]
	report.ImportIssues = groups[IssueImport]

	report.Run = core.LoadProgram(program, warnings, maxSteps).Run()

	return report
}

// OK reports whether the program is lint clean and halted normally.
func (r *VerificationReport) OK() bool {
	return len(r.LintIssues) == 0 && r.Run.Status == core.HaltedNormal
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)
	dash := strings.Repeat("-", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "AD PROGRAM VERIFICATION REPORT: %s\n", r.Name)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "\nAssembled %d instructions\n", r.Instructions)

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		fmt.Fprintf(w, "Found %d lint issues:\n", len(r.LintIssues))
		writeGroup(w, dash, IssueImport, r.ImportIssues)
		writeGroup(w, dash, IssueStruct, r.StructIssues)
		writeGroup(w, dash, IssueOperand, r.OperandIssues)
		writeGroup(w, dash, IssueControl, r.ControlIssues)
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: TRIAL RUN")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Status: %s after %d steps (pc=%d)\n", r.Run.Status, r.Run.Steps, r.Run.PC)
	if r.Run.Fault != nil {
		fmt.Fprintf(w, "Fault: %v\n", r.Run.Fault)
	}
	for _, line := range r.Run.Log {
		fmt.Fprintf(w, "  %s\n", line)
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "VERIFICATION SUMMARY")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d OPERAND, %d CONTROL, %d IMPORT)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.OperandIssues),
		len(r.ControlIssues), len(r.ImportIssues))
	fmt.Fprintf(w, "Run Result: %s\n", r.Run.Status)

	if r.OK() {
		fmt.Fprintln(w, "PROGRAM PASSED ALL CHECKS")
	} else {
		fmt.Fprintln(w, "PROGRAM HAS PROBLEMS")
	}

	fmt.Fprintln(w)
}

func writeGroup(w io.Writer, dash string, t IssueType, issues []Issue) {
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s ISSUES (%d):\n", t, len(issues))
	fmt.Fprintln(w, dash)
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
