// Package verify provides static checks and trial runs for AD programs.
//
// This package implements two complementary verification stages:
//
// 1. Static Lint (lint.go): one pass over the flat program
//   - STRUCT checks: duplicate or empty labels, unknown instructions,
//     missing operands, malformed check clauses
//   - OPERAND checks: undeclared registers, non-numeric literals
//   - CONTROL checks: jump and check targets that name no label
//   - IMPORT checks: libraries the assembler could not inline
//
// 2. Trial Run (report.go): one bounded run on core.Machine
//   - Confirms how the program halts and what it prints
//
// Lint looks at every instruction, so it finds problems on paths a
// particular run never takes. The machine faults only on the first
// problem it executes.
//
// # Usage Example
//
//	resolver := core.DirResolver{Dir: "packages"}
//
//	// Stage 1: Lint checks
//	for _, issue := range verify.CheckSource("main", src, resolver) {
//	    fmt.Println(issue)
//	}
//
//	// Both stages, written as one report
//	report := verify.GenerateReport("main", src, resolver, 5000)
//	report.WriteReport(os.Stdout)
//
// # Limitations
//
//   - Show on an undeclared register is reported even though the
//     machine only logs an error marker for it
//   - Reachability is not analysed; dead code is linted like live code
package verify

// IssuesByType groups issues by their type, keeping their order.
func IssuesByType(issues []Issue) map[IssueType][]Issue {
	groups := make(map[IssueType][]Issue)
	for _, issue := range issues {
		groups[issue.Type] = append(groups[issue.Type], issue)
	}
	return groups
}
