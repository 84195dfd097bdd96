package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/asmdone/core"
	"github.com/sarchlab/asmdone/verify"
)

// main runs lint and a trial run on one AD program
func main() {
	programPath := os.Getenv("ASMDONE_PROGRAM")
	if len(os.Args) > 1 {
		programPath = os.Args[1]
	}
	if programPath == "" {
		programPath = "samples/countdown/countdown.ad"
	}

	src, err := os.ReadFile(programPath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", programPath, err)
	}

	packagesDir := os.Getenv("ASMDONE_PACKAGES")
	if packagesDir == "" {
		packagesDir = filepath.Join(filepath.Dir(programPath), "packages")
	}

	name := strings.TrimSuffix(filepath.Base(programPath), core.LibraryExt)
	report := verify.GenerateReport(name, string(src), core.DirResolver{Dir: packagesDir}, core.DefaultMaxSteps)
	report.WriteReport(os.Stdout)
	if len(report.LintIssues) > 0 {
		log.Fatalf("Verification of %s failed with %d lint issues", programPath, len(report.LintIssues))
	}
	if report.Run.Status != core.HaltedNormal {
		log.Fatalf("Trial run of %s ended %s", programPath, report.Run.Status)
	}
}
