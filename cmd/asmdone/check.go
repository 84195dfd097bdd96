package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/asmdone/core"
	"github.com/sarchlab/asmdone/terminal"
	"github.com/sarchlab/asmdone/verify"
)

var reportFile string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check sourceFile",
	Short: "Lint an AD program without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}

		name := terminal.SourceName(args[0])

		if reportFile != "" {
			resolver := core.DirResolver{Dir: cfg.PackagesDir}
			report := verify.GenerateReport(name, src, resolver, cfg.MaxSteps)
			if err := report.SaveReportToFile(reportFile); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Report written to %s\n", reportFile)
		}

		issues := newDriver().Check(name, src)
		if len(issues) > 0 {
			return fmt.Errorf("%s has %d issues", args[0], len(issues))
		}

		fmt.Fprintln(os.Stdout, "No issues found")
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&reportFile, "report", "", "also write a full verification report to this file")
	rootCmd.AddCommand(checkCmd)
}
