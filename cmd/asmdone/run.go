package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/asmdone/core"
	"github.com/sarchlab/asmdone/terminal"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run sourceFile",
	Short: "Run an AD program and show its registers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}

		res := newDriver().Run(terminal.SourceName(args[0]), src)
		if res.Status == core.HaltedError {
			return fmt.Errorf("%s ended %s", args[0], res.Status)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
