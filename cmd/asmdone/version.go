package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/asmdone/terminal"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the engine version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(terminal.VersionLine())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
