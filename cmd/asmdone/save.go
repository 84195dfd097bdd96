package main

import (
	"github.com/spf13/cobra"
)

// saveCmd represents the save command
var saveCmd = &cobra.Command{
	Use:   "save sourceFile",
	Short: "Export an AD program as assembly-style text next to it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}

		_, err = newDriver().Save(args[0], src)
		return err
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
