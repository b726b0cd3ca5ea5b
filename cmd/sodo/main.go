package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "sodo",
		Short:         "Sudoku solver, generator, and puzzle server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newSolveCmd(),
		newGenerateCmd(),
		newValidateCmd(),
		newHintCmd(),
		newServeCmd(),
	)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
