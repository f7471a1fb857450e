package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path...]",
	Short: "Check definitions for consistency",
	Long: `Parses each definition and walks its state graph from the first state, reporting
unknown successors, memory binding errors, dead ends and unreachable states.
Directories are scanned for definition files. Defaults to the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}
		return cli.Validate(cmd.Context(), args, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
