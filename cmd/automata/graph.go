package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <definition>",
	Short: "Export the state graph as a Mermaid flowchart",
	Long: `Prints a Mermaid diagram (graph TD) of the machine's states and transitions.
With --input the machine runs first and the states of its last generation are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := maxSteps(cmd)
		if err != nil {
			return err
		}
		opts := cli.GraphOptions{
			GlobalOptions: globalOptions(cmd),
			Source:        args[0],
			MaxSteps:      steps,
			Out:           os.Stdout,
		}
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			opts.Input = &input
		}
		return cli.Graph(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("input", "", "Run the machine over this input and highlight its states")
	graphCmd.Flags().Int("max-steps", 0, "Generation budget of the highlighted run (0 means unbounded)")
}
