package main

import (
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/spf13/cobra"
)

// exitRejected is the exit code of a run that halted without an accepted timeline.
const exitRejected = 2

var runCmd = &cobra.Command{
	Use:   "run <definition> [input]",
	Short: "Run a machine over an input",
	Long: `Loads a machine definition, runs it over the input and prints the run report.
The command exits with status 2 when the input is rejected.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execRun(cmd, args, false)
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace <definition> [input]",
	Short: "Run a machine and print every generation",
	Long:  `Like run, but prints the live timelines of every generation before the report.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execRun(cmd, args, true)
	},
}

func execRun(cmd *cobra.Command, args []string, trace bool) error {
	steps, err := maxSteps(cmd)
	if err != nil {
		return err
	}
	jsonMode, _ := cmd.Flags().GetBool("json")
	quiet, _ := cmd.Flags().GetBool("quiet")
	diff, _ := cmd.Flags().GetBool("diff")

	opts := cli.RunOptions{
		GlobalOptions: globalOptions(cmd),
		Source:        args[0],
		MaxSteps:      steps,
		JSON:          jsonMode,
		Trace:         trace,
		Diff:          diff,
		Quiet:         quiet,
		Out:           os.Stdout,
	}
	if len(args) > 1 {
		opts.Input = args[1]
	}

	report, err := cli.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if report.Halted && report.Result != domain.ResultAccepted {
		os.Exit(exitRejected)
	}
	return nil
}

func init() {
	for _, c := range []*cobra.Command{runCmd, traceCmd} {
		c.Flags().Bool("json", false, "Print the report (and trace lines) as JSON")
		c.Flags().BoolP("quiet", "q", false, "Skip the banner and system messages")
		c.Flags().Int("max-steps", 0, "Stop after this many generations (0 means unbounded)")
		rootCmd.AddCommand(c)
	}
	traceCmd.Flags().Bool("diff", false, "With --json, print only the changes of each generation")
}
