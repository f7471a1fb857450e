package main

import (
	"fmt"
	"os"

	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata simulates nondeterministic machines with tapes, stacks and queues",
	Long: `Automata runs machine definitions (.tm, .yaml, .json or Loam markdown) over an input,
exploring every nondeterministic branch as its own timeline.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+cli.DefaultConfigFile+" if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
}

func globalOptions(cmd *cobra.Command) cli.GlobalOptions {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	logFile, _ := cmd.Flags().GetString("log-file")
	return cli.GlobalOptions{
		ConfigPath: configPath,
		Debug:      debug,
		LogFile:    logFile,
	}
}

// maxSteps prefers the --max-steps flag and falls back to the config file.
func maxSteps(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("max-steps") {
		return cmd.Flags().GetInt("max-steps")
	}
	cfg, err := cli.LoadConfig(globalOptions(cmd).ConfigPath)
	if err != nil {
		return 0, err
	}
	return cfg.MaxSteps, nil
}
