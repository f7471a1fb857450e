package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the machines of a directory over a JSON API. Runs are stored as reports in
memory, in a directory of JSON files or in Redis, following the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		global := globalOptions(cmd)
		cfg, err := serverConfig(cmd, global)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
			cfg.HTTP.Addr = addr
		}
		return cli.Serve(cmd.Context(), global, cfg)
	},
}

// serverConfig loads the config file and applies the flags shared by serve and mcp.
func serverConfig(cmd *cobra.Command, global cli.GlobalOptions) (cli.Config, error) {
	cfg, err := cli.LoadConfig(global.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("machines") {
		cfg.Machines, _ = cmd.Flags().GetString("machines")
	}
	if cmd.Flags().Changed("loam") {
		cfg.Loam, _ = cmd.Flags().GetBool("loam")
	}
	if cmd.Flags().Changed("redis") {
		cfg.Redis.Addr, _ = cmd.Flags().GetString("redis")
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.MaxSteps, _ = cmd.Flags().GetInt("max-steps")
	}
	return cfg, nil
}

func addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("machines", "m", ".", "Directory containing machine definitions")
	cmd.Flags().Bool("loam", false, "Read the machines directory as a Loam vault")
	cmd.Flags().String("redis", "", "Redis address for reports and distributed locks")
	cmd.Flags().Int("max-steps", 0, "Generation budget of every run (0 means unbounded)")
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addServerFlags(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
