// Package cli implements the agentloop command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentloop/config"
)

// NewRootCmd creates the top-level agentloop CLI command with all
// subcommands.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "agentloop",
		Short:         "Deterministic goal-driven agent loop",
		Long:          "Agentloop runs goals through a bounded plan/execute/evaluate loop\nover a registry of schema-validated tools.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file (defaults apply when omitted)")

	cmd.AddCommand(
		newRunCmd(&configPath),
		newToolsCmd(),
	)

	return cmd
}

// loadConfig resolves the effective configuration: the file when --config is
// set, the defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}
