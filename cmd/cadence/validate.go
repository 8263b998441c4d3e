package main

import (
	"fmt"

	"github.com/aretw0/cadence/internal/cli"
	"github.com/aretw0/cadence/pkg/registry"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [config]",
	Short: "Check the pipeline file for consistency",
	Long:  `Parses the pipeline file and reports every unknown type, unknown metric, duplicate name or malformed option at once.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if !cmd.Flags().Changed("config") && len(args) > 0 {
			configPath = args[0]
		}

		cfg, err := cli.Load(configPath, registry.Default())
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Pipeline is valid: %d observers, %d loaders.\n", len(cfg.Observers), len(cfg.Run.Loaders))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
