package main

import (
	"fmt"

	"github.com/aretw0/cadence/internal/cli"
	"github.com/aretw0/cadence/internal/presentation/graph"
	"github.com/aretw0/cadence/pkg/registry"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [config]",
	Short: "Print the pipeline as a Mermaid flowchart",
	Long:  `Renders loaders, the dispatcher and every observer in dispatch order. Paste the output into any Mermaid viewer.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if !cmd.Flags().Changed("config") && len(args) > 0 {
			configPath = args[0]
		}
		highlight, _ := cmd.Flags().GetStringSlice("highlight")

		cfg, err := cli.Load(configPath, registry.Default())
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if len(highlight) > 0 {
			overlay = &graph.GraphOverlay{Fired: highlight}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(*cfg, overlay))
		return nil
	},
}

func init() {
	graphCmd.Flags().StringSlice("highlight", nil, "Observer names to highlight")
	rootCmd.AddCommand(graphCmd)
}
