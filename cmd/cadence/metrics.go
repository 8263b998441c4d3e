package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/cadence/pkg/registry"
	"github.com/spf13/cobra"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "List the metric functions available to pipelines",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND")
		for _, e := range registry.Default().List() {
			fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Kind)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
