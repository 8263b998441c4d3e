package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Cadence drives training loops through ordered lifecycle observers",
	Long: `Cadence runs a pipeline of observers (metrics, aggregators and sinks) over a
synthetic training or inference loop described by a YAML, JSON or TOML file.`,
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
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "cadence.yaml", "Pipeline file (.yaml, .json or .toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error or off")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colors and markdown rendering")
}

// interactive reports whether stdout is a terminal and colors are allowed.
func interactive(cmd *cobra.Command) bool {
	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
