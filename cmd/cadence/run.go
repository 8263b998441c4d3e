package main

import (
	"os"
	"strings"

	"github.com/aretw0/cadence"
	"github.com/aretw0/cadence/internal/cli"
	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [config]",
	Short: "Run the pipeline over the synthetic workload",
	Long: `Loads and validates the pipeline file, builds the observers in order and drives
a synthetic classification loop through them. With --serve, /state, /metrics and
/runs are available over HTTP while the run progresses.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if !cmd.Flags().Changed("config") && len(args) > 0 {
			configPath = args[0]
		}
		serve, _ := cmd.Flags().GetString("serve")
		runID, _ := cmd.Flags().GetString("run-id")
		logLevel, _ := cmd.Flags().GetString("log-level")
		logJSON, _ := cmd.Flags().GetBool("log-json")
		quiet, _ := cmd.Flags().GetBool("quiet")

		tty := interactive(cmd)
		if tty && !quiet {
			tui.PrintBanner(os.Stdout)
		}

		ctx := cli.WatchInterrupts(cmd.Context())
		defer ctx.Stop()

		_, err := cli.Execute(ctx, cli.RunOptions{
			ConfigPath: configPath,
			Serve:      serve,
			RunID:      runID,
			LogLevel:   logLevel,
			JSONLogs:   logJSON,
			Color:      tty,
			Markdown:   tty,
			Quiet:      quiet,
			Version:    strings.TrimSpace(cadence.Version),
		})
		return cli.HandleExecutionError(cmd.ErrOrStderr(), err, ctx.Signal())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("serve", "", "Serve run state and metrics on this address (e.g. :2112)")
	runCmd.Flags().String("run-id", "", "Run identifier (default: random UUID)")
	runCmd.Flags().BoolP("quiet", "q", false, "Suppress the banner and completion message")
}
