package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/cadence/internal/presentation/tui"
	"github.com/aretw0/cadence/pkg/adapters/sqlite"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show metric history stored by a sqlite observer",
	Long:  `Without arguments, lists the runs in the database. With a run ID, prints its per-loader metrics.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")
		store, err := sqlite.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		out := cmd.OutOrStdout()
		if len(args) == 0 {
			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintln(out, r)
			}
			return nil
		}

		records, err := store.Query(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "## Run `%s`\n\n| mode | epoch | loader | metric | value |\n|---|---|---|---|---|\n", args[0])
		for _, r := range records {
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %.4f |\n", r.Mode, r.Epoch, r.Loader, r.Metric, r.Value)
		}

		render := tui.Plain
		if interactive(cmd) {
			if render, err = tui.NewRenderer(100); err != nil {
				return err
			}
		}
		text, err := render(b.String())
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().String("db", "cadence.db", "SQLite database written by a sqlite observer")
}
