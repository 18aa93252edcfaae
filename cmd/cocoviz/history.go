package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vision-tools/cocoviz/internal/config"
	"github.com/vision-tools/cocoviz/internal/history"
	"github.com/vision-tools/cocoviz/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or inspect past rendering runs",
		Long: `History lists rendering runs stored with --save-history.

Without flags it prints a table of recent runs. With --id it prints the
full report of one stored run.

Examples:
  # List the last 20 runs
  cocoviz history

  # Show the full report of run 7 as JSON
  cocoviz history --id 7 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list; 0 lists all")
	cmd.Flags().Int64("id", 0, "Show the full report of a single stored run")
	cmd.Flags().Bool("json", false, "Output the run report as JSON (with --id)")
	cmd.Flags().String("history-dir", "", "History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("history-dir")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = config.XDGDataDir()
	}

	// Listing never creates a database
	db, err := history.Open(dir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no run history found in %s (store runs with --save-history)", dir)
	}
	defer db.Close()

	id, err := cmd.Flags().GetInt64("id")
	if err != nil {
		return err
	}
	if id > 0 {
		return showRun(cmd, db, id)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	return listRuns(cmd, db, limit)
}

// showRun prints the full report of a single stored run.
func showRun(cmd *cobra.Command, db *history.RunDB, id int64) error {
	run, err := db.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %d", id)
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	var writer report.Writer
	if asJSON {
		writer = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	} else {
		writer = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(true))
	}
	_, err = writer.Write(run)
	return err
}

// listRuns prints a table of recent runs, newest first.
func listRuns(cmd *cobra.Command, db *history.RunDB, limit int) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored runs.")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-5s %-20s %-9s %-8s %-7s %s\n", "ID", "TIME", "RENDERED", "SKIPPED", "FAILED", "INPUT")
	for _, run := range runs {
		fmt.Fprintf(out, "%-5d %-20s %-9d %-8d %-7d %s\n",
			run.ID,
			run.Timestamp.Format(time.DateTime),
			run.Rendered,
			run.Skipped,
			run.Failed,
			run.InputPath,
		)
	}
	return nil
}
