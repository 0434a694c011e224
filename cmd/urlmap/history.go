package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/urlmap/internal/config"
	"github.com/nao1215/urlmap/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command browses the extraction runs recorded in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded extraction runs",
		Long: `History lists the extraction runs recorded in the local database.

Every 'urlmap extract' run (unless started with --no-history) records
its timestamp, inputs, output path, and the full URL set.

Examples:
  # List the most recent runs
  urlmap history

  # List the last 5 runs
  urlmap history --limit 5

  # Show the URLs recorded for run 3
  urlmap history --run-id 3

  # Machine-readable output
  urlmap history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().Int64P("run-id", "r", 0,
		"Show the URLs recorded for a specific run")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("run-id")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// The database must already exist; history never creates it.
	opts := database.Options{CreateIfNotExists: false, EnableWAL: true}
	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		return errors.New("no extraction history found (run 'urlmap extract' first)")
	}
	defer db.Close()

	if runID > 0 {
		return showRun(cmd, db, runID, asJSON)
	}
	return listRuns(cmd, db, limit, asJSON)
}

// showRun prints one run and its recorded URLs.
func showRun(cmd *cobra.Command, db *database.HistoryDB, runID int64, asJSON bool) error {
	run, err := db.GetRun(cmd.Context(), runID)
	if err != nil {
		return fmt.Errorf("run %d not found: %w", runID, err)
	}
	urls, err := db.GetRunURLs(cmd.Context(), runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON {
		payload := struct {
			ID         int64    `json:"id"`
			Timestamp  string   `json:"timestamp"`
			Inputs     []string `json:"inputs"`
			OutputPath string   `json:"output_path"`
			Total      int      `json:"total"`
			URLs       []string `json:"urls"`
		}{
			ID:         run.ID,
			Timestamp:  run.Timestamp.Format("2006-01-02 15:04:05"),
			Inputs:     run.Inputs,
			OutputPath: run.OutputPath,
			Total:      run.Total,
			URLs:       urls,
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	}

	fmt.Fprintf(out, "Run %d (%s)\n", run.ID, run.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  Inputs: %s\n", strings.Join(run.Inputs, ", "))
	fmt.Fprintf(out, "  Output: %s\n", run.OutputPath)
	fmt.Fprintf(out, "  URLs (%d):\n", run.Total)
	for _, u := range urls {
		fmt.Fprintf(out, "    %s\n", u)
	}
	return nil
}

// listRuns prints the most recent runs.
func listRuns(cmd *cobra.Command, db *database.HistoryDB, limit int, asJSON bool) error {
	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No extraction runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%4d  %s  %4d URLs  %s  (inputs: %s)\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Total,
			run.OutputPath,
			strings.Join(run.Inputs, ", "),
		)
	}
	return nil
}
