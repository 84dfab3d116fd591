package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/f1data/f1scrape/internal/database"
	"github.com/f1data/f1scrape/internal/model"
	"github.com/spf13/cobra"
)

// defaultRunsLimit is how many runs the listing shows unless told otherwise.
const defaultRunsLimit = 20

// NewRunsCmd creates the runs command.
// This command lists run digests recorded by past scrapes.
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived scrape runs",
		Long: `Runs lists the digests recorded by past scrapes.

Every scrape archives a digest (dataset, timing, record and drop counts,
skipped seasons, output path) in a local SQLite database under the XDG
data directory. This command lists those digests newest first, so dataset
refreshes can be audited after the fact.

Examples:
  # Show the last 20 runs
  f1scrape runs

  # Show every archived circuits run
  f1scrape runs --dataset circuits --limit 0

  # Show the most recent run of each dataset
  f1scrape runs --latest

  # Emit the run history as JSON
  f1scrape runs --json`,
		RunE: runRunsCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultRunsLimit,
		"Maximum number of runs to list (0 lists all)")
	cmd.Flags().StringP("dataset", "d", "",
		"Only list runs of this dataset (circuits or results)")
	cmd.Flags().BoolP("latest", "l", false,
		"Show only the most recent run per dataset")
	cmd.Flags().BoolP("json", "j", false,
		"Output the run list in JSON format")

	return cmd
}

// runRunsCmd executes the runs command.
func runRunsCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	dataset, err := cmd.Flags().GetString("dataset")
	if err != nil {
		return err
	}
	if dataset != "" && !model.Dataset(dataset).IsValid() {
		return fmt.Errorf("unknown dataset %q (valid: %s, %s)",
			dataset, model.DatasetCircuits, model.DatasetResults)
	}

	latest, err := cmd.Flags().GetBool("latest")
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// The archive directory can be moved with the configuration file, so
	// the listing resolves it the same way the scraping commands do.
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open run archive: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	records, err := fetchRunRecords(ctx, db, dataset, limit, latest)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeRunsJSON(os.Stdout, records)
	}
	return writeRunsText(os.Stdout, records, dataset)
}

// fetchRunRecords loads the run digests selected by the listing flags.
func fetchRunRecords(ctx context.Context, db *database.RunDB, dataset string, limit int, latest bool) ([]database.RunRecord, error) {
	if !latest {
		records, err := db.ListRuns(ctx, dataset, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list runs: %w", err)
		}
		return records, nil
	}

	datasets := []model.Dataset{model.DatasetCircuits, model.DatasetResults}
	if dataset != "" {
		datasets = []model.Dataset{model.Dataset(dataset)}
	}

	var records []database.RunRecord
	for _, ds := range datasets {
		record, err := db.LatestRun(ctx, ds.String())
		if err != nil {
			return nil, fmt.Errorf("failed to load latest %s run: %w", ds, err)
		}
		if record != nil {
			records = append(records, *record)
		}
	}
	return records, nil
}

// writeRunsText writes the run list as an aligned text table.
func writeRunsText(w io.Writer, records []database.RunRecord, dataset string) error {
	if len(records) == 0 {
		if dataset != "" {
			fmt.Fprintf(w, "No archived runs found for dataset %q.\n", dataset)
		} else {
			fmt.Fprintln(w, "No archived runs found.")
		}
		fmt.Fprintln(w, "\nUse 'f1scrape circuits' or 'f1scrape results' to record one.")
		return nil
	}

	fmt.Fprintf(w, "Archived runs (%d):\n\n", len(records))
	fmt.Fprintf(w, "  %-4s  %-19s  %-8s  %8s  %8s  %8s  %s\n",
		"ID", "Started", "Dataset", "Records", "Dropped", "Skipped", "Duration")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 76))

	for _, record := range records {
		summary := record.Summary
		fmt.Fprintf(w, "  %-4d  %-19s  %-8s  %8d  %8d  %8d  %s\n",
			record.ID,
			summary.StartedAt.Local().Format("2006-01-02 15:04:05"),
			summary.Dataset,
			summary.Records,
			summary.RowsDropped,
			len(summary.SkippedPeriods),
			(time.Duration(summary.DurationMillis) * time.Millisecond).String(),
		)
	}

	fmt.Fprintln(w, "\nUse 'f1scrape runs --dataset circuits' or '--dataset results' to filter.")
	return nil
}

// runListEntry is one archived run as emitted by --json.
type runListEntry struct {
	// ID is the run's archive identifier.
	ID int64 `json:"id"`

	// Run is the archived digest.
	Run model.RunSummary `json:"run"`
}

// writeRunsJSON writes the run list as pretty-printed JSON.
func writeRunsJSON(w io.Writer, records []database.RunRecord) error {
	entries := make([]runListEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, runListEntry{ID: record.ID, Run: record.Summary})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}
