package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/f1data/f1scrape/internal/config"
	"github.com/f1data/f1scrape/internal/fetch"
	"github.com/f1data/f1scrape/internal/model"
	"github.com/f1data/f1scrape/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewAllCmd creates the all command.
func NewAllCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Scrape both datasets concurrently",
		Long: `All runs the circuits and race results pipelines concurrently.

The two pipelines are independent: circuits is a single static page fetch
while results drives a headless browser through every season. Running them
together makes a full dataset refresh take only as long as the slower of
the two, and a failure in one pipeline does not stop the other.

Output paths and table selectors come from the configuration file or the
defaults; use the individual commands for per-dataset overrides.

Examples:
  # Refresh both datasets
  f1scrape all

  # Refresh with a short season range and keep JSON reports
  f1scrape all --from 2020 --to 2024 --json --report-dir reports`,
		RunE: runAllCmd,
	}

	cmd.Flags().DurationP("timeout", "t", config.DefaultHTTPTimeout,
		"HTTP request timeout for the circuits fetch")
	addSeasonFlags(cmd)
	addBrowserFlags(cmd)
	addFetchFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runAllCmd executes the all command.
func runAllCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildAllConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runAll(ctx, cfg, logger)
}

// buildAllConfig creates a Config for a combined scrape from the command
// flags and the optional configuration file.
func buildAllConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTPTimeout = timeout
	}

	if err := applySeasonFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := applyBrowserFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := applyFetchFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runAll executes both scraping pipelines concurrently.
func runAll(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	client := fetch.NewClient(cfg.HTTPTimeout, cfg.UserAgent)
	browser := newBrowser(cfg, logger)

	fmt.Println("Starting browser...")
	if err := browser.Start(ctx); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer browser.Close()

	circuitsRun := model.NewScrapeRun(model.DatasetCircuits, cfg.CircuitsURL)
	resultsRun := model.NewScrapeRun(model.DatasetResults, cfg.ResultsURLTemplate)

	batch := pipeline.NewBatch(pipeline.WithBatchLogger(logger))

	fmt.Printf("Scraping circuits and race results (seasons %d-%d)\n", cfg.FirstSeason, cfg.LastSeason)
	startTime := time.Now()

	batchErr := batch.Execute(ctx,
		pipeline.Job{
			Run:      circuitsRun,
			Pipeline: pipeline.CircuitsPipeline(client, runArchiver(db), cfg, pipeline.WithLogger(logger)),
		},
		pipeline.Job{
			Run:      resultsRun,
			Pipeline: pipeline.ResultsPipeline(browser, runArchiver(db), cfg, pipeline.WithLogger(logger)),
		},
	)
	if ctx.Err() != nil {
		return batchErr
	}

	fmt.Printf("Scrape completed in %s\n", time.Since(startTime).Round(time.Millisecond))

	// A failed pipeline still gets its summary printed; whatever it
	// extracted before failing is part of the run's story.
	for _, run := range []*model.ScrapeRun{circuitsRun, resultsRun} {
		run.Finish()
		if err := outputReport(cfg, run); err != nil {
			logger.Error("report failed", "dataset", run.Dataset, "error", err)
		}
	}

	return batchErr
}
