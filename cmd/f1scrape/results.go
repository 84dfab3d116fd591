package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/f1data/f1scrape/internal/config"
	"github.com/f1data/f1scrape/internal/model"
	"github.com/f1data/f1scrape/internal/pipeline"
	"github.com/spf13/cobra"
)

// NewResultsCmd creates the results command.
func NewResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Scrape the Formula 1 race results dataset",
		Long: `Results scrapes the race winners of every season and writes them to a
CSV file.

The per-season pages build their tables with JavaScript, so each page is
loaded in a headless Chrome browser and read after the table renders. The
output has one row per race:

  grand_prix,date,winner,car,laps,time,year

Seasons whose page has no results table (for example a season that has not
started yet) are skipped and listed in the run summary. A Chrome or
Chromium binary must be installed.

Examples:
  # Scrape every season since 1950 (writes f1_race_results.csv)
  f1scrape results

  # Scrape a season range
  f1scrape results --from 2010 --to 2024

  # Watch the browser work while debugging a layout change
  f1scrape results --headed --from 2024 --to 2024

  # Keep a JSON report of the run
  f1scrape results --json --report-dir reports`,
		RunE: runResultsCmd,
	}

	cmd.Flags().StringP("url-template", "u", config.DefaultResultsURLTemplate,
		"Per-season results page URL (%d is replaced with the season year)")
	cmd.Flags().StringP("output", "o", config.DefaultResultsOutput,
		"CSV file to write")
	addSeasonFlags(cmd)
	addBrowserFlags(cmd)
	addFetchFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runResultsCmd executes the results command.
func runResultsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildResultsConfig(cmd)
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

	return runResults(ctx, cfg, logger)
}

// buildResultsConfig creates a Config for the results scrape from the
// command flags and the optional configuration file.
func buildResultsConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	urlTemplate, err := cmd.Flags().GetString("url-template")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("url-template") {
		cfg.ResultsURLTemplate = urlTemplate
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("output") {
		cfg.ResultsOutput = output
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

// runResults executes the race results scrape.
func runResults(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	browser := newBrowser(cfg, logger)

	fmt.Println("Starting browser...")
	if err := browser.Start(ctx); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer browser.Close()

	p := pipeline.ResultsPipeline(browser, runArchiver(db), cfg, pipeline.WithLogger(logger))

	run := model.NewScrapeRun(model.DatasetResults, cfg.ResultsURLTemplate)

	fmt.Printf("Scraping race results for seasons %d-%d\n", cfg.FirstSeason, cfg.LastSeason)
	if err := p.Execute(ctx, run); err != nil {
		return fmt.Errorf("results scrape failed: %w", err)
	}
	run.Finish()
	fmt.Printf("Scrape completed in %s\n", run.Duration.Round(time.Millisecond))

	return outputReport(cfg, run)
}
