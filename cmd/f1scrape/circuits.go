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

// NewCircuitsCmd creates the circuits command.
func NewCircuitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circuits",
		Short: "Scrape the Formula 1 circuits dataset",
		Long: `Circuits scrapes the list of every circuit that has hosted a Formula One
Grand Prix and writes it to a CSV file.

The source table is server-rendered, so the page is fetched over plain HTTP
without starting a browser. The output has one row per circuit:

  circuit,location,country,last_length_used,circuit_laps,seasons

Rows with fewer cells than the extractor needs (section separators, former
circuit headings) are dropped and counted in the run summary.

Examples:
  # Scrape circuits with defaults (writes f1_circuits.csv)
  f1scrape circuits

  # Write the CSV to a custom path
  f1scrape circuits -o data/circuits.csv

  # Keep a Markdown report of the run
  f1scrape circuits --markdown --report-dir reports

  # Scrape a mirror of the page
  f1scrape circuits -u https://mirror.example.org/circuits`,
		RunE: runCircuitsCmd,
	}

	cmd.Flags().StringP("url", "u", config.DefaultCircuitsURL,
		"Circuits page URL")
	cmd.Flags().StringP("output", "o", config.DefaultCircuitsOutput,
		"CSV file to write")
	cmd.Flags().DurationP("timeout", "t", config.DefaultHTTPTimeout,
		"HTTP request timeout")
	addFetchFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runCircuitsCmd executes the circuits command.
func runCircuitsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCircuitsConfig(cmd)
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

	return runCircuits(ctx, cfg, logger)
}

// buildCircuitsConfig creates a Config for the circuits scrape from the
// command flags and the optional configuration file.
func buildCircuitsConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	url, err := cmd.Flags().GetString("url")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("url") {
		cfg.CircuitsURL = url
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("output") {
		cfg.CircuitsOutput = output
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTPTimeout = timeout
	}

	if err := applyFetchFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runCircuits executes the circuits scrape.
func runCircuits(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := openArchive(cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	client := fetch.NewClient(cfg.HTTPTimeout, cfg.UserAgent)
	p := pipeline.CircuitsPipeline(client, runArchiver(db), cfg, pipeline.WithLogger(logger))

	run := model.NewScrapeRun(model.DatasetCircuits, cfg.CircuitsURL)

	fmt.Printf("Scraping Formula 1 circuits from %s\n", cfg.CircuitsURL)
	if err := p.Execute(ctx, run); err != nil {
		return fmt.Errorf("circuits scrape failed: %w", err)
	}
	run.Finish()
	fmt.Printf("Scrape completed in %s\n", run.Duration.Round(time.Millisecond))

	return outputReport(cfg, run)
}
