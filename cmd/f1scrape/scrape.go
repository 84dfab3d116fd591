package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/f1data/f1scrape/internal/config"
	"github.com/f1data/f1scrape/internal/database"
	"github.com/f1data/f1scrape/internal/fetch"
	"github.com/f1data/f1scrape/internal/log"
	"github.com/f1data/f1scrape/internal/model"
	"github.com/f1data/f1scrape/internal/pipeline"
	"github.com/f1data/f1scrape/internal/report"
	"github.com/spf13/cobra"
)

// setupLogger creates a structured logger based on verbosity setting.
// The handler trims oversized attributes so a logged URL or error chain
// never drags a whole fetched document into the log stream.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// signalContext returns a context that is cancelled when the process
// receives an interrupt or termination signal.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config file flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// buildConfig creates a Config from defaults and the optional configuration
// file. Command-specific flags are applied by the caller afterwards, so the
// precedence is defaults < file < flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	cfg.ConfigFilePath = getConfigFlag(cmd)
	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// applyConfigFile overlays the configuration file onto cfg.
// If the user explicitly specified a config file path, error if not found.
// If no path specified, silently keep defaults when no file is found.
func applyConfigFile(cfg *config.Config) error {
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath == "" {
		if explicitConfigPath {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	file.Apply(cfg)
	return nil
}

// addFetchFlags registers the flags shared by every command that talks to
// the source sites.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent with every request")
}

// applyFetchFlags overlays the fetch flags onto cfg.
func applyFetchFlags(cmd *cobra.Command, cfg *config.Config) error {
	userAgent, err := cmd.Flags().GetString("user-agent")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("user-agent") {
		cfg.UserAgent = userAgent
	}
	return nil
}

// addReportFlags registers the run summary flags shared by the scraping
// commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Write the run summary as JSON into the report directory (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write the run summary as Markdown into the report directory (mutually exclusive with --json)")
	cmd.Flags().String("report-dir", "",
		"Directory for run summary files (default: current directory)")
	cmd.Flags().Int("preview", config.DefaultPreviewRows,
		"Leading records shown in the console summary (0 disables the preview)")
	cmd.Flags().Bool("no-archive", false,
		"Skip recording the run digest in the local archive")
}

// applyReportFlags overlays the run summary flags onto cfg.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	jsonReport, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if jsonReport {
		cfg.JSONReport = true
	}

	markdownReport, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if markdownReport {
		cfg.MarkdownReport = true
	}

	reportDir, err := cmd.Flags().GetString("report-dir")
	if err != nil {
		return err
	}
	if reportDir != "" {
		cfg.ReportDir = reportDir
	}

	preview, err := cmd.Flags().GetInt("preview")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("preview") {
		cfg.PreviewRows = preview
	}

	noArchive, err := cmd.Flags().GetBool("no-archive")
	if err != nil {
		return err
	}
	if noArchive {
		cfg.SaveToDB = false
	}

	return nil
}

// addSeasonFlags registers the season range flags used by commands that
// scrape race results.
func addSeasonFlags(cmd *cobra.Command) {
	cmd.Flags().Int("from", config.DefaultFirstSeason,
		"First season to scrape (inclusive)")
	cmd.Flags().Int("to", config.DefaultLastSeason,
		"Last season to scrape (inclusive)")
}

// applySeasonFlags overlays the season range flags onto cfg.
func applySeasonFlags(cmd *cobra.Command, cfg *config.Config) error {
	from, err := cmd.Flags().GetInt("from")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("from") {
		cfg.FirstSeason = from
	}

	to, err := cmd.Flags().GetInt("to")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("to") {
		cfg.LastSeason = to
	}

	return nil
}

// addBrowserFlags registers the headless browser flags used by commands
// that scrape browser-rendered pages.
func addBrowserFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("page-timeout", config.DefaultPageTimeout,
		"Deadline for one browser page load")
	cmd.Flags().Duration("table-wait", config.DefaultTableWait,
		"How long to wait for the results table to render")
	cmd.Flags().Duration("settle-delay", config.DefaultSettleDelay,
		"Fallback pause when the table never renders")
	cmd.Flags().Bool("headed", false,
		"Run the browser with a visible window")
}

// applyBrowserFlags overlays the browser flags onto cfg.
func applyBrowserFlags(cmd *cobra.Command, cfg *config.Config) error {
	pageTimeout, err := cmd.Flags().GetDuration("page-timeout")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("page-timeout") {
		cfg.PageTimeout = pageTimeout
	}

	tableWait, err := cmd.Flags().GetDuration("table-wait")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("table-wait") {
		cfg.TableWait = tableWait
	}

	settleDelay, err := cmd.Flags().GetDuration("settle-delay")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("settle-delay") {
		cfg.SettleDelay = settleDelay
	}

	headed, err := cmd.Flags().GetBool("headed")
	if err != nil {
		return err
	}
	if headed {
		cfg.Headless = false
	}

	return nil
}

// openArchive opens the run archive database, or returns nil when archiving
// is disabled. Callers must Close a non-nil handle.
func openArchive(cfg *config.Config, logger *slog.Logger) (*database.RunDB, error) {
	if !cfg.SaveToDB {
		logger.Debug("run archiving disabled")
		return nil, nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open run archive: %w", err)
	}

	logger.Debug("run archive opened", "dir", cfg.DBDir)
	return db, nil
}

// runArchiver converts the optional database handle into the pipeline's
// archiver interface. The explicit nil check keeps a typed nil pointer from
// reaching the pipeline as a non-nil interface value.
func runArchiver(db *database.RunDB) pipeline.RunArchiver {
	if db == nil {
		return nil
	}
	return db
}

// newBrowser builds the browser manager from the configuration.
// The caller starts and closes it around the pipeline run.
func newBrowser(cfg *config.Config, logger *slog.Logger) *fetch.Browser {
	return fetch.NewBrowser(
		fetch.WithHeadless(cfg.Headless),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithPageTimeout(cfg.PageTimeout),
		fetch.WithTableWait(cfg.TableWait),
		fetch.WithSettleDelay(cfg.SettleDelay),
		fetch.WithLogger(logger),
	)
}

// outputReport prints the run summary to stdout and, when a report format
// was requested, writes the same run as JSON or Markdown into the report
// directory.
func outputReport(cfg *config.Config, run *model.ScrapeRun) error {
	writer := report.NewSimpleWriter(os.Stdout, report.WithPreviewRows(cfg.PreviewRows))
	if _, err := writer.Write(run); err != nil {
		return fmt.Errorf("failed to write run summary: %w", err)
	}

	if !cfg.JSONReport && !cfg.MarkdownReport {
		return nil
	}
	return writeReportFile(cfg, run)
}

// writeReportFile writes the run report into the report directory.
func writeReportFile(cfg *config.Config, run *model.ScrapeRun) error {
	dir := cfg.ReportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	path := filepath.Join(dir, reportFileName(run.Dataset, cfg.JSONReport))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // Report path comes from user flags
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if cfg.JSONReport {
		writer := report.NewFullJSONWriter(file, getVersion(), report.WithPrettyPrint())
		if _, err := writer.Write(run); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
	} else {
		writer := report.NewMarkdownWriter(file, report.WithMarkdownPreviewRows(cfg.PreviewRows))
		if _, err := writer.Write(run); err != nil {
			return fmt.Errorf("failed to write Markdown report: %w", err)
		}
	}

	fmt.Printf("Report written to %s\n", path)
	return nil
}

// reportFileName derives the report file name for a dataset.
func reportFileName(dataset model.Dataset, jsonFormat bool) string {
	ext := "md"
	if jsonFormat {
		ext = "json"
	}
	return fmt.Sprintf("%s_run.%s", dataset, ext)
}
