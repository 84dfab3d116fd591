package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/f1data/f1scrape/internal/config"
	"github.com/f1data/f1scrape/internal/export"
	"github.com/f1data/f1scrape/internal/extract"
	"github.com/f1data/f1scrape/internal/htmltable"
	"github.com/f1data/f1scrape/internal/model"
)

// PageFetcher retrieves a page body over plain HTTP.
// *fetch.Client satisfies it.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// RenderedPageFetcher retrieves a page through a real browser, giving
// client-side rendering a chance to produce waitSelector before the DOM is
// read. *fetch.Browser satisfies it.
type RenderedPageFetcher interface {
	FetchPage(ctx context.Context, url, waitSelector string) (string, error)
}

// RunArchiver persists run digests for later inspection.
// *database.RunDB satisfies it.
type RunArchiver interface {
	SaveRunSummary(ctx context.Context, summary *model.RunSummary) (int64, error)
}

// FetchPageStep retrieves a single static page and stores its HTML on the
// run for the locate step.
//
// Design decision: Fetching is a separate step rather than part of table
// location because:
// 1. It isolates the only network interaction of the circuits pipeline
// 2. A fetch failure aborts the run with a transport error, not a parse error
// 3. Tests can exercise later steps on canned HTML without a server
type FetchPageStep struct {
	// fetcher performs the HTTP request.
	fetcher PageFetcher

	// url is the page to retrieve.
	url string

	// logger for structured logging.
	logger *slog.Logger
}

// FetchPageStepOption configures a FetchPageStep.
type FetchPageStepOption func(*FetchPageStep)

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchPageStepOption {
	return func(s *FetchPageStep) {
		s.logger = logger
	}
}

// NewFetchPageStep creates a step that fetches url with the given fetcher.
func NewFetchPageStep(fetcher PageFetcher, url string, opts ...FetchPageStepOption) *FetchPageStep {
	s := &FetchPageStep{
		fetcher: fetcher,
		url:     url,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchPageStep) Name() string {
	return "fetch_page"
}

// Do executes the fetch step.
func (s *FetchPageStep) Do(ctx context.Context, run *model.ScrapeRun) error {
	html, err := s.fetcher.FetchPage(ctx, s.url)
	if err != nil {
		return err
	}

	run.HTML = html
	s.logger.Info("page fetched",
		"url", s.url,
		"bytes", len(html),
	)

	return nil
}

// LocateTableStep finds the target table in the fetched HTML and stores its
// data cell grid on the run.
//
// The grid keeps <td> cells only. Positional extraction counts data cells,
// so a row's <th> label cell must not shift the column indices.
//
// Design decision: A page without a matching table is a recoverable
// condition, not an error. The step logs it and leaves run.Table nil; the
// extract step then produces zero records and the run reports that honestly.
type LocateTableStep struct {
	// criterion selects the table among the page's candidates.
	criterion htmltable.Criterion

	// logger for structured logging.
	logger *slog.Logger
}

// LocateTableStepOption configures a LocateTableStep.
type LocateTableStepOption func(*LocateTableStep)

// WithLocateLogger sets a custom logger for the locate step.
func WithLocateLogger(logger *slog.Logger) LocateTableStepOption {
	return func(s *LocateTableStep) {
		s.logger = logger
	}
}

// NewLocateTableStep creates a step that locates the table matching criterion.
func NewLocateTableStep(criterion htmltable.Criterion, opts ...LocateTableStepOption) *LocateTableStep {
	s := &LocateTableStep{
		criterion: criterion,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *LocateTableStep) Name() string {
	return "locate_table"
}

// Do executes the locate step.
func (s *LocateTableStep) Do(_ context.Context, run *model.ScrapeRun) error {
	doc, err := htmltable.NewDocument(run.HTML)
	if err != nil {
		return err
	}

	table, err := htmltable.Find(doc, s.criterion)
	if err != nil {
		if errors.Is(err, htmltable.ErrTableNotFound) {
			s.logger.Warn("no matching table on page",
				"criterion", s.criterion.String(),
				"url", run.SourceURL,
			)
			return nil
		}
		return err
	}

	run.Table = &model.Table{
		Caption: htmltable.Caption(table),
		Rows:    htmltable.DataCells(table),
	}
	run.HTML = "" // consumed; the grid is all later steps need

	s.logger.Debug("table located",
		"criterion", s.criterion.String(),
		"caption", run.Table.Caption,
		"rows", len(run.Table.Rows),
	)

	return nil
}

// ExtractCircuitsStep turns the located table grid into circuit records.
type ExtractCircuitsStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// ExtractCircuitsStepOption configures an ExtractCircuitsStep.
type ExtractCircuitsStepOption func(*ExtractCircuitsStep)

// WithExtractLogger sets a custom logger for the extract step.
func WithExtractLogger(logger *slog.Logger) ExtractCircuitsStepOption {
	return func(s *ExtractCircuitsStep) {
		s.logger = logger
	}
}

// NewExtractCircuitsStep creates a circuits extraction step.
func NewExtractCircuitsStep(opts ...ExtractCircuitsStepOption) *ExtractCircuitsStep {
	s := &ExtractCircuitsStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ExtractCircuitsStep) Name() string {
	return "extract_circuits"
}

// Do executes the extraction step.
func (s *ExtractCircuitsStep) Do(_ context.Context, run *model.ScrapeRun) error {
	// No table was located; there is nothing to extract from.
	if run.Table == nil {
		s.logger.Debug("skipping extraction, no table located")
		return nil
	}

	circuits, dropped := extract.Circuits(run.Table.Rows)
	run.Circuits = circuits
	run.RowsDropped += dropped
	run.Table = nil

	s.logger.Info("circuits extracted",
		"records", len(circuits),
		"rows_dropped", dropped,
	)

	return nil
}

// CollectSeasonsStep scrapes the race results of every configured season.
// For each season it loads the page in the browser, locates the results
// table, and appends the extracted records to the run.
//
// Design decision: The season loop is one step rather than a fetch, locate,
// and extract step per season because:
// 1. The season count is configuration, not pipeline structure
// 2. Skipping a season must not abort the run, which step errors would do
// 3. The browser stays an injected dependency with a one-method surface
//
// Seasons are scraped strictly in order, one page at a time. A fetch failure
// aborts the run; a season page without the table is recorded as skipped and
// the loop carries on.
type CollectSeasonsStep struct {
	// browser loads and renders the season pages.
	browser RenderedPageFetcher

	// urlTemplate is the season page URL with a %d year placeholder.
	urlTemplate string

	// seasons lists the years to scrape, in order.
	seasons []int

	// criterion selects the results table on each page.
	criterion htmltable.Criterion

	// logger for structured logging.
	logger *slog.Logger
}

// CollectSeasonsStepOption configures a CollectSeasonsStep.
type CollectSeasonsStepOption func(*CollectSeasonsStep)

// WithCollectLogger sets a custom logger for the season collection step.
func WithCollectLogger(logger *slog.Logger) CollectSeasonsStepOption {
	return func(s *CollectSeasonsStep) {
		s.logger = logger
	}
}

// NewCollectSeasonsStep creates a step that scrapes each season's results.
// The browser must be started before the pipeline executes.
func NewCollectSeasonsStep(browser RenderedPageFetcher, urlTemplate string, seasons []int, criterion htmltable.Criterion, opts ...CollectSeasonsStepOption) *CollectSeasonsStep {
	s := &CollectSeasonsStep{
		browser:     browser,
		urlTemplate: urlTemplate,
		seasons:     seasons,
		criterion:   criterion,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CollectSeasonsStep) Name() string {
	return "collect_seasons"
}

// Do executes the season collection step.
func (s *CollectSeasonsStep) Do(ctx context.Context, run *model.ScrapeRun) error {
	for _, year := range s.seasons {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		url := fmt.Sprintf(s.urlTemplate, year)
		s.logger.Debug("fetching season page", "year", year, "url", url)

		html, err := s.browser.FetchPage(ctx, url, s.criterion.Selector())
		if err != nil {
			// The source is unreachable or the browser died. Carrying on
			// would fail the same way for every remaining season.
			return fmt.Errorf("season %d: %w", year, err)
		}

		doc, err := htmltable.NewDocument(html)
		if err != nil {
			return fmt.Errorf("season %d: %w", year, err)
		}

		table, err := htmltable.Find(doc, s.criterion)
		if err != nil {
			if errors.Is(err, htmltable.ErrTableNotFound) {
				s.logger.Warn("no results table on season page, skipping",
					"year", year,
					"url", url,
				)
				run.MarkPeriodSkipped(year)
				continue
			}
			return fmt.Errorf("season %d: %w", year, err)
		}

		results, dropped := extract.Results(htmltable.Parse(table), year)
		run.Results = append(run.Results, results...)
		run.RowsDropped += dropped

		s.logger.Info("season collected",
			"year", year,
			"records", len(results),
			"rows_dropped", dropped,
		)
	}

	return nil
}

// ExportCSVStep writes the run's records to the output CSV file.
//
// Design decision: A run that extracted nothing writes no file and leaves
// run.OutputPath empty. An empty CSV containing only a header would look
// like a successful scrape to anything consuming the file.
type ExportCSVStep struct {
	// outputPath is the CSV file to write.
	outputPath string

	// logger for structured logging.
	logger *slog.Logger
}

// ExportCSVStepOption configures an ExportCSVStep.
type ExportCSVStepOption func(*ExportCSVStep)

// WithExportLogger sets a custom logger for the export step.
func WithExportLogger(logger *slog.Logger) ExportCSVStepOption {
	return func(s *ExportCSVStep) {
		s.logger = logger
	}
}

// NewExportCSVStep creates a step that writes the run's records to outputPath.
func NewExportCSVStep(outputPath string, opts ...ExportCSVStepOption) *ExportCSVStep {
	s := &ExportCSVStep{
		outputPath: outputPath,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ExportCSVStep) Name() string {
	return "export_csv"
}

// Do executes the export step.
func (s *ExportCSVStep) Do(_ context.Context, run *model.ScrapeRun) error {
	if run.RecordCount() == 0 {
		s.logger.Warn("no records extracted, skipping export",
			"dataset", run.Dataset,
		)
		return nil
	}

	var err error
	switch run.Dataset {
	case model.DatasetCircuits:
		err = export.SaveCircuits(s.outputPath, run.Circuits)
	case model.DatasetResults:
		err = export.SaveResults(s.outputPath, run.Results)
	default:
		return fmt.Errorf("unknown dataset %q", run.Dataset)
	}
	if err != nil {
		return err
	}

	run.OutputPath = s.outputPath
	s.logger.Info("csv written",
		"path", s.outputPath,
		"records", run.RecordCount(),
	)

	return nil
}

// ArchiveRunStep stores the run digest in the run history database.
type ArchiveRunStep struct {
	// archive receives the run summary. A nil archive disables the step.
	archive RunArchiver

	// logger for structured logging.
	logger *slog.Logger
}

// ArchiveRunStepOption configures an ArchiveRunStep.
type ArchiveRunStepOption func(*ArchiveRunStep)

// WithArchiveLogger sets a custom logger for the archive step.
func WithArchiveLogger(logger *slog.Logger) ArchiveRunStepOption {
	return func(s *ArchiveRunStep) {
		s.logger = logger
	}
}

// NewArchiveRunStep creates a step that archives the run summary.
// Passing a nil archiver turns the step into a no-op, so callers can wire
// the step unconditionally and disable archiving through configuration.
func NewArchiveRunStep(archive RunArchiver, opts ...ArchiveRunStepOption) *ArchiveRunStep {
	s := &ArchiveRunStep{
		archive: archive,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ArchiveRunStep) Name() string {
	return "archive_run"
}

// Do executes the archive step.
func (s *ArchiveRunStep) Do(ctx context.Context, run *model.ScrapeRun) error {
	if s.archive == nil {
		s.logger.Debug("run archive disabled, skipping")
		return nil
	}

	run.Finish()
	summary := run.Summary()

	if _, err := s.archive.SaveRunSummary(ctx, &summary); err != nil {
		// Non-fatal: the CSV is already on disk, losing one history row
		// is not worth failing the run over.
		s.logger.Warn("failed to archive run", "error", err)
		return nil
	}

	s.logger.Debug("run archived", "dataset", summary.Dataset)
	return nil
}

// CircuitsPipeline assembles the standard pipeline for the circuits dataset:
// fetch the circuits page, locate the table by class and header label,
// extract records positionally, export the CSV, and archive the run.
//
// Design decision: We provide assembled pipelines because:
// 1. Most callers want the standard step order
// 2. It reduces boilerplate in the CLI
// 3. It keeps the step wiring next to the steps it wires
//
// A nil archive disables run archiving.
func CircuitsPipeline(fetcher PageFetcher, archive RunArchiver, cfg *config.Config, opts ...Option) *Pipeline {
	p := New(opts...)

	criterion := htmltable.Criterion{
		Class:       cfg.CircuitsTableClass,
		HeaderLabel: cfg.CircuitsHeaderLabel,
	}

	p.AddSteps(
		NewFetchPageStep(fetcher, cfg.CircuitsURL),
		NewLocateTableStep(criterion),
		NewExtractCircuitsStep(),
		NewExportCSVStep(cfg.CircuitsOutput),
		NewArchiveRunStep(archive),
	)

	return p
}

// ResultsPipeline assembles the standard pipeline for the race results
// dataset: collect every configured season through the browser, export the
// CSV, and archive the run.
//
// The browser must be started before the pipeline executes and closed after;
// the pipeline does not manage its lifecycle. A nil archive disables run
// archiving.
func ResultsPipeline(browser RenderedPageFetcher, archive RunArchiver, cfg *config.Config, opts ...Option) *Pipeline {
	p := New(opts...)

	criterion := htmltable.Criterion{Class: cfg.ResultsTableClass}

	p.AddSteps(
		NewCollectSeasonsStep(browser, cfg.ResultsURLTemplate, cfg.Seasons(), criterion),
		NewExportCSVStep(cfg.ResultsOutput),
		NewArchiveRunStep(archive),
	)

	return p
}
