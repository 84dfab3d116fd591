package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The URLs and season range reproduce the sources the datasets were built
// from; everything else is tuned for polite, reliable scraping.
const (
	// DefaultCircuitsURL is the page listing every Formula 1 circuit.
	// A static fetch is enough: the table is server-rendered.
	DefaultCircuitsURL = "https://en.wikipedia.org/wiki/List_of_Formula_One_circuits"

	// DefaultCircuitsTableClass is the CSS class marking candidate tables
	// on the circuits page.
	DefaultCircuitsTableClass = "wikitable"

	// DefaultCircuitsHeaderLabel is the header cell text that identifies
	// the circuits table among the page's candidate tables. The match is
	// exact and case-sensitive after trimming.
	DefaultCircuitsHeaderLabel = "Circuit"

	// DefaultCircuitsOutput is the CSV file the circuits pipeline writes.
	DefaultCircuitsOutput = "f1_circuits.csv"

	// DefaultResultsURLTemplate is the per-season race results page. The
	// %d placeholder is substituted with the season year. The page builds
	// its table client-side, so it needs a real browser to render.
	DefaultResultsURLTemplate = "https://www.formula1.com/en/results/%d/races"

	// DefaultResultsTableClass is the CSS class of the results table.
	DefaultResultsTableClass = "f1-table"

	// DefaultResultsOutput is the CSV file the results pipeline writes.
	DefaultResultsOutput = "f1_race_results.csv"

	// DefaultFirstSeason is the first Formula 1 championship season.
	DefaultFirstSeason = 1950

	// DefaultLastSeason is the most recent completed season.
	DefaultLastSeason = 2024

	// DefaultHTTPTimeout bounds the static page fetch. Wikipedia responds
	// in well under a second normally; 30 seconds leaves room for bad days
	// without hanging the run.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultPageTimeout bounds a single browser page load, including
	// navigation, rendering, and HTML capture. Seasons whose page never
	// settles are abandoned at this deadline.
	DefaultPageTimeout = 60 * time.Second

	// DefaultTableWait is how long to wait for the results table selector
	// to appear after the document body is ready. Pages without the table
	// (seasons with no data) run into this deadline and are skipped, so it
	// stays short.
	DefaultTableWait = 10 * time.Second

	// DefaultSettleDelay is the post-load pause applied when the table
	// selector never appeared, before the page is read anyway. It gives
	// late client-side rendering one last chance.
	DefaultSettleDelay = 5 * time.Second

	// DefaultUserAgent identifies f1scrape in HTTP requests.
	// Using a descriptive User-Agent is good practice and allows operators
	// to identify scraper traffic in their logs.
	DefaultUserAgent = "f1scrape/1.0 (+https://github.com/f1data/f1scrape)"

	// DefaultPreviewRows is how many leading records the run summary shows.
	DefaultPreviewRows = 5

	// AppName is the application name used for XDG directory paths.
	AppName = "f1scrape"
)

// Config holds all configuration options for f1scrape.
// This struct is designed to be populated from defaults, then the optional
// config file, then CLI flags, and passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CircuitsConfig, BrowserConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// The YAML file format is nested for readability; File.Apply flattens it.
type Config struct {
	// CircuitsURL is the circuits list page to scrape.
	CircuitsURL string

	// CircuitsTableClass is the CSS class of candidate tables on the
	// circuits page.
	CircuitsTableClass string

	// CircuitsHeaderLabel is the header text that picks the circuits table
	// out of the candidates.
	CircuitsHeaderLabel string

	// CircuitsOutput is the CSV path the circuits pipeline writes to.
	CircuitsOutput string

	// ResultsURLTemplate is the per-season results URL with a %d year
	// placeholder.
	ResultsURLTemplate string

	// ResultsTableClass is the CSS class of the results table.
	ResultsTableClass string

	// ResultsOutput is the CSV path the results pipeline writes to.
	ResultsOutput string

	// FirstSeason is the first season (inclusive) the results pipeline
	// scrapes.
	FirstSeason int

	// LastSeason is the last season (inclusive) the results pipeline
	// scrapes.
	LastSeason int

	// HTTPTimeout is the request timeout for static page fetches.
	HTTPTimeout time.Duration

	// PageTimeout is the per-page deadline for browser-driven fetches.
	PageTimeout time.Duration

	// TableWait is how long the browser waits for the results table
	// selector before falling back to the settle delay.
	TableWait time.Duration

	// SettleDelay is the fallback pause before reading a page whose table
	// selector never appeared.
	SettleDelay time.Duration

	// Headless controls whether the browser runs without a visible window.
	// Turning it off is occasionally useful to watch a scrape misbehave.
	Headless bool

	// UserAgent is the User-Agent header sent with all requests, both the
	// static fetch and the browser.
	UserAgent string

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .f1scrape in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// JSONReport writes the run summary as JSON into ReportDir.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the run summary as Markdown into ReportDir.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportDir is the directory run summary files are written to.
	// Only used when JSONReport or MarkdownReport is set.
	ReportDir string

	// PreviewRows is how many leading records the console summary shows.
	PreviewRows int

	// DBDir is the directory path for storing the SQLite run archive.
	// Defaults to the XDG data directory. Set SaveToDB to false to skip
	// archiving entirely.
	DBDir string

	// SaveToDB indicates whether to archive run summaries to the database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that reproduce the original
// datasets when run bare. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because almost every default is non-zero (URLs, season range,
// timeouts). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		CircuitsURL:         DefaultCircuitsURL,
		CircuitsTableClass:  DefaultCircuitsTableClass,
		CircuitsHeaderLabel: DefaultCircuitsHeaderLabel,
		CircuitsOutput:      DefaultCircuitsOutput,
		ResultsURLTemplate:  DefaultResultsURLTemplate,
		ResultsTableClass:   DefaultResultsTableClass,
		ResultsOutput:       DefaultResultsOutput,
		FirstSeason:         DefaultFirstSeason,
		LastSeason:          DefaultLastSeason,
		HTTPTimeout:         DefaultHTTPTimeout,
		PageTimeout:         DefaultPageTimeout,
		TableWait:           DefaultTableWait,
		SettleDelay:         DefaultSettleDelay,
		Headless:            true,
		UserAgent:           DefaultUserAgent,
		PreviewRows:         DefaultPreviewRows,
		DBDir:               XDGDataDir(),
		SaveToDB:            true,
	}
}

// XDGDataDir returns the XDG data directory for f1scrape.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/f1scrape
// On macOS: ~/Library/Application Support/f1scrape
// On Windows: %LOCALAPPDATA%\f1scrape
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Seasons returns the inclusive list of seasons the results pipeline
// scrapes, in ascending order.
func (c *Config) Seasons() []int {
	if c.LastSeason < c.FirstSeason {
		return nil
	}
	years := make([]int, 0, c.LastSeason-c.FirstSeason+1)
	for y := c.FirstSeason; y <= c.LastSeason; y++ {
		years = append(years, y)
	}
	return years
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any scraping begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.CircuitsURL == "" {
		return ErrNoCircuitsURL
	}

	if c.CircuitsOutput == "" || c.ResultsOutput == "" {
		return ErrNoOutputPath
	}

	if c.ResultsURLTemplate == "" {
		return ErrNoResultsURL
	}

	// The template must have somewhere to put the year.
	if !strings.Contains(c.ResultsURLTemplate, "%d") {
		return ErrNoYearPlaceholder
	}

	if c.FirstSeason > c.LastSeason {
		return ErrInvalidSeasonRange
	}

	// Zero or negative timeouts would fail every fetch immediately.
	if c.HTTPTimeout <= 0 || c.PageTimeout <= 0 {
		return ErrInvalidTimeout
	}

	// The waits may be zero (skip straight to reading the page) but not
	// negative.
	if c.TableWait < 0 || c.SettleDelay < 0 {
		return ErrInvalidWait
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}

	return nil
}
