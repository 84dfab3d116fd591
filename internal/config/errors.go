package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoCircuitsURL is returned when the circuits page URL is empty.
	ErrNoCircuitsURL = errors.New("no circuits URL: set circuits.url or --url")

	// ErrNoResultsURL is returned when the results URL template is empty.
	ErrNoResultsURL = errors.New("no results URL template: set results.urlTemplate or --url")

	// ErrNoYearPlaceholder is returned when the results URL template has no
	// %d placeholder to substitute the season year into.
	ErrNoYearPlaceholder = errors.New("results URL template must contain a %d year placeholder")

	// ErrNoOutputPath is returned when an output CSV path is empty.
	ErrNoOutputPath = errors.New("no output path: output files must be named")

	// ErrInvalidSeasonRange is returned when the first season is after the
	// last season.
	ErrInvalidSeasonRange = errors.New("invalid season range: first season is after last season")

	// ErrInvalidTimeout is returned when a fetch timeout is not positive.
	// A timeout of zero or negative would cause immediate fetch failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWait is returned when the table wait or settle delay is
	// negative. Use 0 to skip the wait entirely.
	ErrInvalidWait = errors.New("invalid wait: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one report format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidPreviewRows is returned when the preview row count is
	// negative. Use 0 to disable the preview.
	ErrInvalidPreviewRows = errors.New("invalid preview rows: must be non-negative")
)
