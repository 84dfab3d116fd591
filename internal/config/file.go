package config

import "time"

// File represents the structure of the .f1scrape configuration file.
// The YAML layout is nested by concern so the generated template reads well;
// Apply flattens it onto a Config. Zero values mean "not set" and leave the
// corresponding Config field alone, so a sparse file only overrides what it
// names.
type File struct {
	// Circuits configures the circuits pipeline.
	Circuits CircuitsFile `yaml:"circuits,omitempty"`

	// Results configures the race results pipeline.
	Results ResultsFile `yaml:"results,omitempty"`

	// Browser configures the headless browser used by the results pipeline.
	Browser BrowserFile `yaml:"browser,omitempty"`

	// HTTP configures the static page fetch.
	HTTP HTTPFile `yaml:"http,omitempty"`

	// Report configures run summary output.
	Report ReportFile `yaml:"report,omitempty"`

	// Archive configures the run archive database.
	Archive ArchiveFile `yaml:"archive,omitempty"`
}

// CircuitsFile holds circuits pipeline settings.
type CircuitsFile struct {
	// URL is the circuits list page.
	URL string `yaml:"url,omitempty"`

	// TableClass is the CSS class of candidate tables.
	TableClass string `yaml:"tableClass,omitempty"`

	// HeaderLabel is the header text that picks the circuits table.
	HeaderLabel string `yaml:"headerLabel,omitempty"`

	// Output is the CSV file to write.
	Output string `yaml:"output,omitempty"`
}

// ResultsFile holds race results pipeline settings.
type ResultsFile struct {
	// URLTemplate is the per-season results URL with a %d year placeholder.
	URLTemplate string `yaml:"urlTemplate,omitempty"`

	// TableClass is the CSS class of the results table.
	TableClass string `yaml:"tableClass,omitempty"`

	// Output is the CSV file to write.
	Output string `yaml:"output,omitempty"`

	// FirstSeason is the first season to scrape (inclusive).
	FirstSeason int `yaml:"firstSeason,omitempty"`

	// LastSeason is the last season to scrape (inclusive).
	LastSeason int `yaml:"lastSeason,omitempty"`
}

// BrowserFile holds browser settings.
// Durations are whole seconds; YAML has no native duration type.
type BrowserFile struct {
	// Headless controls whether the browser runs without a window.
	Headless *bool `yaml:"headless,omitempty"`

	// PageTimeoutSeconds is the per-page deadline.
	PageTimeoutSeconds int `yaml:"pageTimeoutSeconds,omitempty"`

	// TableWaitSeconds is the wait for the table selector.
	TableWaitSeconds int `yaml:"tableWaitSeconds,omitempty"`

	// SettleDelaySeconds is the fallback pause before reading the page.
	SettleDelaySeconds int `yaml:"settleDelaySeconds,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// HTTPFile holds static fetch settings.
type HTTPFile struct {
	// TimeoutSeconds is the request timeout.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`
}

// ReportFile holds run summary settings.
type ReportFile struct {
	// PreviewRows is how many leading records the console summary shows.
	PreviewRows int `yaml:"previewRows,omitempty"`

	// Dir is the directory report files are written to.
	Dir string `yaml:"dir,omitempty"`
}

// ArchiveFile holds run archive settings.
type ArchiveFile struct {
	// Enabled controls whether run summaries are archived.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Dir is the directory the SQLite database lives in.
	Dir string `yaml:"dir,omitempty"`
}

// Apply overlays the file's settings onto cfg. Only set values are applied;
// everything else keeps its current (default) value. CLI flags are applied
// after this, so the precedence is defaults < file < flags.
func (f *File) Apply(cfg *Config) {
	if f.Circuits.URL != "" {
		cfg.CircuitsURL = f.Circuits.URL
	}
	if f.Circuits.TableClass != "" {
		cfg.CircuitsTableClass = f.Circuits.TableClass
	}
	if f.Circuits.HeaderLabel != "" {
		cfg.CircuitsHeaderLabel = f.Circuits.HeaderLabel
	}
	if f.Circuits.Output != "" {
		cfg.CircuitsOutput = f.Circuits.Output
	}

	if f.Results.URLTemplate != "" {
		cfg.ResultsURLTemplate = f.Results.URLTemplate
	}
	if f.Results.TableClass != "" {
		cfg.ResultsTableClass = f.Results.TableClass
	}
	if f.Results.Output != "" {
		cfg.ResultsOutput = f.Results.Output
	}
	if f.Results.FirstSeason != 0 {
		cfg.FirstSeason = f.Results.FirstSeason
	}
	if f.Results.LastSeason != 0 {
		cfg.LastSeason = f.Results.LastSeason
	}

	if f.Browser.Headless != nil {
		cfg.Headless = *f.Browser.Headless
	}
	if f.Browser.PageTimeoutSeconds != 0 {
		cfg.PageTimeout = time.Duration(f.Browser.PageTimeoutSeconds) * time.Second
	}
	if f.Browser.TableWaitSeconds != 0 {
		cfg.TableWait = time.Duration(f.Browser.TableWaitSeconds) * time.Second
	}
	if f.Browser.SettleDelaySeconds != 0 {
		cfg.SettleDelay = time.Duration(f.Browser.SettleDelaySeconds) * time.Second
	}
	if f.Browser.UserAgent != "" {
		cfg.UserAgent = f.Browser.UserAgent
	}

	if f.HTTP.TimeoutSeconds != 0 {
		cfg.HTTPTimeout = time.Duration(f.HTTP.TimeoutSeconds) * time.Second
	}

	if f.Report.PreviewRows != 0 {
		cfg.PreviewRows = f.Report.PreviewRows
	}
	if f.Report.Dir != "" {
		cfg.ReportDir = f.Report.Dir
	}

	if f.Archive.Enabled != nil {
		cfg.SaveToDB = *f.Archive.Enabled
	}
	if f.Archive.Dir != "" {
		cfg.DBDir = f.Archive.Dir
	}
}
