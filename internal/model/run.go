package model

import "time"

// ScrapeRun is the accumulator shared by pipeline steps during one run of a
// scraping pipeline. Each step reads what earlier steps produced and adds its
// own results.
//
// Design decision: We use a single struct handed through the pipeline rather
// than typed channels between steps. Only one step runs at a time, every step
// gets access to everything gathered so far, and the final struct doubles as
// the source for run reporting.
type ScrapeRun struct {
	// Dataset identifies which pipeline this run belongs to.
	Dataset Dataset

	// SourceURL is the page URL (circuits) or the URL template with the
	// season substituted per iteration (results).
	SourceURL string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the total run time. Set by Finish.
	Duration time.Duration

	// HTML is the fetched document for single-page runs. Ephemeral hand-off
	// between the fetch and locate steps; never serialized.
	HTML string

	// Table is the located and parsed table for single-page runs.
	// Ephemeral hand-off between the locate and extract steps.
	Table *Table

	// Circuits holds the extracted circuits records, in source row order.
	Circuits []Circuit

	// Results holds the extracted race result records, in source row order
	// across seasons (earlier seasons first).
	Results []RaceResult

	// RowsDropped counts malformed rows that were skipped during
	// extraction (fewer cells than the extractor requires).
	RowsDropped int

	// SkippedPeriods lists the seasons whose page had no matching table.
	// Those seasons contribute no records; the run carries on without them.
	SkippedPeriods []int

	// OutputPath is where the CSV was written. Empty until the export step
	// ran, and left empty when no records were extracted.
	OutputPath string
}

// NewScrapeRun creates a run accumulator for the given dataset and source.
func NewScrapeRun(dataset Dataset, sourceURL string) *ScrapeRun {
	return &ScrapeRun{
		Dataset:   dataset,
		SourceURL: sourceURL,
		StartedAt: time.Now(),
	}
}

// Finish records the total run duration. Calling it again has no effect.
func (r *ScrapeRun) Finish() {
	if r.Duration == 0 {
		r.Duration = time.Since(r.StartedAt)
	}
}

// RecordCount returns the number of records extracted by this run.
func (r *ScrapeRun) RecordCount() int {
	switch r.Dataset {
	case DatasetCircuits:
		return len(r.Circuits)
	case DatasetResults:
		return len(r.Results)
	default:
		return 0
	}
}

// MarkPeriodSkipped records that the given season's page had no matching
// table and was skipped.
func (r *ScrapeRun) MarkPeriodSkipped(year int) {
	r.SkippedPeriods = append(r.SkippedPeriods, year)
}

// Preview returns the output column names and up to n leading record rows,
// for a quick look at what the run produced.
func (r *ScrapeRun) Preview(n int) (columns []string, rows [][]string) {
	switch r.Dataset {
	case DatasetCircuits:
		columns = CircuitColumns()
		for i, c := range r.Circuits {
			if i >= n {
				break
			}
			rows = append(rows, c.CSVRow())
		}
	case DatasetResults:
		columns = RaceResultColumns()
		for i, res := range r.Results {
			if i >= n {
				break
			}
			rows = append(rows, res.CSVRow())
		}
	}
	return columns, rows
}

// Summary returns the serializable digest of the run. The digest is what run
// reports and the run archive persist; records themselves only ever land in
// the CSV output.
func (r *ScrapeRun) Summary() RunSummary {
	return RunSummary{
		Dataset:        r.Dataset.String(),
		SourceURL:      r.SourceURL,
		StartedAt:      r.StartedAt,
		DurationMillis: r.Duration.Milliseconds(),
		Records:        r.RecordCount(),
		RowsDropped:    r.RowsDropped,
		SkippedPeriods: r.SkippedPeriods,
		OutputPath:     r.OutputPath,
	}
}

// RunSummary is the curated digest of a completed run.
//
// Design decision: We keep a separate summary type rather than serializing
// ScrapeRun because the run struct carries large ephemeral fields (fetched
// HTML, the parsed table) and live record slices that belong in the CSV, not
// in reports or the archive database.
type RunSummary struct {
	// Dataset is the dataset name ("circuits" or "results").
	Dataset string `json:"dataset"`

	// SourceURL is the scraped URL or URL template.
	SourceURL string `json:"source_url"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// DurationMillis is the total run time in milliseconds.
	DurationMillis int64 `json:"duration_ms"`

	// Records is the number of records extracted.
	Records int `json:"records"`

	// RowsDropped is the number of malformed rows skipped during extraction.
	RowsDropped int `json:"rows_dropped"`

	// SkippedPeriods lists seasons whose page had no matching table.
	SkippedPeriods []int `json:"skipped_periods,omitempty"`

	// OutputPath is where the CSV was written, if any records were produced.
	OutputPath string `json:"output_path,omitempty"`
}
