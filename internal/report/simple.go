package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/f1data/f1scrape/internal/model"
)

// defaultPreviewRows is how many leading records the simple writer shows
// when no explicit preview size is configured.
const defaultPreviewRows = 5

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with a run digest and a
// short preview of the extracted records.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// previewRows is how many leading records to show. Zero disables the
	// preview section.
	previewRows int

	// showEmpty controls whether sections with nothing to report are shown.
	showEmpty bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithPreviewRows sets how many leading records the preview shows.
// Zero disables the preview section entirely.
func WithPreviewRows(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.previewRows = n
	}
}

// WithShowEmpty configures the writer to show empty sections.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:  newBaseWriter(output),
		previewRows: defaultPreviewRows,
		showEmpty:   false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format, including a
// preview of the leading records.
func (w *SimpleWriter) Write(run *model.ScrapeRun) (int, error) {
	var sb strings.Builder

	summary := run.Summary()
	w.writeHeader(&sb, &summary)
	w.writeCounts(&sb, &summary)
	w.writeSkipped(&sb, &summary)
	w.writePreview(&sb, run)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary outputs only the run digest in human-readable format.
func (w *SimpleWriter) WriteSummary(summary *model.RunSummary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, summary)
	w.writeCounts(&sb, summary)
	w.writeSkipped(&sb, summary)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("                    F1SCRAPE RUN REPORT: %s\n", strings.ToUpper(summary.Dataset)))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Source:     %s\n", summary.SourceURL))
	sb.WriteString(fmt.Sprintf("Started:    %s\n", summary.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Duration:   %s\n", (time.Duration(summary.DurationMillis) * time.Millisecond).String()))
	if len(summary.SkippedPeriods) > 0 {
		sb.WriteString(fmt.Sprintf("Status:     Complete (%d season(s) skipped)\n", len(summary.SkippedPeriods)))
	} else {
		sb.WriteString("Status:     Complete\n")
	}
	sb.WriteString("\n")
}

// writeCounts writes the record count section.
func (w *SimpleWriter) writeCounts(sb *strings.Builder, summary *model.RunSummary) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RECORDS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Extracted:    %d\n", summary.Records))
	sb.WriteString(fmt.Sprintf("  Rows dropped: %d\n", summary.RowsDropped))
	if summary.OutputPath != "" {
		sb.WriteString(fmt.Sprintf("  Written to:   %s\n", summary.OutputPath))
	} else {
		sb.WriteString("  Written to:   (no output, nothing extracted)\n")
	}
	sb.WriteString("\n")
}

// writeSkipped writes the skipped seasons section.
func (w *SimpleWriter) writeSkipped(sb *strings.Builder, summary *model.RunSummary) {
	if len(summary.SkippedPeriods) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SKIPPED SEASONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(summary.SkippedPeriods) == 0 {
		sb.WriteString("  No seasons skipped\n")
	} else {
		for _, year := range summary.SkippedPeriods {
			sb.WriteString(fmt.Sprintf("  [-] %d (no matching table on page)\n", year))
		}
	}
	sb.WriteString("\n")
}

// writePreview writes the leading records as an aligned text table.
func (w *SimpleWriter) writePreview(sb *strings.Builder, run *model.ScrapeRun) {
	if w.previewRows <= 0 {
		return
	}

	columns, rows := run.Preview(w.previewRows)
	if len(rows) == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("PREVIEW (first %d of %d)\n", len(rows), run.RecordCount()))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(rows) == 0 {
		sb.WriteString("  No records extracted\n")
	} else {
		w.writeTable(sb, columns, rows)
	}
	sb.WriteString("\n")
}

// previewCellLimit caps preview cell width so one long seasons range does
// not blow up the whole table.
const previewCellLimit = 28

// writeTable writes rows as space-padded columns under a header.
func (w *SimpleWriter) writeTable(sb *strings.Builder, columns []string, rows [][]string) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if n := len(truncateString(cell, previewCellLimit)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	sb.WriteString("  ")
	for i, col := range columns {
		sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], col))
	}
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString("  ")
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			sb.WriteString(fmt.Sprintf("%-*s  ", widths[i], truncateString(cell, previewCellLimit)))
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by f1scrape\n")
	sb.WriteString("https://github.com/f1data/f1scrape\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
