package report

import (
	"io"
	"strconv"
	"time"

	"github.com/f1data/f1scrape/internal/model"
	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs run reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// previewRows is how many leading records the preview table shows.
	previewRows int
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownPreviewRows sets how many leading records the preview table
// shows. Zero disables the preview section.
func WithMarkdownPreviewRows(n int) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.previewRows = n
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter:  newBaseWriter(output),
		previewRows: defaultPreviewRows,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in Markdown format, including a preview
// table of the leading records.
func (w *MarkdownWriter) Write(run *model.ScrapeRun) (int, error) {
	md := markdown.NewMarkdown(w.output)

	summary := run.Summary()
	w.writeHeader(md, &summary)
	w.writeAlert(md, &summary)
	w.writeSkipped(md, &summary)
	w.writePreview(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the run digest in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)
	w.writeAlert(md, summary)
	w.writeSkipped(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.RunSummary) {
	md.H1("F1 Scrape Run: " + datasetTitle(summary.Dataset))
	md.PlainText("")

	output := summary.OutputPath
	if output == "" {
		output = "-"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Dataset", summary.Dataset},
			{"Source", "`" + summary.SourceURL + "`"},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", (time.Duration(summary.DurationMillis) * time.Millisecond).String()},
			{"Records", strconv.Itoa(summary.Records)},
			{"Rows dropped", strconv.Itoa(summary.RowsDropped)},
			{"Output", output},
		},
	})
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, summary *model.RunSummary) {
	switch {
	case summary.Records == 0:
		md.Caution("No records were extracted. The source layout may have changed.")
	case len(summary.SkippedPeriods) > 0:
		md.Warningf(
			"%d season(s) had no matching table and were skipped.",
			len(summary.SkippedPeriods),
		)
	case summary.RowsDropped > 0:
		md.Importantf(
			"%d malformed row(s) were dropped during extraction.",
			summary.RowsDropped,
		)
	default:
		md.Tip("All rows extracted cleanly.")
	}
	md.PlainText("")
}

// writeSkipped writes the skipped seasons section.
func (w *MarkdownWriter) writeSkipped(md *markdown.Markdown, summary *model.RunSummary) {
	if len(summary.SkippedPeriods) == 0 {
		return
	}

	md.H2("Skipped Seasons")
	md.PlainText("")

	years := make([]string, 0, len(summary.SkippedPeriods))
	for _, year := range summary.SkippedPeriods {
		years = append(years, strconv.Itoa(year))
	}
	md.BulletList(years...)
	md.PlainText("")
}

// writePreview writes the leading records as a Markdown table.
func (w *MarkdownWriter) writePreview(md *markdown.Markdown, run *model.ScrapeRun) {
	if w.previewRows <= 0 {
		return
	}

	columns, rows := run.Preview(w.previewRows)
	if len(rows) == 0 {
		return
	}

	md.H2("Record Preview")
	md.PlainText("")

	truncated := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = truncateString(cell, 50)
		}
		truncated[i] = cells
	}

	md.Table(markdown.TableSet{
		Header: columns,
		Rows:   truncated,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [f1scrape](https://github.com/f1data/f1scrape)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
