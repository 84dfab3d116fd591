package report

import (
	"encoding/json"
	"io"

	"github.com/f1data/f1scrape/internal/model"
)

// JSONWriter outputs run reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter:   newBaseWriter(output),
		indent:       false,
		indentPrefix: "",
		indentString: "",
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run digest in JSON format. Records themselves live in
// the CSV output, so the JSON report carries the digest only.
func (w *JSONWriter) Write(run *model.ScrapeRun) (int, error) {
	summary := run.Summary()
	return w.writeJSON(&summary)
}

// WriteSummary outputs the run digest in JSON format.
func (w *JSONWriter) WriteSummary(summary *model.RunSummary) (int, error) {
	return w.writeJSON(summary)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v interface{}) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONRunReport wraps a run digest with generator metadata.
// This is used when writing the report with contextual information.
//
// Design decision: We wrap the digest rather than adding fields to
// RunSummary because this allows us to add output-specific fields without
// polluting the core data structure.
type JSONRunReport struct {
	// Version is the f1scrape version that generated this report.
	Version string `json:"version"`

	// Run is the run digest.
	Run *model.RunSummary `json:"run"`
}

// FullJSONWriter outputs run digests with a metadata wrapper.
type FullJSONWriter struct {
	*JSONWriter

	// version is the f1scrape version string.
	version string
}

// NewFullJSONWriter creates a writer for run reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the run digest wrapped with metadata.
func (w *FullJSONWriter) Write(run *model.ScrapeRun) (int, error) {
	summary := run.Summary()
	return w.writeJSON(&JSONRunReport{Version: w.version, Run: &summary})
}

// WriteSummary outputs the run digest wrapped with metadata.
func (w *FullJSONWriter) WriteSummary(summary *model.RunSummary) (int, error) {
	return w.writeJSON(&JSONRunReport{Version: w.version, Run: summary})
}
