package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/f1data/f1scrape/internal/model"
)

// createResultsRun creates a completed results run with sample data.
func createResultsRun() *model.ScrapeRun {
	run := model.NewScrapeRun(model.DatasetResults, "https://www.formula1.com/en/results/%d/races")
	run.Results = []model.RaceResult{
		{
			GrandPrix: "Bahrain",
			Date:      model.NewDate(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)),
			Winner:    "Max Verstappen VER",
			Car:       "Red Bull Racing Honda RBPT",
			Laps:      model.NewInt(57),
			Time:      "1:31:44.742",
			Year:      2024,
		},
		{
			GrandPrix: "Saudi Arabia",
			Date:      model.NewDate(time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)),
			Winner:    "Max Verstappen VER",
			Car:       "Red Bull Racing Honda RBPT",
			Laps:      model.NewInt(50),
			Time:      "1:20:43.273",
			Year:      2024,
		},
	}
	run.RowsDropped = 1
	run.MarkPeriodSkipped(1952)
	run.OutputPath = "f1_race_results.csv"
	run.Finish()
	return run
}

// createCircuitsRun creates a completed circuits run with sample data.
func createCircuitsRun() *model.ScrapeRun {
	run := model.NewScrapeRun(model.DatasetCircuits, "https://en.wikipedia.org/wiki/List_of_Formula_One_circuits")
	run.Circuits = []model.Circuit{
		{
			Name:           "Silverstone Circuit",
			Location:       "Silverstone",
			Country:        "United Kingdom",
			LastLengthUsed: "5.891 km (3.661 mi)",
			Laps:           "52",
			Seasons:        "1950–1954, 1987–present",
		},
	}
	run.OutputPath = "f1_circuits.csv"
	run.Finish()
	return run
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "F1SCRAPE RUN REPORT: RESULTS") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "https://www.formula1.com/en/results/%d/races") {
			t.Error("expected output to contain source URL")
		}
		if !strings.Contains(output, "1 season(s) skipped") {
			t.Error("expected status to mention skipped seasons")
		}
	})

	t.Run("writes record counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Extracted:    2") {
			t.Error("expected output to contain record count")
		}
		if !strings.Contains(output, "Rows dropped: 1") {
			t.Error("expected output to contain dropped row count")
		}
		if !strings.Contains(output, "f1_race_results.csv") {
			t.Error("expected output to contain output path")
		}
	})

	t.Run("writes skipped seasons", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "SKIPPED SEASONS") {
			t.Error("expected output to contain skipped seasons section")
		}
		if !strings.Contains(output, "[-] 1952") {
			t.Error("expected output to list the skipped season")
		}
	})

	t.Run("writes record preview", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "PREVIEW (first 2 of 2)") {
			t.Error("expected output to contain preview section")
		}
		if !strings.Contains(output, "grand_prix") {
			t.Error("expected preview to contain column header")
		}
		if !strings.Contains(output, "Bahrain") {
			t.Error("expected preview to contain record values")
		}
	})

	t.Run("preview can be disabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithPreviewRows(0))

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "PREVIEW") {
			t.Error("expected no preview section")
		}
	})

	t.Run("preview is capped at the configured row count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithPreviewRows(1))

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "PREVIEW (first 1 of 2)") {
			t.Error("expected preview capped at 1 row")
		}
		if strings.Contains(output, "Saudi Arabia") {
			t.Error("expected second record to be cut from preview")
		}
	})

	t.Run("hides skipped section without showEmpty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createCircuitsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "SKIPPED SEASONS") {
			t.Error("should not show skipped section without showEmpty")
		}
	})

	t.Run("shows empty sections with showEmpty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithShowEmpty(true))

		_, err := w.Write(createCircuitsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "No seasons skipped") {
			t.Error("expected 'No seasons skipped' message")
		}
	})

	t.Run("WriteSummary omits the preview", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)
		summary := createResultsRun().Summary()

		_, err := w.WriteSummary(&summary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "PREVIEW") {
			t.Error("expected no preview in summary output")
		}
		if !strings.Contains(output, "Extracted:    2") {
			t.Error("expected record count in summary output")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed model.RunSummary
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if parsed.Dataset != "results" {
			t.Errorf("expected dataset %q, got %q", "results", parsed.Dataset)
		}
		if parsed.Records != 2 {
			t.Errorf("expected 2 records, got %d", parsed.Records)
		}
		if len(parsed.SkippedPeriods) != 1 || parsed.SkippedPeriods[0] != 1952 {
			t.Errorf("expected skipped period 1952, got %v", parsed.SkippedPeriods)
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) > 1 {
			t.Errorf("expected compact output (1 line), got %d lines", len(lines))
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) < 5 {
			t.Errorf("expected multi-line output, got %d lines", len(lines))
		}
	})

	t.Run("WriteSummary outputs the digest", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)
		summary := &model.RunSummary{
			Dataset:   "circuits",
			SourceURL: "https://example.com/circuits",
			Records:   77,
		}

		_, err := w.WriteSummary(summary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed model.RunSummary
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if parsed.Records != 77 {
			t.Errorf("expected 77 records, got %d", parsed.Records)
		}
	})

	t.Run("uses custom prefix and indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithIndent(">>", "\t"))

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, ">>") {
			t.Error("expected custom prefix '>>' in output")
		}
		if !strings.Contains(output, "\t") {
			t.Error("expected tab indentation in output")
		}
	})
}

// TestFullJSONWriter tests the full JSON writer with metadata.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("includes version in output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewFullJSONWriter(&buf, "1.2.3", WithPrettyPrint())

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed JSONRunReport
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if parsed.Version != "1.2.3" {
			t.Errorf("expected version %q, got %q", "1.2.3", parsed.Version)
		}
		if parsed.Run == nil || parsed.Run.Records != 2 {
			t.Errorf("expected wrapped run digest, got %+v", parsed.Run)
		}
	})
}

// TestMultiWriter tests writing to multiple outputs.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var buf1, buf2 bytes.Buffer
		w1 := NewSimpleWriter(&buf1)
		w2 := NewJSONWriter(&buf2)

		multi := NewMultiWriter(w1, w2)

		_, err := multi.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if buf1.Len() == 0 {
			t.Error("expected buf1 to have content")
		}
		if buf2.Len() == 0 {
			t.Error("expected buf2 to have content")
		}

		if strings.Contains(buf1.String(), "{") {
			t.Error("expected buf1 (simple) to not be JSON")
		}
		if !strings.Contains(buf2.String(), "{") {
			t.Error("expected buf2 (JSON) to contain JSON")
		}
	})

	t.Run("handles empty writers list", func(t *testing.T) {
		t.Parallel()

		multi := NewMultiWriter()
		summary := &model.RunSummary{Dataset: "circuits"}

		n, err := multi.WriteSummary(summary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 bytes written for empty writers, got %d", n)
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# F1 Scrape Run: Results") {
			t.Error("expected output to contain H1 header")
		}
		if !strings.Contains(output, "https://www.formula1.com/en/results/%d/races") {
			t.Error("expected output to contain source URL")
		}
	})

	t.Run("includes GitHub alert for skipped seasons", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!WARNING]") {
			t.Error("expected WARNING alert for skipped seasons")
		}
	})

	t.Run("includes CAUTION alert when no records were extracted", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		run := model.NewScrapeRun(model.DatasetCircuits, "https://example.com/circuits")
		run.Finish()

		_, err := w.Write(run)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!CAUTION]") {
			t.Error("expected CAUTION alert for empty run")
		}
	})

	t.Run("includes TIP alert for a clean run", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createCircuitsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "[!TIP]") {
			t.Error("expected TIP alert for clean run")
		}
	})

	t.Run("writes skipped seasons list", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Skipped Seasons") {
			t.Error("expected skipped seasons header")
		}
		if !strings.Contains(output, "1952") {
			t.Error("expected skipped season year")
		}
	})

	t.Run("writes record preview table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Record Preview") {
			t.Error("expected preview header")
		}
		if !strings.Contains(output, "Bahrain") {
			t.Error("expected record in preview table")
		}
		if !strings.Contains(output, "grand_prix") {
			t.Error("expected column names in preview table")
		}
	})

	t.Run("writes footer with link", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createResultsRun())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "https://github.com/f1data/f1scrape") {
			t.Error("expected footer with repository link")
		}
	})

	t.Run("WriteSummary omits the preview", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)
		summary := createResultsRun().Summary()

		_, err := w.WriteSummary(&summary)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(buf.String(), "## Record Preview") {
			t.Error("expected no preview in summary output")
		}
	})
}

// TestTruncateString tests the string truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a longer string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"ab", 5, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			result := truncateString(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q",
					tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}
