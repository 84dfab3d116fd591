package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/f1data/f1scrape/internal/model"
)

// WriteCircuits writes circuit records as CSV to w. The first row is the
// column header; records follow in input order.
func WriteCircuits(w io.Writer, circuits []model.Circuit) error {
	rows := make([][]string, 0, len(circuits))
	for _, c := range circuits {
		rows = append(rows, c.CSVRow())
	}
	return writeCSV(w, model.CircuitColumns(), rows)
}

// WriteResults writes race result records as CSV to w. The first row is the
// column header; records follow in input order.
func WriteResults(w io.Writer, results []model.RaceResult) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, r.CSVRow())
	}
	return writeCSV(w, model.RaceResultColumns(), rows)
}

// SaveCircuits writes circuit records to a CSV file at path, creating parent
// directories as needed. An existing file is overwritten.
func SaveCircuits(path string, circuits []model.Circuit) error {
	return saveCSV(path, func(w io.Writer) error {
		return WriteCircuits(w, circuits)
	})
}

// SaveResults writes race result records to a CSV file at path, creating
// parent directories as needed. An existing file is overwritten.
func SaveResults(path string, results []model.RaceResult) error {
	return saveCSV(path, func(w io.Writer) error {
		return WriteResults(w, results)
	})
}

// writeCSV writes a header row followed by data rows.
//
// Design decision: We use encoding/csv rather than a third-party CSV library
// because the output is plain rectangular text. The standard writer already
// handles quoting for commas and embedded newlines, which the seasons column
// needs.
func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// saveCSV creates the file at path and hands it to write.
func saveCSV(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return write(f)
}
