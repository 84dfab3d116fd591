// Package export writes extracted records to CSV files.
//
// Both datasets share the same output shape: a header row of normalized
// column names followed by one row per record, with missing values rendered
// as empty cells. Writers take an io.Writer so tests and callers can target
// buffers; the Save functions wrap them with file creation.
package export
