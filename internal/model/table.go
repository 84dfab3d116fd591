package model

// Table is an ephemeral, in-memory grid parsed out of an HTML page: one
// header row plus zero or more data rows. It is produced by the table parser,
// consumed once by a record extractor, and never persisted.
type Table struct {
	// Caption is the table's caption text, when the source table has one.
	// Informational only; extraction never keys off it.
	Caption string

	// Headers contains the trimmed text of the header row cells, in
	// document order.
	Headers []string

	// Rows contains the trimmed text of each data row's cells, in document
	// order. Rows are not required to share a cell count; extractors decide
	// what to do with short rows.
	Rows [][]string
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// IsEmpty returns true when the table has no data rows.
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}
