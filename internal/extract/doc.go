// Package extract converts parsed table rows into typed records.
//
// Two strategies exist, one per dataset:
//
//   - Fixed positional extraction (circuits): read known zero-based column
//     indices out of each data row. Rows with fewer cells than the layout
//     requires are dropped and counted, never repaired.
//   - Header-driven extraction (results): map columns onto record fields by
//     their normalized header names, then tag every record with the season
//     year, which the table itself does not carry.
//
// Records are validated as they are built: numeric and date fields that do
// not parse come out as missing-value markers. Nothing downstream touches
// raw cell positions again.
package extract
