// Package database provides SQLite-based storage for f1scrape.
//
// This package implements the RunDB, which stores run digests so past
// scrapes can be listed and compared without re-reading CSV output.
// Records themselves are never stored here; they live in the CSV files
// the export step writes.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
