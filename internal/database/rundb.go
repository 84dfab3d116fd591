package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/f1data/f1scrape/internal/model"
)

// RunDB provides SQLite-based storage for run digests.
// It manages connection pooling and provides methods for saving and
// listing past runs.
//
// Design decision: We use a single database file for all datasets rather
// than one file per dataset. This keeps the run history in one place and
// lets the runs listing span both pipelines with a single query.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, "f1scrape.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// The mode query parameter is how modernc.org/sqlite distinguishes
	// "open existing" (rw) from "create when missing" (rwc).
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; a single pooled connection avoids
	// SQLITE_BUSY churn between the archive insert and the runs listing.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one digest per completed scrape
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		dataset TEXT NOT NULL,
		source_url TEXT NOT NULL,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL,
		records INTEGER NOT NULL,
		rows_dropped INTEGER NOT NULL,
		skipped_periods TEXT,
		output_path TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored run digest with its database identity.
type RunRecord struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// Summary is the run digest as saved.
	Summary model.RunSummary
}

// SaveRunSummary inserts a run digest and returns its database ID.
func (rdb *RunDB) SaveRunSummary(ctx context.Context, summary *model.RunSummary) (int64, error) {
	// Serialize skipped periods to JSON
	skippedJSON, err := json.Marshal(summary.SkippedPeriods)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize skipped periods: %w", err)
	}

	query := `
	INSERT INTO runs (dataset, source_url, started_at, duration_ms, records, rows_dropped, skipped_periods, output_path)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		summary.Dataset,
		summary.SourceURL,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.DurationMillis,
		summary.Records,
		summary.RowsDropped,
		string(skippedJSON),
		summary.OutputPath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns returns stored run digests, newest first. When dataset is
// non-empty only runs of that dataset are returned. A limit of zero or
// less returns all runs.
func (rdb *RunDB) ListRuns(ctx context.Context, dataset string, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, dataset, source_url, started_at, duration_ms, records, rows_dropped, skipped_periods, output_path
	FROM runs
	WHERE 1=1
	`
	args := make([]interface{}, 0)

	if dataset != "" {
		query += " AND dataset = ?"
		args = append(args, dataset)
	}

	query += " ORDER BY started_at DESC, id DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := rdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, err := scanRunRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// LatestRun returns the most recent run digest for a dataset, or nil when
// no run has been archived yet.
func (rdb *RunDB) LatestRun(ctx context.Context, dataset string) (*RunRecord, error) {
	records, err := rdb.ListRuns(ctx, dataset, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// scanRunRecord reads one runs row into a RunRecord.
func scanRunRecord(rows *sql.Rows) (RunRecord, error) {
	var record RunRecord
	var startedAt string
	var skippedJSON sql.NullString
	var outputPath sql.NullString

	err := rows.Scan(
		&record.ID,
		&record.Summary.Dataset,
		&record.Summary.SourceURL,
		&startedAt,
		&record.Summary.DurationMillis,
		&record.Summary.Records,
		&record.Summary.RowsDropped,
		&skippedJSON,
		&outputPath,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to scan run: %w", err)
	}

	record.Summary.StartedAt = parseTimestamp(startedAt)
	record.Summary.OutputPath = outputPath.String

	if skippedJSON.Valid && skippedJSON.String != "" {
		if err := json.Unmarshal([]byte(skippedJSON.String), &record.Summary.SkippedPeriods); err != nil {
			return RunRecord{}, fmt.Errorf("failed to parse skipped periods: %w", err)
		}
	}

	return record, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // Format used when saving runs
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}
