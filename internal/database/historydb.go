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

	"github.com/nao1215/urlmap/internal/model"
)

// dbFileName is the history database file name inside the data directory.
const dbFileName = "urlmap.db"

// HistoryDB provides SQLite-based storage for extraction run history.
// It manages connection pooling and provides methods for recording and
// querying runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
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

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

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

	// modernc.org/sqlite uses mode=rw to forbid creation and mode=rwc
	// to allow it.
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

	// SQLite only supports one writer; keep the pool at a single
	// connection to avoid lock contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Runs record one extraction invocation each
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		inputs TEXT NOT NULL,
		output_path TEXT NOT NULL,
		total INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	-- URLs collected by each run, with their grouping domain
	CREATE TABLE IF NOT EXISTS urls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		url TEXT NOT NULL,
		domain TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_urls_run ON urls(run_id);
	CREATE INDEX IF NOT EXISTS idx_urls_domain ON urls(domain);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is a stored extraction run.
type RunRecord struct {
	ID         int64
	Timestamp  time.Time
	Inputs     []string
	OutputPath string
	Total      int
}

// SaveRun records a completed extraction run and its URL set.
// The whole insert happens in one transaction so a partial run never
// appears in the history.
func (hdb *HistoryDB) SaveRun(ctx context.Context, inputs []string, outputPath string, report *model.Report) (int64, error) {
	inputsJSON, err := json.Marshal(inputs)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize inputs: %w", err)
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after commit is a no-op

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (timestamp, inputs, output_path, total) VALUES (?, ?, ?, ?)`,
		report.GeneratedAt.UTC().Format(time.RFC3339),
		string(inputsJSON),
		outputPath,
		report.Total,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO urls (run_id, url, domain) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare URL insert: %w", err)
	}
	defer stmt.Close()

	for _, group := range report.Groups {
		for _, u := range group.URLs {
			if _, err := stmt.ExecContext(ctx, runID, u, group.Domain); err != nil {
				return 0, fmt.Errorf("failed to insert URL: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
// A limit of 0 or less returns all runs.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, timestamp, inputs, output_path, total FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			record     RunRecord
			timestamp  string
			inputsJSON string
		)
		if err := rows.Scan(&record.ID, &timestamp, &inputsJSON, &record.OutputPath, &record.Total); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if record.Timestamp, err = time.Parse(time.RFC3339, timestamp); err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		if err := json.Unmarshal([]byte(inputsJSON), &record.Inputs); err != nil {
			return nil, fmt.Errorf("failed to parse run inputs: %w", err)
		}
		runs = append(runs, record)
	}

	return runs, rows.Err()
}

// GetRun returns a single run by ID.
// Returns sql.ErrNoRows wrapped if the run does not exist.
func (hdb *HistoryDB) GetRun(ctx context.Context, runID int64) (*RunRecord, error) {
	row := hdb.db.QueryRowContext(ctx,
		`SELECT id, timestamp, inputs, output_path, total FROM runs WHERE id = ?`, runID)

	var (
		record     RunRecord
		timestamp  string
		inputsJSON string
	)
	if err := row.Scan(&record.ID, &timestamp, &inputsJSON, &record.OutputPath, &record.Total); err != nil {
		return nil, fmt.Errorf("failed to load run %d: %w", runID, err)
	}

	var err error
	if record.Timestamp, err = time.Parse(time.RFC3339, timestamp); err != nil {
		return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(inputsJSON), &record.Inputs); err != nil {
		return nil, fmt.Errorf("failed to parse run inputs: %w", err)
	}

	return &record, nil
}

// GetRunURLs returns the URLs recorded for a run, in (domain, URL)
// order matching the rendered report.
func (hdb *HistoryDB) GetRunURLs(ctx context.Context, runID int64) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx,
		`SELECT url FROM urls WHERE run_id = ? ORDER BY domain, url`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run URLs: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan URL: %w", err)
		}
		urls = append(urls, u)
	}

	return urls, rows.Err()
}
