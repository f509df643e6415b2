// Package history persists seqcheck scan runs to a local SQLite database so
// pipeline operators can review what a delivery looked like at scan time and
// whether gaps were already present in an earlier pass.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/seqcheck/internal/filelock"
)

//go:embed schema.sql
var schemaSQL string

// ScanRecord is one recorded scan run.
type ScanRecord struct {
	ID               string
	Root             string
	FilesProcessed   int
	DirsScanned      int
	MissingFiles     int
	UnsequencedFiles int
	Duration         time.Duration
	StartedAt        time.Time
}

// MissingFile is one missing sequence member found during a scan.
type MissingFile struct {
	Dir    string
	Name   string
	Number int
}

// Store manages the SQLite database holding scan history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new Store instance and initializes the database.
func NewStore(dbPath string) (*Store, error) {
	// Handle in-memory database
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	// Ensure parent directory exists for file-based databases
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

// openAndInitStore opens the database connection and initializes schema.
func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure SQLite for concurrent access. busy_timeout must come first so
	// subsequent operations wait on locks instead of failing immediately.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on
// lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}

		// Only retry on "database is locked" errors
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// lock returns a cross-process lock guarding writes to the database file.
// Returns nil for in-memory databases, which are process-local anyway.
func (s *Store) lock() *filelock.FileLock {
	if s.dbPath == ":memory:" {
		return nil
	}
	return filelock.NewFileLock(s.dbPath + ".lock")
}

// RecordScan inserts a scan run and its missing files in one transaction.
// The record's ID is assigned here if empty. Writes are serialized across
// processes via a lock file next to the database.
func (s *Store) RecordScan(ctx context.Context, rec *ScanRecord, missing []MissingFile) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	if fl := s.lock(); fl != nil {
		if err := fl.Lock(); err != nil {
			return err
		}
		defer fl.Unlock()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO scans
		(id, root, files_processed, dirs_scanned, missing_files, unsequenced_files, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Root,
		rec.FilesProcessed,
		rec.DirsScanned,
		rec.MissingFiles,
		rec.UnsequencedFiles,
		rec.Duration.Milliseconds(),
		rec.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	for _, m := range missing {
		_, err = tx.ExecContext(ctx, `INSERT INTO missing_files (scan_id, dir, name, seq_number)
			VALUES (?, ?, ?, ?)`,
			rec.ID, m.Dir, m.Name, m.Number,
		)
		if err != nil {
			return fmt.Errorf("insert missing file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan: %w", err)
	}
	return nil
}

// ListScans returns recorded scans, most recent first.
// limit <= 0 returns all scans.
func (s *Store) ListScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	query := `SELECT id, root, files_processed, dirs_scanned, missing_files, unsequenced_files, duration_ms, started_at
		FROM scans ORDER BY started_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		var durationMs int64
		if err := rows.Scan(&rec.ID, &rec.Root, &rec.FilesProcessed, &rec.DirsScanned,
			&rec.MissingFiles, &rec.UnsequencedFiles, &durationMs, &rec.StartedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetScan returns one scan and its missing files. The id may be a unique
// prefix of the full uuid, matching the usual CLI convenience.
func (s *Store) GetScan(ctx context.Context, id string) (*ScanRecord, []MissingFile, error) {
	var rec ScanRecord
	var durationMs int64
	err := s.db.QueryRowContext(ctx, `SELECT id, root, files_processed, dirs_scanned, missing_files, unsequenced_files, duration_ms, started_at
		FROM scans WHERE id = ? OR id LIKE ? || '%' ORDER BY started_at DESC LIMIT 1`, id, id).
		Scan(&rec.ID, &rec.Root, &rec.FilesProcessed, &rec.DirsScanned,
			&rec.MissingFiles, &rec.UnsequencedFiles, &durationMs, &rec.StartedAt)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("scan %s not found", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query scan: %w", err)
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond

	rows, err := s.db.QueryContext(ctx, `SELECT dir, name, seq_number FROM missing_files
		WHERE scan_id = ? ORDER BY dir, seq_number`, rec.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("query missing files: %w", err)
	}
	defer rows.Close()

	var missing []MissingFile
	for rows.Next() {
		var m MissingFile
		if err := rows.Scan(&m.Dir, &m.Name, &m.Number); err != nil {
			return nil, nil, fmt.Errorf("scan missing file row: %w", err)
		}
		missing = append(missing, m)
	}
	return &rec, missing, rows.Err()
}

// Prune deletes all but the newest keepScans scan records.
// keepScans <= 0 is a no-op.
func (s *Store) Prune(ctx context.Context, keepScans int) error {
	if keepScans <= 0 {
		return nil
	}

	if fl := s.lock(); fl != nil {
		if err := fl.Lock(); err != nil {
			return err
		}
		defer fl.Unlock()
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM scans WHERE id NOT IN
		(SELECT id FROM scans ORDER BY started_at DESC, id DESC LIMIT ?)`, keepScans)
	if err != nil {
		return fmt.Errorf("prune scans: %w", err)
	}
	return nil
}

// Clear removes all scan history.
func (s *Store) Clear(ctx context.Context) error {
	if fl := s.lock(); fl != nil {
		if err := fl.Lock(); err != nil {
			return err
		}
		defer fl.Unlock()
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM scans`); err != nil {
		return fmt.Errorf("clear scans: %w", err)
	}
	return nil
}
