package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBName is the journal file created inside the state directory
const DBName = "aerofs.db"

// Direction of a content transfer
type Direction string

const (
	Upload   Direction = "upload"
	Download Direction = "download"
)

// Status of a finished transfer
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// TransferRecord is one journaled content transfer
type TransferRecord struct {
	ID        int64
	FileID    string
	Name      string
	Direction Direction
	Bytes     int64
	// ETag returned by the server after the transfer, if any
	ETag string
	// Checksum of the local copy, "algo:hex"
	Checksum  string
	Status    Status
	StartTime time.Time
	EndTime   time.Time
	Error     string
}

// Duration returns how long the transfer took
func (r TransferRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Manager is the transfer journal
type Manager struct {
	db *sql.DB
}

// NewManager opens (or creates) the journal in dataDir
func NewManager(dataDir string) (*Manager, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("state directory cannot be empty")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, DBName))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection avoids "database is locked" between writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode and busy timeout: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return m, nil
}

func (m *Manager) initSchema() error {
	_, err := m.db.Exec(`
	CREATE TABLE IF NOT EXISTS transfers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		direction TEXT NOT NULL,
		bytes INTEGER NOT NULL DEFAULT 0,
		etag TEXT NOT NULL DEFAULT '',
		checksum TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		error TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_transfers_file_time ON transfers(file_id, start_time DESC);
	CREATE INDEX IF NOT EXISTS idx_transfers_status ON transfers(status);
	`)
	return err
}

// SaveTransfer appends a record and returns its id
func (m *Manager) SaveTransfer(ctx context.Context, record TransferRecord) (int64, error) {
	if record.FileID == "" {
		return 0, fmt.Errorf("file id cannot be empty")
	}
	if record.Direction != Upload && record.Direction != Download {
		return 0, fmt.Errorf("invalid direction: %s (must be 'upload' or 'download')", record.Direction)
	}
	if record.Status != StatusSuccess && record.Status != StatusFailed {
		return 0, fmt.Errorf("invalid status: %s (must be 'success' or 'failed')", record.Status)
	}

	res, err := m.db.ExecContext(ctx, `
		INSERT INTO transfers (file_id, name, direction, bytes, etag, checksum, status, start_time, end_time, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.FileID,
		record.Name,
		string(record.Direction),
		record.Bytes,
		record.ETag,
		record.Checksum,
		string(record.Status),
		record.StartTime.UTC(),
		record.EndTime.UTC(),
		record.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save transfer record: %w", err)
	}
	return res.LastInsertId()
}

const selectTransfers = `
	SELECT id, file_id, name, direction, bytes, etag, checksum, status, start_time, end_time, error
	FROM transfers`

// GetHistory returns the most recent transfers of one file, newest first
func (m *Manager) GetHistory(ctx context.Context, fileID string, limit int) ([]TransferRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := m.db.QueryContext(ctx,
		selectTransfers+` WHERE file_id = ? ORDER BY start_time DESC, id DESC LIMIT ?`,
		fileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return scanAll(rows)
}

// GetAllHistory returns the most recent transfers of all files, newest first
func (m *Manager) GetAllHistory(ctx context.Context, limit int) ([]TransferRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	rows, err := m.db.QueryContext(ctx,
		selectTransfers+` ORDER BY start_time DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query all history: %w", err)
	}
	return scanAll(rows)
}

// GetLastSuccess returns the newest successful transfer of a file, or nil
func (m *Manager) GetLastSuccess(ctx context.Context, fileID string) (*TransferRecord, error) {
	row := m.db.QueryRowContext(ctx,
		selectTransfers+` WHERE file_id = ? AND status = ? ORDER BY start_time DESC, id DESC LIMIT 1`,
		fileID, string(StatusSuccess))

	record, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last success: %w", err)
	}
	return &record, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (TransferRecord, error) {
	var (
		r         TransferRecord
		direction string
		status    string
	)
	err := s.Scan(&r.ID, &r.FileID, &r.Name, &direction, &r.Bytes, &r.ETag, &r.Checksum, &status,
		&r.StartTime, &r.EndTime, &r.Error)
	r.Direction = Direction(direction)
	r.Status = Status(status)
	return r, err
}

func scanAll(rows *sql.Rows) ([]TransferRecord, error) {
	defer rows.Close()

	var records []TransferRecord
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

// Close closes the database
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
