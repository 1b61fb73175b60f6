// Package audit records tool invocation outcomes in a local SQLite
// database. Records carry names, labels, and outcomes only; request
// params and credential material are never written.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Invocation is one recorded tool call.
type Invocation struct {
	ID         string
	Method     string
	TenantID   string
	Status     string // "ok" or "error"
	ErrorCode  int    // JSON-RPC error code, 0 on success
	DurationMS int64
	At         time.Time
}

// Log is a SQLite-backed invocation log.
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database at path.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS invocations (
		id TEXT PRIMARY KEY,
		method TEXT NOT NULL,
		tenant_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		error_code INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL,
		invoked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_invocations_method ON invocations(method);
	CREATE INDEX IF NOT EXISTS idx_invocations_invoked_at ON invocations(invoked_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Record writes one invocation. A missing ID or timestamp is filled in.
func (l *Log) Record(ctx context.Context, inv Invocation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.At.IsZero() {
		inv.At = time.Now()
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO invocations (id, method, tenant_id, status, error_code, duration_ms, invoked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, inv.ID, inv.Method, inv.TenantID, inv.Status, inv.ErrorCode, inv.DurationMS, inv.At)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// Recent returns the most recent invocations, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]Invocation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, method, tenant_id, status, error_code, duration_ms, invoked_at
		FROM invocations
		ORDER BY invoked_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query invocations: %w", err)
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		if err := rows.Scan(&inv.ID, &inv.Method, &inv.TenantID, &inv.Status, &inv.ErrorCode, &inv.DurationMS, &inv.At); err != nil {
			return nil, fmt.Errorf("failed to scan invocation: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}
