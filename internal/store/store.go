// Package store persists compliance results in SQLite, keyed by document
// ID. Results are written with an upsert so retries are idempotent by key.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no compliance result exists for a document.
var ErrNotFound = errors.New("compliance result not found")

const schema = `
CREATE TABLE IF NOT EXISTS compliance_results (
	document_id              TEXT PRIMARY KEY,
	legal_compliance_status  TEXT NOT NULL,
	risk_assessment_details  TEXT NOT NULL,
	updated_at               TEXT NOT NULL
);
`

// pragmas applied at open. WAL keeps concurrent readers cheap and the busy
// timeout covers writer contention.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// ComplianceResult is one stored row.
type ComplianceResult struct {
	DocumentID string    `json:"documentId"`
	Status     string    `json:"legalComplianceStatus"`
	Details    string    `json:"riskAssessmentDetails"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the results database at path and
// applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertComplianceResult writes the result for a document, replacing any
// previous result for the same document ID.
func (s *Store) UpsertComplianceResult(ctx context.Context, documentID, status, details string) error {
	if documentID == "" {
		return fmt.Errorf("document ID is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compliance_results (
			document_id, legal_compliance_status, risk_assessment_details, updated_at
		) VALUES (?,?,?,?)
		ON CONFLICT(document_id) DO UPDATE SET
			legal_compliance_status=excluded.legal_compliance_status,
			risk_assessment_details=excluded.risk_assessment_details,
			updated_at=excluded.updated_at`,
		documentID, status, details, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert compliance result: %w", err)
	}
	return nil
}

// GetComplianceResult retrieves the stored result for a document.
func (s *Store) GetComplianceResult(ctx context.Context, documentID string) (*ComplianceResult, error) {
	var result ComplianceResult
	var updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT document_id, legal_compliance_status, risk_assessment_details, updated_at
		FROM compliance_results WHERE document_id = ?`,
		documentID,
	).Scan(&result.DocumentID, &result.Status, &result.Details, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query compliance result: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		result.UpdatedAt = t
	}

	return &result, nil
}
