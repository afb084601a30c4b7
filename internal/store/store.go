// Package store persists users and finished assessments in SQLite. It
// implements the engine's ResultSink and Identity contracts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/wellchemy/wellchemy/backend/internal/model/assessment"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
    user_id    TEXT PRIMARY KEY,
    email      TEXT UNIQUE NOT NULL,
    created_at TEXT NOT NULL
);
`

const assessmentsSchema = `
CREATE TABLE IF NOT EXISTS assessments (
    assessment_id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id       TEXT NOT NULL,
    kind          TEXT NOT NULL,
    answers       TEXT NOT NULL,
    scores        TEXT,
    date_taken    TEXT NOT NULL
);
`

const assessmentsIndex = `
CREATE INDEX IF NOT EXISTS idx_assessments_user ON assessments(user_id, kind);
`

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open initializes the database file and its schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	// modernc sqlite handles one writer at a time.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{usersSchema, assessmentsSchema, assessmentsIndex} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure resolves a candidate session identifier to a concrete user id,
// minting a guest user for absent or placeholder candidates.
func (s *Store) Ensure(ctx context.Context, candidate string) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if candidate != "" && candidate != "default" {
		return candidate, nil
	}

	id := uuid.NewString()
	email := fmt.Sprintf("guest_%s@wellchemy.ai", id)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (user_id, email, created_at)
		VALUES (?, ?, ?)`,
		id, email, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create guest user: %w", err)
	}
	return id, nil
}

// Save persists a finished assessment and returns the record id.
func (s *Store) Save(ctx context.Context, record assessment.AnswerRecord) (int64, error) {
	answers, err := json.Marshal(record.Answers)
	if err != nil {
		return 0, fmt.Errorf("failed to encode answers: %w", err)
	}

	var scores any
	if record.Scores != nil {
		encoded, err := json.Marshal(record.Scores)
		if err != nil {
			return 0, fmt.Errorf("failed to encode scores: %w", err)
		}
		scores = string(encoded)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments (user_id, kind, answers, scores, date_taken)
		VALUES (?, ?, ?, ?, ?)`,
		record.OwnerID,
		record.Kind,
		string(answers),
		scores,
		record.TakenAt.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save assessment: %w", err)
	}

	return result.LastInsertId()
}

// History returns the persisted assessments for an owner, newest first.
func (s *Store) History(ctx context.Context, ownerID string) ([]assessment.AnswerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, answers, scores, date_taken
		FROM assessments
		WHERE user_id = ?
		ORDER BY assessment_id DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var records []assessment.AnswerRecord
	for rows.Next() {
		var (
			record    assessment.AnswerRecord
			answers   string
			scores    sql.NullString
			dateTaken string
		)
		if err := rows.Scan(&record.Kind, &answers, &scores, &dateTaken); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}

		record.OwnerID = ownerID
		if err := json.Unmarshal([]byte(answers), &record.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers: %w", err)
		}
		if scores.Valid {
			if err := json.Unmarshal([]byte(scores.String), &record.Scores); err != nil {
				return nil, fmt.Errorf("failed to decode scores: %w", err)
			}
		}
		if taken, err := time.Parse(time.RFC3339, dateTaken); err == nil {
			record.TakenAt = taken
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
