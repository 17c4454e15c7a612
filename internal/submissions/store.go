package submissions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists submissions.
type Store interface {
	Insert(ctx context.Context, s Submission) error
	Get(ctx context.Context, id string) (Submission, error)
	ListByEmail(ctx context.Context, email string, limit int) ([]Submission, error)
	Close() error
}

// SQLiteStore keeps submissions in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newSQLiteStore(db)
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newSQLiteStore(db)
}

func newSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS submissions (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL CHECK(kind IN ('contact','application','newsletter')),
    email TEXT NOT NULL,
    name TEXT NOT NULL DEFAULT '',
    fields TEXT NOT NULL DEFAULT '{}',
    locale TEXT NOT NULL DEFAULT 'en',
    user_id TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_email ON submissions(email, created_at);
`

// Insert stores s.
func (s *SQLiteStore) Insert(ctx context.Context, sub Submission) error {
	fields, err := json.Marshal(sub.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, kind, email, name, fields, locale, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Kind, strings.ToLower(sub.Email), sub.Name, string(fields), sub.Locale, sub.UserID,
		sub.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

// Get returns the submission with id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, email, name, fields, locale, user_id, created_at FROM submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sub, err
}

// ListByEmail returns the most recent submissions for email.
func (s *SQLiteStore) ListByEmail(ctx context.Context, email string, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, email, name, fields, locale, user_id, created_at
		 FROM submissions WHERE email = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		strings.ToLower(email), limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (Submission, error) {
	var (
		sub     Submission
		fields  string
		created string
	)
	if err := row.Scan(&sub.ID, &sub.Kind, &sub.Email, &sub.Name, &fields, &sub.Locale, &sub.UserID, &created); err != nil {
		return Submission{}, err
	}
	if err := json.Unmarshal([]byte(fields), &sub.Fields); err != nil {
		return Submission{}, fmt.Errorf("decode fields: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Submission{}, fmt.Errorf("decode created_at: %w", err)
	}
	sub.CreatedAt = t
	return sub, nil
}
