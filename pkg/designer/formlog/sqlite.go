package formlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS form_logs (
	id         TEXT PRIMARY KEY,
	form_name  TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	data       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_form_logs_form_created ON form_logs(form_name, created_at);
`

// SQLStore keeps entries in a SQLite database through database/sql.
type SQLStore struct {
	db    *sql.DB
	owned bool
	now   func() time.Time
}

var _ Store = (*SQLStore)(nil)

// Open opens (or creates) the SQLite database at dsn and migrates it.
func Open(dsn string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("formlog: open database: %w", err)
	}
	// SQLite serialises writers; one connection also keeps ":memory:"
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)

	store, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.owned = true
	return store, nil
}

// New wraps an existing handle and runs the schema migration.
func New(db *sql.DB) (*SQLStore, error) {
	if db == nil {
		return nil, fmt.Errorf("formlog: database handle is nil")
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("formlog: migrate: %w", err)
	}
	return &SQLStore{db: db, now: time.Now}, nil
}

// Close closes the database when the store opened it.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil || !s.owned {
		return nil
	}
	return s.db.Close()
}

// Append inserts entry, assigning an ID and timestamp when missing.
func (s *SQLStore) Append(ctx context.Context, entry Entry) error {
	entry = prepare(entry, s.now)
	data := entry.Data
	if data == nil {
		data = map[string]string{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("formlog: encode data: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO form_logs (id, form_name, created_at, data) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.FormName, entry.CreatedAt.UnixNano(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("formlog: insert entry: %w", err)
	}
	return nil
}

// List returns entries for formName, newest first.
func (s *SQLStore) List(ctx context.Context, formName string, limit int) ([]Entry, error) {
	query := `SELECT id, form_name, created_at, data FROM form_logs WHERE form_name = ? ORDER BY created_at DESC, rowid DESC`
	args := []any{formName}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("formlog: query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var (
			entry   Entry
			created int64
			payload string
		)
		if err := rows.Scan(&entry.ID, &entry.FormName, &created, &payload); err != nil {
			return nil, fmt.Errorf("formlog: scan entry: %w", err)
		}
		entry.CreatedAt = time.Unix(0, created).UTC()
		if err := json.Unmarshal([]byte(payload), &entry.Data); err != nil {
			return nil, fmt.Errorf("formlog: decode entry %s: %w", entry.ID, err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("formlog: iterate entries: %w", err)
	}
	return out, nil
}
