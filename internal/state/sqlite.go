// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/content-robot/pkg/types"
)

// SQLiteStore keeps every saved aggregate as a snapshot row. Load returns
// the most recent snapshot, so a run that never saves leaves the previous
// state visible.
type SQLiteStore struct {
	db *sql.DB
}

// Snapshot describes one saved aggregate.
type Snapshot struct {
	ID         string
	CreatedAt  time.Time
	SearchTerm string
	Prefix     types.Prefix
	Sentences  int
}

// NewSQLiteStore opens or creates the database at path and its schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			search_term TEXT NOT NULL,
			prefix TEXT NOT NULL,
			sentence_count INTEGER NOT NULL,
			document TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_search_term ON snapshots(search_term)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load implements Store.
func (s *SQLiteStore) Load(ctx context.Context) (*types.Content, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM snapshots ORDER BY seq DESC LIMIT 1`,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}

	var c types.Content
	if err := json.Unmarshal([]byte(doc), &c); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	c.Normalize()
	return &c, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, c *types.Content) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling content: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, search_term, prefix, sentence_count, document)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		time.Now().UTC().Format(time.RFC3339Nano),
		c.SearchTerm,
		string(c.Prefix),
		len(c.Sentences),
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return tx.Commit()
}

// History lists snapshots newest first.
func (s *SQLiteStore) History(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, search_term, prefix, sentence_count FROM snapshots ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var created, prefix string
		if err := rows.Scan(&snap.ID, &created, &snap.SearchTerm, &prefix, &snap.Sentences); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snap.Prefix = types.Prefix(prefix)
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			snap.CreatedAt = t
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
