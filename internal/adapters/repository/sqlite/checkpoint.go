// Package sqlite provides a file-backed checkpoint store for single-node
// deployments where running PostgreSQL is not worth the operational cost.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/tripflow/tripflow/internal/core/checkpoint"
	"github.com/tripflow/tripflow/pkg/serialization"
)

// Store implements checkpoint.Store on SQLite with the same append-only
// contract as the PostgreSQL store.
type Store struct {
	db         *sql.DB
	serializer *serialization.Serializer
}

// Open opens (or creates) the database file and prepares the schema.
func Open(path string, serializer *serialization.Serializer) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	s := NewStore(db, serializer)
	if err := s.CreateTables(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing database handle. A nil serializer selects the
// default msgpack+zstd pipeline.
func NewStore(db *sql.DB, serializer *serialization.Serializer) *Store {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &Store{db: db, serializer: serializer}
}

// CreateTables creates the conversations and checkpoints tables.
func (s *Store) CreateTables(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			thread_id TEXT UNIQUE NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (unixepoch())
		);

		CREATE TABLE IF NOT EXISTS checkpoints (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			thread_id TEXT NOT NULL REFERENCES conversations (thread_id) ON DELETE CASCADE,
			checkpoint_id TEXT NOT NULL,
			parent_checkpoint_id TEXT,
			data BLOB NOT NULL,
			metadata TEXT,
			created_at INTEGER NOT NULL DEFAULT (unixepoch())
		);

		CREATE INDEX IF NOT EXISTS idx_checkpoints_thread ON checkpoints (thread_id, seq DESC);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Put appends a checkpoint row inside one transaction, creating the
// conversation record when the thread id is unseen.
func (s *Store) Put(ctx context.Context, cp *checkpoint.Checkpoint, md checkpoint.Metadata) error {
	if cp == nil {
		return checkpoint.ErrInvalidCheckpointID
	}
	if err := cp.Validate(); err != nil {
		return fmt.Errorf("checkpoint validation failed: %w", err)
	}

	blob, err := s.serializer.Marshal(cp)
	if err != nil {
		return fmt.Errorf("failed to serialize checkpoint: %w", err)
	}
	metadataJSON, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO conversations (thread_id) VALUES (?)`,
		cp.ThreadID,
	); err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO checkpoints (thread_id, checkpoint_id, parent_checkpoint_id, data, metadata)
		 VALUES (?, ?, NULLIF(?, ''), ?, ?)`,
		cp.ThreadID, cp.ID, cp.ParentID, blob, string(metadataJSON),
	); err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}
	return nil
}

// GetLatest returns the most recently inserted checkpoint for the thread.
// The monotonic seq column decides latest, so sub-second ties resolve by
// write order.
func (s *Store) GetLatest(ctx context.Context, threadID string) (*checkpoint.Checkpoint, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM checkpoints WHERE thread_id = ? ORDER BY seq DESC LIMIT 1`,
		threadID,
	).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, checkpoint.ErrNoCheckpoint
		}
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	return s.decode(blob)
}

// List returns all checkpoints for the thread, newest first.
func (s *Store) List(ctx context.Context, threadID string) ([]*checkpoint.Checkpoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM checkpoints WHERE thread_id = ? ORDER BY seq DESC`,
		threadID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", checkpoint.ErrListFailed, err)
	}
	defer rows.Close()

	var out []*checkpoint.Checkpoint
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint row: %w", err)
		}
		cp, err := s.decode(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", checkpoint.ErrListFailed, err)
	}
	return out, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) decode(blob []byte) (*checkpoint.Checkpoint, error) {
	var cp checkpoint.Checkpoint
	if err := s.serializer.Unmarshal(blob, &cp); err != nil {
		return nil, fmt.Errorf("failed to deserialize checkpoint: %w", err)
	}
	return &cp, nil
}
