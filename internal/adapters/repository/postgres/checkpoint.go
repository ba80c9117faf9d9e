// Package postgres provides the durable checkpoint store used by the
// hosted service.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripflow/tripflow/internal/core/checkpoint"
	"github.com/tripflow/tripflow/pkg/serialization"
)

// Store implements checkpoint.Store on PostgreSQL via pgx.
//
// The log is append-only: Put inserts, never updates. Two concurrent runs
// on one thread race and the later insert wins GetLatest; callers needing
// ordering must serialize per thread.
type Store struct {
	pool       *pgxpool.Pool
	serializer *serialization.Serializer
}

// NewStore creates a PostgreSQL checkpoint store. A nil serializer selects
// the default msgpack+zstd pipeline.
func NewStore(pool *pgxpool.Pool, serializer *serialization.Serializer) *Store {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &Store{pool: pool, serializer: serializer}
}

// CreateTables creates the conversations and checkpoints tables.
func (s *Store) CreateTables(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			thread_id VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS checkpoints (
			seq BIGSERIAL PRIMARY KEY,
			thread_id VARCHAR(255) NOT NULL REFERENCES conversations (thread_id) ON DELETE CASCADE,
			checkpoint_id VARCHAR(255) NOT NULL,
			parent_checkpoint_id VARCHAR(255),
			data BYTEA NOT NULL,
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_checkpoints_thread ON checkpoints (thread_id, created_at DESC, seq DESC);
	`
	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Put appends a checkpoint row, creating the conversation record on first
// write for an unseen thread id. Both inserts run in one transaction so a
// storage fault leaves no partial state behind.
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

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO conversations (thread_id) VALUES ($1) ON CONFLICT (thread_id) DO NOTHING`,
		cp.ThreadID,
	); err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO checkpoints (thread_id, checkpoint_id, parent_checkpoint_id, data, metadata)
		 VALUES ($1, $2, NULLIF($3, ''), $4, $5)`,
		cp.ThreadID, cp.ID, cp.ParentID, blob, metadataJSON,
	); err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}
	return nil
}

// GetLatest returns the checkpoint with the greatest (created_at, seq)
// for the thread, or ErrNoCheckpoint.
func (s *Store) GetLatest(ctx context.Context, threadID string) (*checkpoint.Checkpoint, error) {
	var blob []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM checkpoints
		 WHERE thread_id = $1
		 ORDER BY created_at DESC, seq DESC
		 LIMIT 1`,
		threadID,
	).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, checkpoint.ErrNoCheckpoint
		}
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}
	return s.decode(blob)
}

// List returns all checkpoints for the thread, newest first. Intended for
// history and audit, not for resuming a run.
func (s *Store) List(ctx context.Context, threadID string) ([]*checkpoint.Checkpoint, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM checkpoints
		 WHERE thread_id = $1
		 ORDER BY created_at DESC, seq DESC`,
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

// Close releases the connection pool.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
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
