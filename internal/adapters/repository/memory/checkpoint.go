// Package memory provides an in-memory checkpoint store for tests and
// single-process deployments.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tripflow/tripflow/internal/core/checkpoint"
	"github.com/tripflow/tripflow/pkg/serialization"
)

// Store implements checkpoint.Store with mutex-guarded per-thread logs.
// Checkpoints are held serialized so the in-memory path exercises the same
// wire format as the durable backends.
// PRINCIPLES:
// - KISS: Simple map of append-only slices with proper concurrency
// - DIP: Implements checkpoint.Store interface
type Store struct {
	mu         sync.RWMutex
	threads    map[string][]entry
	serializer *serialization.Serializer
}

type entry struct {
	blob []byte
	md   checkpoint.Metadata
}

// NewStore creates an in-memory checkpoint store. A nil serializer selects
// the default msgpack+zstd pipeline.
func NewStore(serializer *serialization.Serializer) *Store {
	if serializer == nil {
		serializer = serialization.Default()
	}
	return &Store{
		threads:    make(map[string][]entry),
		serializer: serializer,
	}
}

// Put appends a checkpoint to the thread's log, creating the thread on
// first write. Rows are never mutated or removed.
func (s *Store) Put(_ context.Context, cp *checkpoint.Checkpoint, md checkpoint.Metadata) error {
	if cp == nil {
		return checkpoint.ErrInvalidCheckpointID
	}
	if err := cp.Validate(); err != nil {
		return fmt.Errorf("checkpoint validation failed: %w", err)
	}

	blob, err := s.serializer.Marshal(cp)
	if err != nil {
		return fmt.Errorf("%w: %v", checkpoint.ErrPutFailed, err)
	}

	s.mu.Lock()
	s.threads[cp.ThreadID] = append(s.threads[cp.ThreadID], entry{blob: blob, md: md})
	s.mu.Unlock()
	return nil
}

// GetLatest returns the most recently written checkpoint for the thread.
// Write order decides "latest"; concurrent writers on one thread race.
func (s *Store) GetLatest(_ context.Context, threadID string) (*checkpoint.Checkpoint, error) {
	s.mu.RLock()
	log := s.threads[threadID]
	s.mu.RUnlock()

	if len(log) == 0 {
		return nil, checkpoint.ErrNoCheckpoint
	}
	return s.decode(log[len(log)-1].blob)
}

// List returns all checkpoints for the thread, newest first.
func (s *Store) List(_ context.Context, threadID string) ([]*checkpoint.Checkpoint, error) {
	s.mu.RLock()
	log := s.threads[threadID]
	s.mu.RUnlock()

	out := make([]*checkpoint.Checkpoint, 0, len(log))
	for i := len(log) - 1; i >= 0; i-- {
		cp, err := s.decode(log[i].blob)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

// Close releases nothing for the in-memory store.
func (s *Store) Close() error { return nil }

func (s *Store) decode(blob []byte) (*checkpoint.Checkpoint, error) {
	var cp checkpoint.Checkpoint
	if err := s.serializer.Unmarshal(blob, &cp); err != nil {
		return nil, fmt.Errorf("checkpoint deserialization failed: %w", err)
	}
	return &cp, nil
}
