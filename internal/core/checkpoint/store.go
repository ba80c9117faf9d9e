// Package checkpoint provides checkpoint persistence interfaces
package checkpoint

import (
	"context"
)

// Store is the durable, append-only log of per-thread checkpoints
// (DIP - Dependency Inversion).
// PRINCIPLES:
// - ISP: Interface segregation with ≤5 methods
// - DIP: Core domain depends on interface, not implementations
// - SRP: Single responsibility - checkpoint persistence
//
// The store does NOT serialize concurrent runs on one thread: two writers
// race and "latest" is decided purely by write order. Callers that need
// ordering must serialize per thread themselves.
type Store interface {
	// Put appends a checkpoint to the thread's log, creating the thread
	// record on first write for an unseen id. Existing rows are never
	// mutated or removed.
	Put(ctx context.Context, cp *Checkpoint, md Metadata) error

	// GetLatest returns the most recently written checkpoint for the
	// thread, or ErrNoCheckpoint when the thread has none.
	GetLatest(ctx context.Context, threadID string) (*Checkpoint, error)

	// List returns all checkpoints for the thread, newest first.
	// Intended for history and audit, not for resuming a run.
	List(ctx context.Context, threadID string) ([]*Checkpoint, error)

	// Close releases the underlying persistence resources.
	Close() error
}
