// Package checkpoint defines domain-specific errors
package checkpoint

import "errors"

// Domain errors - DRY principle: defined once, used everywhere
var (
	// Checkpoint validation errors
	ErrInvalidCheckpointID = errors.New("invalid checkpoint ID")
	ErrInvalidThreadID     = errors.New("invalid thread ID")
	ErrInvalidVersion      = errors.New("invalid checkpoint version")
	ErrNoCheckpoint        = errors.New("no checkpoint for thread")

	// Persistence errors
	ErrPutFailed  = errors.New("failed to put checkpoint")
	ErrListFailed = errors.New("failed to list checkpoints")
)
