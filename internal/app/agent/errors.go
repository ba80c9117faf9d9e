package agent

import "errors"

// Run-level error taxonomy. Tool failures never surface here; they are
// converted into tool messages by the dispatcher and the run continues.
var (
	// ErrEmptyMessage rejects a run before any state mutation.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrRunawayLoop aborts a run whose reason/tools loop exceeded the
	// configured maximum iteration count. Fatal, never retried.
	ErrRunawayLoop = errors.New("tool-call loop exceeded maximum iterations")

	// ErrReasoner wraps reasoning-provider failures. The run aborts and
	// the last successfully persisted checkpoint remains the resumable
	// state.
	ErrReasoner = errors.New("reasoning provider failed")
)
