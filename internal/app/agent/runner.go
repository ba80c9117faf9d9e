// Package agent implements the reasoning/tool-execution loop that drives
// one conversation turn and persists its progress as checkpoints.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tripflow/tripflow/internal/app/tools"
	"github.com/tripflow/tripflow/internal/core/checkpoint"
	"github.com/tripflow/tripflow/internal/core/message"
	"github.com/tripflow/tripflow/internal/core/reduce"
	"github.com/tripflow/tripflow/internal/infrastructure/metrics"
)

// DefaultMaxIterations bounds the reason/tools loop of one run.
const DefaultMaxIterations = 10

// RunResult is the outcome of one successful run: the terminal response
// plus the full payloads deposited by this invocation's tool calls.
type RunResult struct {
	Response string
	ThreadID string
	Data     map[string]map[string]reduce.Payload
}

// HistoryEntry is one conversation message reduced to its display form.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Runner drives the START -> REASON -> (TOOLS -> REASON)* -> END machine.
// PRINCIPLES:
// - SRP: Only orchestrates; reasoning, tools and persistence are collaborators
// - DIP: Depends on the Reasoner and Store interfaces, not implementations
//
// Runs on the same thread are serialized by a per-thread mutex inside the
// runner. The store itself does not enforce ordering: two writers from
// different processes still race and "latest" is decided by write order.
type Runner struct {
	store      checkpoint.Store
	reasoner   Reasoner
	dispatcher *tools.Dispatcher
	log        zerolog.Logger

	maxIterations int
	now           func() time.Time
	newID         func() string

	mu      sync.Mutex
	threads map[string]*sync.Mutex
}

// Option configures a Runner.
type Option func(*Runner)

// WithMaxIterations overrides the reason/tools loop bound.
func WithMaxIterations(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxIterations = n
		}
	}
}

// WithClock overrides the runner's clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithIDGenerator overrides checkpoint id generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(r *Runner) { r.newID = newID }
}

// NewRunner wires the orchestrator over its three collaborators.
func NewRunner(store checkpoint.Store, reasoner Reasoner, dispatcher *tools.Dispatcher, log zerolog.Logger, opts ...Option) *Runner {
	r := &Runner{
		store:         store,
		reasoner:      reasoner,
		dispatcher:    dispatcher,
		log:           log,
		maxIterations: DefaultMaxIterations,
		now:           time.Now,
		newID:         uuid.NewString,
		threads:       make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// threadLock returns the mutex serializing runs on one thread.
func (r *Runner) threadLock(threadID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.threads[threadID]
	if !ok {
		l = &sync.Mutex{}
		r.threads[threadID] = l
	}
	return l
}

// Run executes one conversation turn on the thread.
//
// The latest checkpoint is loaded (an unseen thread starts empty), the
// user message is appended, and the loop alternates reasoning with tool
// dispatch. A checkpoint is written after each ai message carrying tool
// calls, after the resulting tool messages, and after the terminal
// response. A reasoning failure aborts the run without writing a
// checkpoint for the failed turn; a persistence failure is fatal for the
// run that triggered it.
func (r *Runner) Run(ctx context.Context, threadID, userMessage string) (*RunResult, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, ErrEmptyMessage
	}
	if threadID == "" {
		return nil, checkpoint.ErrInvalidThreadID
	}

	lock := r.threadLock(threadID)
	lock.Lock()
	defer lock.Unlock()

	metrics.IncRuns()
	res, err := r.run(ctx, threadID, userMessage)
	if err != nil {
		metrics.IncRunFailures()
	}
	return res, err
}

func (r *Runner) run(ctx context.Context, threadID, userMessage string) (*RunResult, error) {
	log := r.log.With().Str("thread_id", threadID).Logger()

	cp, err := r.store.GetLatest(ctx, threadID)
	if err != nil && !errors.Is(err, checkpoint.ErrNoCheckpoint) {
		return nil, fmt.Errorf("loading thread %s: %w", threadID, err)
	}

	history := append([]message.Message(nil), cp.Messages()...)
	history = append(history, message.Human(userMessage))

	store := tools.NewDataStore()
	step := 0

	for i := 0; i < r.maxIterations; i++ {
		callHistory := history
		// The fixed instruction message rides along only on the very
		// first reasoning call of a fresh thread; it is never persisted.
		if len(history) == 1 {
			callHistory = append([]message.Message{message.System(systemPrompt(r.now()))}, history...)
		}

		metrics.IncReasonerCalls()
		ai, err := r.reasoner.Reason(ctx, callHistory, r.dispatcher.Descriptors())
		if err != nil {
			// Last good checkpoint stays the resumable state.
			log.Error().Err(err).Int("iteration", i).Msg("reasoning step failed")
			return nil, fmt.Errorf("%w: %v", ErrReasoner, err)
		}
		history = append(history, ai)

		if !ai.HasToolCalls() {
			step++
			if cp, err = r.persist(ctx, cp, threadID, history, "loop", step); err != nil {
				return nil, err
			}
			log.Info().Int("messages", len(history)).Msg("run complete")
			return &RunResult{
				Response: ai.Content,
				ThreadID: threadID,
				Data:     store.Snapshot(),
			}, nil
		}

		log.Info().Int("tool_calls", len(ai.ToolCalls)).Int("iteration", i).Msg("dispatching tools")

		step++
		if cp, err = r.persist(ctx, cp, threadID, history, "loop", step); err != nil {
			return nil, err
		}

		results := r.dispatcher.Dispatch(ctx, ai.ToolCalls, store)
		history = append(history, results...)

		step++
		if cp, err = r.persist(ctx, cp, threadID, history, "loop", step); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %d iterations on thread %s", ErrRunawayLoop, r.maxIterations, threadID)
}

// persist appends a successor checkpoint carrying the current history.
func (r *Runner) persist(ctx context.Context, cp *checkpoint.Checkpoint, threadID string, msgs []message.Message, source string, step int) (*checkpoint.Checkpoint, error) {
	next := cp.Next(r.newID(), threadID, msgs, r.now())
	md := checkpoint.Metadata{
		Source: source,
		Step:   step,
		Writes: map[string]interface{}{checkpoint.MessagesChannel: len(msgs)},
	}
	if err := r.store.Put(ctx, next, md); err != nil {
		return nil, fmt.Errorf("persisting checkpoint for thread %s: %w", threadID, err)
	}
	metrics.IncCheckpointWrites()
	return next, nil
}

// History reconstructs the conversation from the latest checkpoint as
// {role, content} pairs. An unseen thread yields an empty history.
func (r *Runner) History(ctx context.Context, threadID string) ([]HistoryEntry, error) {
	cp, err := r.store.GetLatest(ctx, threadID)
	if err != nil {
		if errors.Is(err, checkpoint.ErrNoCheckpoint) {
			return []HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("loading thread %s: %w", threadID, err)
	}

	msgs := cp.Messages()
	out := make([]HistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, HistoryEntry{Role: string(m.Role), Content: m.Content})
	}
	return out, nil
}
