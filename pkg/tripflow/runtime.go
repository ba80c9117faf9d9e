package tripflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tripflow/tripflow/internal/adapters/repository/memory"
	"github.com/tripflow/tripflow/internal/app/agent"
	"github.com/tripflow/tripflow/internal/app/tools"
	"github.com/tripflow/tripflow/internal/core/checkpoint"
	"github.com/tripflow/tripflow/internal/core/message"
)

// Re-export core types for convenience
type Message = message.Message
type ToolCallRequest = message.ToolCallRequest
type Reasoner = agent.Reasoner
type Searcher = tools.Searcher
type Descriptor = tools.Descriptor
type RunResult = agent.RunResult
type HistoryEntry = agent.HistoryEntry

// Runtime is a simple façade wiring a checkpoint store, a reasoning
// provider and a search provider into the agent runner. The default
// runtime uses the in-memory store and is suitable for local usage and
// tests.
type Runtime struct {
	runner *agent.Runner
	store  checkpoint.Store
}

// Option configures a Runtime.
type Option func(*options)

type options struct {
	store         checkpoint.Store
	log           zerolog.Logger
	maxIterations int
}

// WithStore substitutes a durable checkpoint store for the in-memory
// default.
func WithStore(store checkpoint.Store) Option {
	return func(o *options) { o.store = store }
}

// WithLogger sets the logger used by the runner and dispatcher.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMaxIterations bounds the reason/tools loop.
func WithMaxIterations(n int) Option {
	return func(o *options) { o.maxIterations = n }
}

// NewRuntime constructs a runtime over the given collaborators.
func NewRuntime(reasoner Reasoner, searcher Searcher, opts ...Option) *Runtime {
	o := &options{
		log:           zerolog.Nop(),
		maxIterations: agent.DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.store == nil {
		o.store = memory.NewStore(nil)
	}

	dispatcher := tools.NewDispatcher(searcher, o.log)
	runner := agent.NewRunner(o.store, reasoner, dispatcher, o.log,
		agent.WithMaxIterations(o.maxIterations))
	return &Runtime{runner: runner, store: o.store}
}

// NewThreadID mints a fresh conversation thread id.
func NewThreadID() string {
	return "session-" + uuid.NewString()[:12]
}

// Chat runs one conversation turn. An empty threadID starts a fresh
// thread; the assigned id is returned in the result.
func (rt *Runtime) Chat(ctx context.Context, threadID, userMessage string) (*RunResult, error) {
	if threadID == "" {
		threadID = NewThreadID()
	}
	return rt.runner.Run(ctx, threadID, userMessage)
}

// History returns the conversation reconstructed from the thread's latest
// checkpoint.
func (rt *Runtime) History(ctx context.Context, threadID string) ([]HistoryEntry, error) {
	return rt.runner.History(ctx, threadID)
}

// Close releases the underlying store.
func (rt *Runtime) Close() error {
	return rt.store.Close()
}
