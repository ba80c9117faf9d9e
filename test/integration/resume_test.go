//go:build integration

// Package integration contains cross-package integration tests.
package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/tripflow/internal/adapters/repository/sqlite"
	"github.com/tripflow/tripflow/internal/adapters/search"
	"github.com/tripflow/tripflow/internal/app/agent"
	"github.com/tripflow/tripflow/internal/app/tools"
	"github.com/tripflow/tripflow/internal/core/message"
)

type cannedReasoner struct{}

func (cannedReasoner) Reason(_ context.Context, history []message.Message, _ []tools.Descriptor) (message.Message, error) {
	return message.AI("reply " + history[len(history)-1].Content), nil
}

type emptySearcher struct{}

func (emptySearcher) Flights(context.Context, search.FlightQuery) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (emptySearcher) Hotels(context.Context, search.HotelQuery) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

func (emptySearcher) News(context.Context, string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

// A conversation persisted by one process must be resumable by another
// process opening the same database file.
func TestResumeAcrossRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "agent.db")

	newRunner := func() (*agent.Runner, func()) {
		store, err := sqlite.Open(path, nil)
		require.NoError(t, err)
		dispatcher := tools.NewDispatcher(emptySearcher{}, zerolog.Nop())
		r := agent.NewRunner(store, cannedReasoner{}, dispatcher, zerolog.Nop())
		return r, func() { _ = store.Close() }
	}

	r1, close1 := newRunner()
	_, err := r1.Run(ctx, "t1", "first")
	require.NoError(t, err)
	close1()

	// "Restart": a new runner over a fresh store handle.
	r2, close2 := newRunner()
	defer close2()

	history, err := r2.History(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "reply first", history[1].Content)

	res, err := r2.Run(ctx, "t1", "second")
	require.NoError(t, err)
	assert.Equal(t, "reply second", res.Response)

	history, err = r2.History(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, history, 4)
}
