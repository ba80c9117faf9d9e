package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/tripflow/internal/core/checkpoint"
	"github.com/tripflow/tripflow/internal/core/message"
)

// TestStore_AppendOnlyLog exercises the real database when
// TRIPFLOW_TEST_DATABASE_URL is set; CI runs it against a disposable
// Postgres container.
func TestStore_AppendOnlyLog(t *testing.T) {
	dsn := os.Getenv("TRIPFLOW_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("integration test requires TRIPFLOW_TEST_DATABASE_URL")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	store := NewStore(pool, nil)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.CreateTables(ctx))

	threadID := fmt.Sprintf("t-%d", time.Now().UnixNano())

	var parent string
	for i := 1; i <= 4; i++ {
		cp := &checkpoint.Checkpoint{
			Version:         checkpoint.SchemaVersion,
			ID:              fmt.Sprintf("cp-%d", i),
			ParentID:        parent,
			ThreadID:        threadID,
			Timestamp:       time.Now(),
			Channels:        checkpoint.ChannelValues{Messages: []message.Message{message.Human(fmt.Sprintf("m%d", i))}},
			ChannelVersions: map[string]int64{checkpoint.MessagesChannel: int64(i)},
			VersionsSeen:    map[string]map[string]int64{},
		}
		require.NoError(t, store.Put(ctx, cp, checkpoint.Metadata{Source: "test", Step: i}))
		parent = cp.ID
	}

	latest, err := store.GetLatest(ctx, threadID)
	require.NoError(t, err)
	assert.Equal(t, "cp-4", latest.ID)
	assert.Equal(t, "cp-3", latest.ParentID)

	all, err := store.List(ctx, threadID)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "cp-4", all[0].ID)
	assert.Equal(t, "cp-1", all[3].ID)

	_, err = store.GetLatest(ctx, threadID+"-missing")
	assert.ErrorIs(t, err, checkpoint.ErrNoCheckpoint)
}

func TestStore_PutValidation(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil, nil)

	err := store.Put(ctx, nil, checkpoint.Metadata{})
	assert.ErrorIs(t, err, checkpoint.ErrInvalidCheckpointID)

	err = store.Put(ctx, &checkpoint.Checkpoint{ID: "cp-1"}, checkpoint.Metadata{})
	assert.ErrorIs(t, err, checkpoint.ErrInvalidThreadID)
}
