package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripflow/tripflow/internal/core/reduce"
)

func TestDataStore_PutGet(t *testing.T) {
	s := NewDataStore()
	s.Put(reduce.DataFlights, "Mumbai_Delhi_2025-12-15", reduce.Payload{"flights": []interface{}{}})

	got, ok := s.Get(reduce.DataFlights, "Mumbai_Delhi_2025-12-15")
	require.True(t, ok)
	assert.Contains(t, got, "flights")

	_, ok = s.Get(reduce.DataFlights, "missing")
	assert.False(t, ok)

	// Types keep separate key spaces.
	_, ok = s.Get(reduce.DataHotels, "Mumbai_Delhi_2025-12-15")
	assert.False(t, ok)
}

func TestDataStore_PutOverwrites(t *testing.T) {
	s := NewDataStore()
	s.Put(reduce.DataNews, "bali", reduce.Payload{"v": 1})
	s.Put(reduce.DataNews, "bali", reduce.Payload{"v": 2})

	got, ok := s.Get(reduce.DataNews, "bali")
	require.True(t, ok)
	assert.Equal(t, 2, got["v"])
	assert.Equal(t, []string{"bali"}, s.Keys(reduce.DataNews))
}

func TestDataStore_Keys(t *testing.T) {
	s := NewDataStore()
	assert.Empty(t, s.Keys(reduce.DataHotels))

	s.Put(reduce.DataHotels, "Goa_2025-12-01_2025-12-03", reduce.Payload{})
	s.Put(reduce.DataHotels, "Bali_2025-12-20_2025-12-25", reduce.Payload{})

	keys := s.Keys(reduce.DataHotels)
	assert.ElementsMatch(t, []string{"Goa_2025-12-01_2025-12-03", "Bali_2025-12-20_2025-12-25"}, keys)
}

func TestDataStore_Clear(t *testing.T) {
	s := NewDataStore()
	s.Put(reduce.DataFlights, "a", reduce.Payload{})
	s.Put(reduce.DataNews, "b", reduce.Payload{})

	s.Clear()

	assert.Empty(t, s.Keys(reduce.DataFlights))
	assert.Empty(t, s.Keys(reduce.DataNews))

	// Still usable after a clear.
	s.Put(reduce.DataFlights, "c", reduce.Payload{})
	_, ok := s.Get(reduce.DataFlights, "c")
	assert.True(t, ok)
}

func TestDataStore_Isolation(t *testing.T) {
	a := NewDataStore()
	b := NewDataStore()

	a.Put(reduce.DataNews, "q", reduce.Payload{})
	_, ok := b.Get(reduce.DataNews, "q")
	assert.False(t, ok)
}

func TestDataStore_SnapshotDetached(t *testing.T) {
	s := NewDataStore()
	s.Put(reduce.DataFlights, "a", reduce.Payload{"price": 100})

	snap := s.Snapshot()
	require.Contains(t, snap, string(reduce.DataFlights))
	require.Contains(t, snap[string(reduce.DataFlights)], "a")

	// Mutating the snapshot must not leak back into the store.
	delete(snap[string(reduce.DataFlights)], "a")
	_, ok := s.Get(reduce.DataFlights, "a")
	assert.True(t, ok)
}
