package tools

import (
	"sync"

	"github.com/tripflow/tripflow/internal/core/reduce"
)

// DataStore is the invocation-scoped map from (data type, derived key) to
// full search payloads. One store is created per top-level run and threaded
// through the dispatcher explicitly; it is never shared between runs, so
// concurrent requests cannot observe each other's in-flight results.
type DataStore struct {
	mu   sync.RWMutex
	data map[reduce.DataType]map[string]reduce.Payload
}

// NewDataStore creates an empty store with the three fixed data types.
func NewDataStore() *DataStore {
	s := &DataStore{}
	s.reset()
	return s
}

func (s *DataStore) reset() {
	s.data = map[reduce.DataType]map[string]reduce.Payload{
		reduce.DataFlights: {},
		reduce.DataHotels:  {},
		reduce.DataNews:    {},
	}
}

// Put deposits a full payload under the derived key.
func (s *DataStore) Put(dt reduce.DataType, key string, payload reduce.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[dt]; !ok {
		s.data[dt] = map[string]reduce.Payload{}
	}
	s.data[dt][key] = payload
}

// Get returns the payload stored under (dt, key), if any.
func (s *DataStore) Get(dt reduce.DataType, key string) (reduce.Payload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[dt][key]
	return p, ok
}

// Keys lists the deposit keys currently held for one data type.
func (s *DataStore) Keys(dt reduce.DataType) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data[dt]))
	for k := range s.data[dt] {
		keys = append(keys, k)
	}
	return keys
}

// Clear resets the store to its empty state.
func (s *DataStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// Snapshot copies the store contents for the run result. The returned map
// is detached from the store.
func (s *DataStore) Snapshot() map[string]map[string]reduce.Payload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]map[string]reduce.Payload, len(s.data))
	for dt, byKey := range s.data {
		m := make(map[string]reduce.Payload, len(byKey))
		for k, v := range byKey {
			m[k] = v
		}
		out[string(dt)] = m
	}
	return out
}
