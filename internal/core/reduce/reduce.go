// Package reduce converts one raw search-provider result into two artifacts
// built deterministically from the same data: a compact tabular view sized
// for the reasoning step's context, and a full payload keeping every provider
// field for UI display, cross-referenced by a shared idx.
//
// The package is pure: no I/O, no dependencies beyond the standard library.
// Provider results arrive as decoded JSON (map[string]interface{}), matching
// the opaque provider-JSON contract of the search adapters.
package reduce

import (
	"fmt"
	"strings"
)

// DataType names one reducible search domain. The set is fixed.
type DataType string

const (
	DataFlights DataType = "flights"
	DataHotels  DataType = "hotels"
	DataNews    DataType = "news"
)

// Valid reports whether dt is one of the three known data types.
func (dt DataType) Valid() bool {
	switch dt {
	case DataFlights, DataHotels, DataNews:
		return true
	}
	return false
}

// Payload is the full, unreduced artifact addressable by key in the
// request data store.
type Payload map[string]interface{}

// header renders the compact-view first line: record count plus the exact
// ordered field list, e.g. `flights [3] {idx, price, ...}`.
func header(name string, count int, fields []string) string {
	return fmt.Sprintf("%s [%d] {%s}\n", name, count, strings.Join(fields, ", "))
}

// row renders one compact-view record line.
func row(values ...interface{}) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "\t\t" + strings.Join(parts, ",") + "\n"
}

// getString reads a string field with a fallback for missing values.
func getString(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// getValue reads any field, substituting fallback when absent.
func getValue(m map[string]interface{}, key string, fallback interface{}) interface{} {
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return fallback
}

// getMap reads a nested object field, returning an empty map when absent.
func getMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return map[string]interface{}{}
}

// getSlice reads an array field, returning nil when absent.
func getSlice(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key].([]interface{}); ok {
		return v
	}
	return nil
}

// asStrings converts a decoded JSON array to strings, skipping non-strings.
func asStrings(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
