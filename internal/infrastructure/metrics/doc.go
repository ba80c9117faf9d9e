// Package metrics exposes expvar-published counters for the agent runtime
// (runs, reasoning calls, tool calls, checkpoint writes). It intentionally
// avoids external dependencies and is consumed by the server's /debug/vars
// and /metrics endpoints.
package metrics
