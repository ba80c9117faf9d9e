// Package tripflow provides a minimal public façade for running the
// travel-planning agent without importing internal packages. It re-exports
// the core message types for convenience and exposes a Runtime with simple
// methods to chat on a thread and read its history.
package tripflow
