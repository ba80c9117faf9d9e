package metrics

import (
	"expvar"
)

// Tool metrics keyed by tool name.
var (
	toolCalls    = expvar.NewMap("tripflow_tool_calls_total")
	toolFailures = expvar.NewMap("tripflow_tool_failures_total")
)

// Run / checkpoint metrics.
var (
	runsTotal             = new(expvar.Int)
	runFailuresTotal      = new(expvar.Int)
	reasonerCallsTotal    = new(expvar.Int)
	checkpointWritesTotal = new(expvar.Int)
)

func init() {
	expvar.Publish("tripflow_runs_total", runsTotal)
	expvar.Publish("tripflow_run_failures_total", runFailuresTotal)
	expvar.Publish("tripflow_reasoner_calls_total", reasonerCallsTotal)
	expvar.Publish("tripflow_checkpoint_writes_total", checkpointWritesTotal)
}

// Tool helpers
func ToolCall(name string)    { toolCalls.Add(name, 1) }
func ToolFailure(name string) { toolFailures.Add(name, 1) }

// Run helpers
func IncRuns()             { runsTotal.Add(1) }
func IncRunFailures()      { runFailuresTotal.Add(1) }
func IncReasonerCalls()    { reasonerCallsTotal.Add(1) }
func IncCheckpointWrites() { checkpointWritesTotal.Add(1) }
