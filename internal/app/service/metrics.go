package service

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// promMetricsHandler renders expvar-published metrics in Prometheus text
// exposition format. Known agent metrics get full metadata; other numeric
// expvar vars fall back to a minimal untyped rendering.
func promMetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

	type meta struct {
		typ, help string
		isMap     bool
		label     string
	}
	metas := map[string]meta{
		"tripflow_runs_total":              {typ: "counter", help: "Agent runs started"},
		"tripflow_run_failures_total":      {typ: "counter", help: "Agent runs that ended in error"},
		"tripflow_reasoner_calls_total":    {typ: "counter", help: "Reasoning provider invocations"},
		"tripflow_checkpoint_writes_total": {typ: "counter", help: "Checkpoints persisted"},
		"tripflow_tool_calls_total":        {typ: "counter", help: "Tool calls dispatched", isMap: true, label: "tool"},
		"tripflow_tool_failures_total":     {typ: "counter", help: "Tool calls that returned an error message", isMap: true, label: "tool"},
	}

	varNames := make([]string, 0, 16)
	expvar.Do(func(kv expvar.KeyValue) {
		varNames = append(varNames, kv.Key)
	})
	sort.Strings(varNames)

	for _, name := range varNames {
		v := expvar.Get(name)
		m, known := metas[name]
		if !known {
			if iv, ok := v.(*expvar.Int); ok {
				fmt.Fprintf(w, "# TYPE %s gauge\n", name)
				fmt.Fprintf(w, "%s %s\n", name, iv.String())
			}
			continue
		}
		fmt.Fprintf(w, "# HELP %s %s\n", name, m.help)
		fmt.Fprintf(w, "# TYPE %s %s\n", name, m.typ)
		if m.isMap {
			if mp, ok := v.(*expvar.Map); ok {
				sub := make([]expvar.KeyValue, 0, 8)
				mp.Do(func(kv expvar.KeyValue) { sub = append(sub, kv) })
				sort.Slice(sub, func(i, j int) bool { return sub[i].Key < sub[j].Key })
				for _, kv := range sub {
					fmt.Fprintf(w, "%s{%s=\"%s\"} %s\n", name, m.label, escapeLabel(kv.Key), kv.Value.String())
				}
			}
		} else {
			fmt.Fprintf(w, "%s %s\n", name, v.String())
		}
	}
}

// escapeLabel escapes backslash, double-quote and newline per the
// Prometheus text format.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
