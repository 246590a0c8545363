// Package debug is Ariadne's development tracer: a small, mutex-guarded
// conditional logger gated by a build-time flag or the DEBUG environment
// variable, with a Quiet toggle so an embedder that talks a structured
// protocol over stdout (a language-server front end, an MCP tool-call
// transport) can silence it outright. It never reasons about
// Diagnostics — those are plain structured values threaded through
// Project's own return values (§7) — this package exists purely to
// trace what the three resolution-heavy stages (indexing, name/call
// resolution, call-graph construction) actually did on a given run.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// EnableDebug is a build flag, overridable at link time:
// go build -ldflags "-X github.com/ariadne-lang/ariadne/internal/debug.EnableDebug=true"
var EnableDebug = "false"

// Quiet suppresses all trace output regardless of EnableDebug or DEBUG,
// for embedders that can't tolerate interleaved log lines on stdio.
var Quiet = false

var (
	outputMu sync.Mutex
	output   io.Writer
)

// SetQuiet toggles Quiet mode.
func SetQuiet(enabled bool) {
	Quiet = enabled
}

// SetOutput sets the writer trace output goes to. Pass nil to disable
// output entirely (the default).
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
}

// IsDebugEnabled reports whether tracing is active: Quiet always wins,
// otherwise the build flag or a truthy DEBUG environment variable
// enables it.
func IsDebugEnabled() bool {
	if Quiet {
		return false
	}
	if EnableDebug == "true" {
		return true
	}
	v := os.Getenv("DEBUG")
	return v == "1" || v == "true"
}

func writer() io.Writer {
	outputMu.Lock()
	defer outputMu.Unlock()
	return output
}

// Log emits one line tagged with a component name, a no-op unless
// tracing is enabled and an output writer is configured.
func Log(component, format string, args ...interface{}) {
	if !IsDebugEnabled() {
		return
	}
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[DEBUG:%s] "+format+"\n", append([]interface{}{component}, args...)...)
}

// LogIndex traces C1-C7: parsing, scope/definition/reference/type
// building, and registry application for one file.
func LogIndex(format string, args ...interface{}) {
	Log("INDEX", format, args...)
}

// LogResolve traces C8/C9: name resolution and call dispatch, notably
// when a call site falls through to the heuristic_match fallback or
// gets tagged a callback invocation.
func LogResolve(format string, args ...interface{}) {
	Log("RESOLVE", format, args...)
}

// LogCallGraph traces C11: call-graph construction and entry-point
// detection.
func LogCallGraph(format string, args ...interface{}) {
	Log("CALLGRAPH", format, args...)
}
