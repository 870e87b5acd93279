// Package executor implements the Executor (spec.md C4.4): runs one
// CompiledUnit against the user namespace, synchronizing breakpoints and
// tracing first, then classifying whatever comes back into the four-way
// exception dispatch spec.md §4.4 describes.
package executor

import (
	"time"

	"github.com/kestrel-lang/kestrel/internal/core"
	"github.com/kestrel-lang/kestrel/internal/debug"
	"github.com/kestrel-lang/kestrel/internal/kernel/adapters"
	"github.com/kestrel-lang/kestrel/internal/kernel/compiler"
	"github.com/kestrel-lang/kestrel/internal/kernel/debugbridge"
	"github.com/kestrel-lang/kestrel/internal/kernel/signal"
	"github.com/kestrel-lang/kestrel/internal/trace"
)

// Outcome classifies what happened after running a unit, per the spec.md
// §4.4 exception taxonomy.
type Outcome int

const (
	// Normal means the unit ran to completion with no unusual exception.
	Normal Outcome = iota
	// DebuggerQuit means the debugger asked execution to stop silently.
	DebuggerQuit
	// Interrupted means a KeyboardInterrupt-equivalent was raised.
	Interrupted
	// Exited means signal.Exit propagated and must reach the outer loop.
	Exited
)

// Result is what Run returns: the evaluated value (when there is one), the
// raw error (for ordinary exceptions, handed to the TracebackRewriter by
// the caller), the dispatch classification, and — for Exited — the code.
type Result struct {
	Value    core.Value
	Err      error
	Outcome  Outcome
	ExitCode int
}

// PreTracebackDelay is the brief pause before handing an ordinary exception
// to the TracebackRewriter, giving interleaved stdout a chance to drain
// (spec.md §4.4, the kernel's "one concession to the asynchronous output
// stream not being flushable synchronously").
var PreTracebackDelay = 2 * time.Millisecond

// Executor runs compiled units against an evaluation environment, wiring in
// the runtime debugger and tracer ahead of each run.
type Executor struct {
	Env      core.Evaluator
	Debugger *debugbridge.Bridge
	Tracer   *trace.TraceSession
}

// New builds an Executor over env, wiring it to the given breakpoint bridge
// and trace session (spec.md §4.4 items 1-2).
func New(env core.Evaluator, bridge *debugbridge.Bridge, tracer *trace.TraceSession) *Executor {
	return &Executor{Env: env, Debugger: bridge, Tracer: tracer}
}

// Run executes unit, synchronizing tracing state first: tracing is enabled
// only while at least one breakpoint is active, since it has a measurable
// per-expression cost (spec.md §4.4 item 2).
func (x *Executor) Run(unit compiler.Unit) Result {
	if x.Tracer != nil {
		if len(x.Debugger.Locations()) > 0 {
			x.Tracer.Enable(trace.TraceFilters{})
		} else {
			x.Tracer.Disable()
		}
	}

	val, err := x.Env.DoBlock(unit.Values)
	if err == nil {
		return Result{Value: val, Outcome: Normal}
	}

	switch e := err.(type) {
	case *signal.DebuggerQuit:
		return Result{Err: e, Outcome: DebuggerQuit}
	case *signal.Exit:
		return Result{Err: e, Outcome: Exited, ExitCode: e.Code}
	case signal.Interrupt:
		time.Sleep(PreTracebackDelay)
		return Result{Err: e, Outcome: Interrupted}
	default:
		time.Sleep(PreTracebackDelay)
		return Result{Err: e, Outcome: Normal}
	}
}

// SyncBreakpoints applies a snapshot of filename:line locations the control
// channel reported, adding the ones missing and removing the ones no longer
// present (spec.md §4.4 item 1, §4.8).
func (x *Executor) SyncBreakpoints(wanted []debugbridge.Location) {
	want := make(map[debugbridge.Location]bool, len(wanted))
	for _, loc := range wanted {
		want[loc] = true
		x.Debugger.SetBreakpoint(loc)
	}
	for _, loc := range x.Debugger.Locations() {
		if !want[loc] {
			x.Debugger.RemoveBreakpoint(loc)
		}
	}
}

// EnableDebugMode turns on the runtime debugger backing this executor,
// matching the teacher's InitDebugger/Enable two-step lifecycle.
func EnableDebugMode(d *debug.Debugger) {
	d.Enable()
}

// FrameStack implements adapters.Debugger: the current call stack while
// paused, innermost first, or an empty slice when not paused — the
// DebugFrameStack of spec.md §3.
func (x *Executor) FrameStack() []string {
	if !x.Debugger.IsPaused() {
		return nil
	}
	stack := x.Debugger.CallStack(x.Env)
	reversed := make([]string, len(stack))
	for i, name := range stack {
		reversed[len(stack)-1-i] = name
	}
	return reversed
}

// CurrentFrameName implements adapters.Debugger: the name PromptModel shows
// in the "(frame_name)>>> " debug prompt, or "" when not paused.
func (x *Executor) CurrentFrameName() string {
	frames := x.FrameStack()
	if len(frames) == 0 {
		return ""
	}
	return frames[0]
}

var _ adapters.Debugger = (*Executor)(nil)
