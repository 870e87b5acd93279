// Package signal defines the control-flow sentinels the kernel uses to
// distinguish ordinary evaluation errors from the three conditions that
// must unwind through Executor and REPLLoop instead of being formatted
// as a traceback: a debugger pause, a keyboard interrupt, and process exit.
package signal

import "fmt"

// DebuggerQuit signals that the debugger back-end asked execution to stop
// without producing a traceback (spec §4.4, §7 item 4).
type DebuggerQuit struct {
	Reason string
}

func (d *DebuggerQuit) Error() string {
	if d.Reason == "" {
		return "debugger quit"
	}
	return "debugger quit: " + d.Reason
}

// Interrupt signals a user-requested cancellation (Ctrl+C). Unlike Python's
// KeyboardInterrupt it is never silently swallowed: Executor formats it like
// any other runtime exception (spec §4.4 item 3, §7 item 3).
type Interrupt struct{}

func (Interrupt) Error() string { return "KeyboardInterrupt" }

// Exit signals that the kernel should terminate the process with Code.
// It propagates through Executor untouched and is caught only by the
// outer ShutdownCoordinator (spec §4.4 item 4, §4.9).
type Exit struct {
	Code int
}

func (e *Exit) Error() string {
	return fmt.Sprintf("SystemExit(%d)", e.Code)
}

// DebugPause describes execution paused at a breakpoint or step point.
// Neither Executor nor REPLLoop constructs or handles it; the REPLLoop
// detects debug mode from the Debugger's frame stack instead.
type DebugPause struct {
	FrameName string
}

func (p *DebugPause) Error() string {
	return fmt.Sprintf("paused in %s", p.FrameName)
}
