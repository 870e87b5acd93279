// Package adapters declares the kernel's ExternalAdapters capability set
// (spec.md C9): the four collaborator interfaces the REPLLoop depends on
// without knowing which concrete transport, GUI toolkit, debugger front end,
// or magic-command pre-processor is plugged in.
package adapters

import (
	"time"

	"github.com/kestrel-lang/kestrel/internal/kernel/debugbridge"
)

// CodeSubmission is one structured message on the block-code channel:
// (source, editor_filename, line_offset, optional_cell_name) per spec.md §6.
type CodeSubmission struct {
	Source     string
	Filename   string
	LineOffset int
	CellName   string
}

// StartupSnapshot is the stat_startup inbound mapping (spec.md §6); Reply
// augments it with builtins/version/keywords before sending it back.
type StartupSnapshot struct {
	GUI           string
	ProjectPath   string
	ScriptFile    string
	StartDir      string
	StartupScript string
}

// StartupReply is the kernel's augmented reply on the same channel.
type StartupReply struct {
	StartupSnapshot
	Builtins []string
	Version  [4]int
	Keywords []string
}

// Status is one of the four values the kernel reports on stat_interpreter.
type Status int

const (
	Ready Status = iota
	More
	Busy
	Debug
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "Ready"
	case More:
		return "More"
	case Busy:
		return "Busy"
	case Debug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// Channels is the transport capability (spec.md C9, §6): non-blocking reads
// of the two inbound streams, and writers for the three outbound ones.
// recv(False) semantics are modeled as "ok == false means nothing pending"
// rather than a blocking read.
type Channels interface {
	// RecvCommand polls ctrl_command without blocking.
	RecvCommand() (line string, ok bool)
	// RecvCode polls ctrl_code without blocking.
	RecvCode() (submission CodeSubmission, ok bool)
	// RecvStartup polls stat_startup without blocking.
	RecvStartup() (snapshot StartupSnapshot, ok bool)
	// RecvBreakpoints polls stat_breakpoints without blocking. A nil map
	// means the message carried no filenames (possibly-null per spec.md §6).
	RecvBreakpoints() (breakpoints map[string][]int, ok bool)

	// SendPrompt writes the current prompt string to strm_prompt.
	SendPrompt(prompt string)
	// SendEcho writes input echo / banners to strm_echo.
	SendEcho(text string)
	// SendStatus writes a status transition to stat_interpreter.
	SendStatus(status Status)
	// SendStartupReply replies on stat_startup with the augmented snapshot.
	SendStartupReply(reply StartupReply)

	// Closed reports whether the transport has no peers left (spec.md §4.7
	// item 4: "transport is closed or has no peers" triggers shutdown).
	Closed() bool
}

// GuiHost is the foreign event-loop capability (spec.md §4.7, §9
// "Polymorphic GuiHost"): {run(callback, period), quit()}. The kernel
// depends only on this capability, never on a concrete toolkit.
type GuiHost interface {
	// Run invokes tick at least every period while no user code is running,
	// blocking until Quit is called or tick returns false (an exit request).
	Run(period time.Duration, tick func() (keepRunning bool)) error
	// Quit asks the host to stop its outer loop at the next opportunity.
	Quit()
}

// Debugger is the debug-frame-stack capability (spec.md §3, §4.8): breakpoint
// synchronization plus the frame introspection the REPLLoop's prompt and
// status need while paused.
type Debugger interface {
	SyncBreakpoints(wanted []debugbridge.Location)
	// FrameStack reports the current debug frame names, innermost first.
	// An empty stack means the kernel is not in debug mode.
	FrameStack() []string
	// CurrentFrameName is the name shown in the debug prompt, or "" when
	// not paused.
	CurrentFrameName() string
}

// Magician is the magic-command pre-processor capability (spec.md §4.7
// item 5, GLOSSARY "Magician"). Rewrite inspects one raw input line.
type Magician interface {
	// Rewrite returns handled=true when line is a magic command that fully
	// handled itself (consumed=true then also resets the line buffer);
	// handled=false with a non-empty rewritten when the expansion should be
	// split on '\n' and redispatched; or ("", false, false) when line is
	// ordinary input to pass through unchanged.
	Rewrite(line string) (rewritten string, consumed bool, handled bool)
}
