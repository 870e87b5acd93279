// Package replloop implements the REPLLoop (spec.md C7): the single
// cooperative tick that ties LineBuffer, Compiler, Executor,
// TracebackRewriter, PromptModel, Magician, Channels, GuiHost, and
// ShutdownCoordinator together (spec.md §4.7).
package replloop

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kestrel-lang/kestrel/internal/kernel/adapters"
	"github.com/kestrel-lang/kestrel/internal/kernel/compiler"
	"github.com/kestrel-lang/kestrel/internal/kernel/debugbridge"
	"github.com/kestrel-lang/kestrel/internal/kernel/executor"
	"github.com/kestrel-lang/kestrel/internal/kernel/linebuf"
	"github.com/kestrel-lang/kestrel/internal/kernel/promptmodel"
	"github.com/kestrel-lang/kestrel/internal/kernel/shutdown"
	"github.com/kestrel-lang/kestrel/internal/kernel/signal"
	"github.com/kestrel-lang/kestrel/internal/kernel/source"
	"github.com/kestrel-lang/kestrel/internal/kernel/traceback"
)

// banner styles the block-execution banner spec.md §4.3 has the kernel emit
// on a code submission, replacing the teacher's unstyled log lines.
var banner = lipgloss.NewStyle().Faint(true)

// DefaultPeriod is the GuiHost tick period spec.md §4.7 names as its
// default (10ms).
const DefaultPeriod = 10 * time.Millisecond

// Loop owns every piece of mutable session state the tick touches.
type Loop struct {
	Channels adapters.Channels
	Executor *executor.Executor
	Debugger adapters.Debugger
	Magician adapters.Magician
	Registry *source.Registry
	Shutdown *shutdown.Coordinator

	buffer         linebuf.Buffer
	executionCount int
	moreExpected   bool
	newPrompt      bool
	lastStatus     adapters.Status

	startupScript     string
	startupScriptDone bool

	extensionShell bool

	running bool

	// lastException is sys.last_*-equivalent state: the most recent
	// traceback.Rewritten result whose Cacheable flag held at the time it
	// was produced (spec.md §4.5). It survives across ticks and is read
	// back through LastException.
	lastException *traceback.Rewritten
}

// New builds a Loop ready to run. startupScript, if non-empty, is executed
// once on the first tick (spec.md §4.7 item 1).
func New(ch adapters.Channels, x *executor.Executor, dbg adapters.Debugger, mag adapters.Magician, reg *source.Registry, startupScript string) *Loop {
	return &Loop{
		Channels:      ch,
		Executor:      x,
		Debugger:      dbg,
		Magician:      mag,
		Registry:      reg,
		Shutdown:      shutdown.New(),
		newPrompt:     true,
		startupScript: startupScript,
	}
}

// Run pumps the loop via a GuiHost, ticking Tick at least every period
// (spec.md §4.7's "runs inside a callback the GuiHost invokes"). It returns
// the resolved shutdown.Intent once the loop or the host requests exit.
func (l *Loop) Run(host adapters.GuiHost, period time.Duration) shutdown.Intent {
	l.running = true
	var tickErr error
	_ = host.Run(period, func() bool {
		if err := l.Tick(); err != nil {
			tickErr = err
			return false
		}
		return l.running
	})
	return l.Shutdown.Resolve(tickErr)
}

// Tick runs exactly one REPLLoop iteration (spec.md §4.7 steps 1-5).
func (l *Loop) Tick() error {
	if l.startupScript != "" && !l.startupScriptDone {
		l.Channels.SendStatus(adapters.Busy)
		l.runSource(l.startupScript, source.NewOriginTag("<startup>", 0), compiler.Exec)
		l.startupScriptDone = true
	}

	if l.newPrompt {
		l.Channels.SendPrompt(promptmodel.Current(l.promptState()))
		l.newPrompt = false
	}

	status := l.currentStatus()
	if status != l.lastStatus {
		l.Channels.SendStatus(status)
		l.lastStatus = status
	}

	if l.Channels.Closed() {
		l.requestExit(0, nil)
		l.running = false
		return nil
	}

	if line, ok := l.Channels.RecvCommand(); ok {
		l.handleCommand(line)
		return nil
	}

	if submission, ok := l.Channels.RecvCode(); ok {
		l.handleCode(submission)
		return nil
	}

	return nil
}

// handleCommand implements spec.md §4.7 step 5's command-channel branch.
func (l *Loop) handleCommand(line string) {
	l.Channels.SendEcho(line)
	l.Channels.SendStatus(adapters.Busy)

	rewritten, consumed, handled := l.Magician.Rewrite(line)
	if handled {
		if consumed {
			l.buffer = linebuf.Buffer{}
			l.moreExpected = false
			l.newPrompt = true
		}
		return
	}
	if rewritten != "" {
		for _, segment := range strings.Split(rewritten, "\n") {
			l.dispatchLine(segment)
		}
		return
	}
	l.dispatchLine(line)
}

// dispatchLine implements the single-line compile/execute path (spec.md
// §4.2), appending to the LineBuffer and recompiling the joined text.
func (l *Loop) dispatchLine(line string) {
	l.buffer.Append(line)

	out := compiler.Compile(l.buffer.Joined(), source.NewOriginTag("<input>", 0), compiler.Single)
	switch out.Result {
	case compiler.Incomplete:
		l.moreExpected = true
		l.newPrompt = true
		return
	case compiler.Invalid:
		l.Channels.SendEcho(traceback.RewriteSyntaxError(out.Err.Filename, out.Err.Line, out.Err.Text, out.Err.Message))
		l.buffer = linebuf.Buffer{}
		l.moreExpected = false
		l.newPrompt = true
		return
	}

	l.buffer = linebuf.Buffer{}
	l.moreExpected = false
	l.executionCount++
	l.runUnit(out.Unit, source.UnitID{})
	l.newPrompt = true
}

// handleCode implements the block-execution path of spec.md §4.3.
func (l *Loop) handleCode(submission adapters.CodeSubmission) {
	label := submission.Filename
	if submission.CellName != "" {
		label = fmt.Sprintf("cell %q", submission.CellName)
	}
	l.Channels.SendEcho(banner.Render(fmt.Sprintf("executing lines %d to %d of %s",
		submission.LineOffset+1, submission.LineOffset+strings.Count(submission.Source, "\n")+1, label)))
	l.Channels.SendStatus(adapters.Busy)
	l.executionCount++

	l.runSource(submission.Source, source.NewOriginTag(submission.Filename, submission.LineOffset), compiler.Exec)
}

// runSource compiles sourceText under origin/mode and, on success, stores it
// in SourceRegistry and runs it (spec.md §4.3 steps 3-4).
func (l *Loop) runSource(sourceText string, origin source.OriginTag, mode compiler.Mode) {
	out := compiler.Compile(sourceText, origin, mode)
	switch out.Result {
	case compiler.Invalid:
		l.Channels.SendEcho(traceback.RewriteSyntaxError(out.Err.Filename, out.Err.Line, out.Err.Text, out.Err.Message))
		return
	case compiler.Incomplete:
		l.Channels.SendEcho("cannot run an incomplete block")
		return
	}

	id := l.Registry.NextID(origin)
	l.Registry.Store(id, sourceText)
	l.runUnit(out.Unit, id)
}

// syncBreakpoints drains the latest stat_breakpoints snapshot, if any, and
// applies it to the Debugger (spec.md §4.8: "before every unit execution").
func (l *Loop) syncBreakpoints() {
	breakpoints, ok := l.Channels.RecvBreakpoints()
	if !ok {
		return
	}
	var locations []debugbridge.Location
	for filename, lines := range breakpoints {
		for _, line := range lines {
			locations = append(locations, debugbridge.Location{Filename: filename, Line: line})
		}
	}
	l.Debugger.SyncBreakpoints(locations)
}

// runUnit executes unit and dispatches its Result per spec.md §4.4 item 4.
func (l *Loop) runUnit(unit compiler.Unit, id source.UnitID) {
	l.syncBreakpoints()
	result := l.Executor.Run(unit)

	switch result.Outcome {
	case executor.Normal:
		if result.Err != nil {
			paused := len(l.Debugger.FrameStack()) > 0
			rewritten := traceback.Rewrite(result.Err, unit.Origin, l.Registry, id, unit.Mode == compiler.Exec, paused)
			l.Channels.SendEcho(rewritten.Text)
			if rewritten.Cacheable {
				l.lastException = &rewritten
			}
		}
	case executor.Interrupted:
		l.Channels.SendEcho(signal.Interrupt{}.Error())
		l.buffer = linebuf.Buffer{}
		l.moreExpected = false
	case executor.DebuggerQuit:
		// Control signal, not an error: no traceback (spec.md §4.4 item 4).
	case executor.Exited:
		l.requestExit(result.ExitCode, result.Err)
		l.running = false
	}
}

// LastException returns the most recently cached exception, or nil if none
// has been cached yet (spec.md §4.5).
func (l *Loop) LastException() *traceback.Rewritten {
	return l.lastException
}

func (l *Loop) requestExit(code int, cause error) {
	l.Shutdown.Capture(shutdown.Intent{Code: code, Cause: cause})
}

// currentStatus computes the Status spec.md §4.7 step 3 describes, from
// (DebugFrameStack, more_expected).
func (l *Loop) currentStatus() adapters.Status {
	if len(l.Debugger.FrameStack()) > 0 {
		return adapters.Debug
	}
	if l.moreExpected {
		return adapters.More
	}
	return adapters.Ready
}

func (l *Loop) promptState() promptmodel.State {
	frames := l.Debugger.FrameStack()
	switch {
	case len(frames) > 0:
		return promptmodel.State{Mode: promptmodel.Debug, DebugFrameName: frames[0], MoreExpected: l.moreExpected}
	case l.extensionShell:
		return promptmodel.State{Mode: promptmodel.ExtensionShell, ExecutionCount: l.executionCount, MoreExpected: l.moreExpected}
	default:
		return promptmodel.State{Mode: promptmodel.Plain, MoreExpected: l.moreExpected}
	}
}
