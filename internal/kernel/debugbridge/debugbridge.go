// Package debugbridge adapts the Kestrel runtime's word-keyed debug.Debugger
// to the filename:line breakpoint contract the kernel exposes over
// stat_breakpoints (spec.md §6, supplemented from the teacher's DebugSession
// flow). The runtime only ever knew how to pause on a *word*; the kernel's
// front end wants to set and clear breakpoints by source position, so this
// package keeps the filename:line <-> synthetic-word mapping and forwards
// everything else straight through to debug.Debugger.
package debugbridge

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kestrel-lang/kestrel/internal/core"
	"github.com/kestrel-lang/kestrel/internal/debug"
)

// Location is one filename:line breakpoint position.
type Location struct {
	Filename string
	Line     int
}

func (l Location) key() string { return fmt.Sprintf("%s:%d", l.Filename, l.Line) }

// Bridge owns the filename:line <-> word mapping over one debug.Debugger.
type Bridge struct {
	mu       sync.Mutex
	debugger *debug.Debugger
	ids      map[Location]int // Location -> breakpoint ID the word key maps to
}

// New wraps d, an already-initialized runtime debugger.
func New(d *debug.Debugger) *Bridge {
	return &Bridge{debugger: d, ids: make(map[Location]int)}
}

// SetBreakpoint registers loc, returning its breakpoint ID. Setting the same
// location twice is a no-op that returns the existing ID.
func (b *Bridge) SetBreakpoint(loc Location) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id, ok := b.ids[loc]; ok {
		return id
	}
	id := b.debugger.SetBreakpoint(loc.key())
	b.ids[loc] = id
	return id
}

// RemoveBreakpoint clears a previously set location. Reports whether it was
// present.
func (b *Bridge) RemoveBreakpoint(loc Location) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.ids[loc]; !ok {
		return false
	}
	delete(b.ids, loc)
	return b.debugger.RemoveBreakpoint(loc.key())
}

// RemoveByID clears whichever location currently maps to id.
func (b *Bridge) RemoveByID(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for loc, locID := range b.ids {
		if int64(locID) == id {
			delete(b.ids, loc)
			break
		}
	}
	return b.debugger.RemoveBreakpointByID(id)
}

// Locations reports the breakpoints currently registered, for the
// stat_breakpoints reply (spec.md §6), in a stable, sorted order.
func (b *Bridge) Locations() []Location {
	b.mu.Lock()
	defer b.mu.Unlock()
	locs := make([]Location, 0, len(b.ids))
	for loc := range b.ids {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].Filename != locs[j].Filename {
			return locs[i].Filename < locs[j].Filename
		}
		return locs[i].Line < locs[j].Line
	})
	return locs
}

// HasBreakpoint reports whether loc currently has an active breakpoint.
func (b *Bridge) HasBreakpoint(loc Location) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.debugger.HasBreakpoint(loc.key())
}

// HandleBreakpoint forwards to the runtime debugger's HandleBreakpoint,
// which emits a trace event when loc has a breakpoint and tracing is on.
// It does not pause execution.
func (b *Bridge) HandleBreakpoint(loc Location) {
	b.debugger.HandleBreakpoint(loc.key())
}

// IsPaused reports whether the underlying runtime debugger is currently
// paused at a breakpoint or step point.
func (b *Bridge) IsPaused() bool {
	return b.debugger.IsPaused()
}

// CallStack forwards to the runtime debugger's call-stack introspection,
// used to populate the kernel's DebugFrameStack (spec.md §3).
func (b *Bridge) CallStack(env core.Evaluator) []string {
	return b.debugger.GetCallStack(env)
}

// ResumeExecution releases a paused debugger back to normal execution.
func (b *Bridge) ResumeExecution() {
	b.debugger.ResumeExecution()
}
