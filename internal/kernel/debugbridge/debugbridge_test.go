package debugbridge

import (
	"testing"

	"github.com/kestrel-lang/kestrel/internal/debug"
)

func newTestDebugger() *debug.Debugger {
	debug.InitDebugger()
	return debug.GlobalDebugger
}

func TestSetAndRemoveBreakpoint(t *testing.T) {
	b := New(newTestDebugger())
	loc := Location{Filename: "script.k", Line: 12}

	id := b.SetBreakpoint(loc)
	if id == 0 {
		t.Fatal("expected non-zero breakpoint ID")
	}
	if !b.HasBreakpoint(loc) {
		t.Fatal("expected breakpoint to be active")
	}
	if !b.RemoveBreakpoint(loc) {
		t.Fatal("expected removal to report success")
	}
	if b.HasBreakpoint(loc) {
		t.Fatal("expected breakpoint cleared")
	}
}

func TestSetBreakpointIsIdempotent(t *testing.T) {
	b := New(newTestDebugger())
	loc := Location{Filename: "script.k", Line: 5}
	first := b.SetBreakpoint(loc)
	second := b.SetBreakpoint(loc)
	if first != second {
		t.Fatalf("expected same ID on repeat set, got %d and %d", first, second)
	}
}

func TestLocationsSortedForReply(t *testing.T) {
	b := New(newTestDebugger())
	b.SetBreakpoint(Location{Filename: "b.k", Line: 1})
	b.SetBreakpoint(Location{Filename: "a.k", Line: 9})
	b.SetBreakpoint(Location{Filename: "a.k", Line: 2})

	locs := b.Locations()
	if len(locs) != 3 {
		t.Fatalf("expected 3 locations, got %d", len(locs))
	}
	if locs[0].Filename != "a.k" || locs[0].Line != 2 {
		t.Fatalf("unexpected first location: %+v", locs[0])
	}
	if locs[1].Filename != "a.k" || locs[1].Line != 9 {
		t.Fatalf("unexpected second location: %+v", locs[1])
	}
	if locs[2].Filename != "b.k" {
		t.Fatalf("unexpected third location: %+v", locs[2])
	}
}

func TestRemoveByID(t *testing.T) {
	b := New(newTestDebugger())
	loc := Location{Filename: "script.k", Line: 3}
	id := b.SetBreakpoint(loc)
	if !b.RemoveByID(int64(id)) {
		t.Fatal("expected RemoveByID to succeed")
	}
	if b.HasBreakpoint(loc) {
		t.Fatal("expected breakpoint cleared via ID removal")
	}
}
