package traceback

import (
	"strings"
	"testing"

	"github.com/kestrel-lang/kestrel/internal/kernel/source"
	"github.com/kestrel-lang/kestrel/internal/verror"
)

func TestRewriteNilError(t *testing.T) {
	got := Rewrite(nil, source.NewOriginTag("<input>", 0), source.NewRegistry(), source.UnitID{}, false, false)
	if got.Text != "" {
		t.Fatalf("expected empty text for nil error, got %q", got.Text)
	}
	if !got.Cacheable {
		t.Fatal("nil error should be cacheable")
	}
}

func TestRewriteNonVerror(t *testing.T) {
	got := Rewrite(&signalStub{}, source.NewOriginTag("<input>", 0), source.NewRegistry(), source.UnitID{}, false, false)
	if got.Text != "stub" {
		t.Fatalf("expected degraded single-line text, got %q", got.Text)
	}
}

func TestRewriteLocatesStoredSource(t *testing.T) {
	reg := source.NewRegistry()
	origin := source.NewOriginTag("script.k", 0)
	id := reg.NextID(origin)
	reg.Store(id, "x: 1\ny: x / 0\n")

	verr := verror.NewError(verror.ErrMath, verror.ErrIDDivByZero, [3]string{})
	verr.Near = "y: x / 0"
	verr.Where = []string{"<module>"}

	got := Rewrite(verr, origin, reg, id, false, false)
	if len(got.Frames) != 2 {
		t.Fatalf("expected 2 frames (Where entry + <module>), got %d", len(got.Frames))
	}
	if got.Frames[0].Line != 2 {
		t.Fatalf("expected line 2, got %d", got.Frames[0].Line)
	}
	if !strings.Contains(got.Text, "Traceback") {
		t.Fatalf("expected traceback header, got %q", got.Text)
	}
}

func TestRewriteDropsInnermostFrame(t *testing.T) {
	reg := source.NewRegistry()
	origin := source.NewOriginTag("<cell>", 0)
	id := reg.NextID(origin)
	reg.Store(id, "boom")

	verr := verror.NewError(verror.ErrScript, verror.ErrIDNoValue, [3]string{})
	verr.Near = "boom"
	verr.Where = []string{"exec", "<module>"}

	got := Rewrite(verr, origin, reg, id, true, false)
	var names []string
	for _, f := range got.Frames {
		names = append(names, f.FuncName)
	}
	if len(names) != 2 || names[0] != "<module>" {
		t.Fatalf("expected innermost exec frame dropped, frames: %v", names)
	}
}

func TestRewriteOffsetAddsToLine(t *testing.T) {
	reg := source.NewRegistry()
	origin := source.NewOriginTag("notebook.k", 5)
	id := reg.NextID(origin)
	reg.Store(id, "a\nb\nboom\n")

	verr := verror.NewError(verror.ErrScript, verror.ErrIDNoValue, [3]string{})
	verr.Near = "boom"

	got := Rewrite(verr, origin, reg, id, false, false)
	if got.Frames[0].Line != 8 {
		t.Fatalf("expected line 3+5=8, got %d", got.Frames[0].Line)
	}
	if got.Frames[0].Filename != "notebook.k" {
		t.Fatalf("expected filename without offset suffix, got %q", got.Frames[0].Filename)
	}
}

func TestRewritePausedIsNotCacheable(t *testing.T) {
	reg := source.NewRegistry()
	origin := source.NewOriginTag("<cell>", 0)
	id := reg.NextID(origin)
	reg.Store(id, "boom")

	verr := verror.NewError(verror.ErrScript, verror.ErrIDNoValue, [3]string{})
	verr.Near = "boom"

	got := Rewrite(verr, origin, reg, id, false, true)
	if got.Cacheable {
		t.Fatal("expected a result produced while paused to not be cacheable")
	}

	got = Rewrite(nil, origin, reg, id, false, true)
	if got.Cacheable {
		t.Fatal("expected nil-error result while paused to not be cacheable")
	}
}

func TestRewriteSyntaxError(t *testing.T) {
	got := RewriteSyntaxError("<input>", 1, "@", "unexpected character")
	if !strings.Contains(got, "SyntaxError: unexpected character") {
		t.Fatalf("unexpected text: %q", got)
	}
	if !strings.Contains(got, "<input>") {
		t.Fatalf("expected filename in output: %q", got)
	}
}

type signalStub struct{}

func (signalStub) Error() string { return "stub" }
