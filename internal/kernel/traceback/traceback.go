// Package traceback implements the TracebackRewriter (spec.md C4): it turns
// a raw evaluation error into the frame list and source-accurate text the
// REPLLoop prints, rewriting synthetic BASENAME+OFFSET origin tags back into
// (filename, line) pairs a human typed.
package traceback

import (
	"fmt"
	"strings"

	"github.com/kestrel-lang/kestrel/internal/kernel/source"
	"github.com/kestrel-lang/kestrel/internal/verror"
)

// Frame is one rewritten stack entry, ready for display.
type Frame struct {
	FuncName   string
	Filename   string
	Line       int
	SourceLine string
}

// Rewritten is the TracebackRewriter's output: the frame chain plus the
// fully formatted text the REPLLoop writes to the error channel.
type Rewritten struct {
	Frames []Frame
	Text   string
	// Cacheable reports whether this result may replace the kernel's last
	// exception. It is false while the kernel is paused in the debugger
	// (spec.md §4.5: "cached as last exception unless the kernel is
	// currently paused in the debugger") — a pause is not itself a failure
	// and must not clobber the exception the user is actively inspecting.
	Cacheable bool
}

// Rewrite builds a Rewritten from err, which compiled from the unit tagged
// origin and registered under id in registry (if it was ever stored — single
// interactive lines never are). dropInnermost discards the kernel's own
// exec/eval frame, the one stack entry a user never typed (spec.md §4.4
// item 1, for block submissions executed as one compiled unit). paused is
// whether the kernel is currently stopped in the debugger, which gates
// Cacheable (spec.md §4.5).
func Rewrite(err error, origin source.OriginTag, registry *source.Registry, id source.UnitID, dropInnermost bool, paused bool) Rewritten {
	if err == nil {
		return Rewritten{Cacheable: !paused}
	}

	verr, ok := err.(*verror.Error)
	if !ok {
		return Rewritten{
			Text:      err.Error(),
			Cacheable: !paused,
		}
	}

	sourceText, _ := registry.Lookup(id)

	where := verr.Where
	if dropInnermost && len(where) > 0 {
		where = where[1:]
	}

	filename, offset := origin.Split()
	line := source.LocateLine(sourceText, verr.Near) + offset

	frames := make([]Frame, 0, len(where)+1)
	for _, fn := range where {
		frames = append(frames, Frame{FuncName: fn, Filename: filename, Line: line})
	}

	var sourceLine string
	if sourceText != "" {
		lines := strings.Split(sourceText, "\n")
		idx := line - offset - 1
		if idx >= 0 && idx < len(lines) {
			sourceLine = lines[idx]
		}
	}
	frames = append(frames, Frame{
		FuncName:   "<module>",
		Filename:   filename,
		Line:       line,
		SourceLine: sourceLine,
	})

	return Rewritten{
		Frames:    frames,
		Text:      format(frames, verr),
		Cacheable: !paused,
	}
}

// format lays the frames out the way the REPLLoop prints them: a header
// only when there is at least one frame to show, each frame as a two-line
// "File ..., line N, in NAME" plus source text, and the error's own message
// last (spec.md §4.4, §4.5).
func format(frames []Frame, verr *verror.Error) string {
	var sb strings.Builder
	if len(frames) > 0 {
		sb.WriteString("Traceback (most recent call last):\n")
		for _, f := range frames {
			fmt.Fprintf(&sb, "  File %q, line %d, in %s\n", f.Filename, f.Line, f.FuncName)
			if f.SourceLine != "" {
				fmt.Fprintf(&sb, "    %s\n", strings.TrimSpace(f.SourceLine))
			}
		}
	}
	fmt.Fprintf(&sb, "%s error (%d): %s", verr.Category, verr.Code, verr.Message)
	return sb.String()
}

// RewriteSyntaxError formats an Invalid compile outcome's SyntaxError on its
// own path, separate from runtime exceptions (spec.md §4.5): there is no
// call stack to rewrite, just a single source location.
func RewriteSyntaxError(filename string, line int, text, message string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  File %q, line %d\n", filename, line)
	if text != "" {
		fmt.Fprintf(&sb, "    %s\n", strings.TrimSpace(text))
	}
	fmt.Fprintf(&sb, "SyntaxError: %s", message)
	return sb.String()
}
