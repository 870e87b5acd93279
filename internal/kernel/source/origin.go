// Package source implements the SourceRegistry (spec.md C1): the map from
// compiled-unit identity to the exact text that produced it, used by the
// traceback rewriter to show editor-accurate source lines even after the
// editor buffer has moved on.
package source

import (
	"fmt"
	"strconv"
	"strings"
)

// OriginTag is the synthetic filename tag a CompiledUnit carries:
// "BASENAME" or "BASENAME+OFFSET" where OFFSET is the 0-based line at
// which the submitted slice began in the editor buffer (spec.md §3,
// §6 "Origin-tag format").
type OriginTag string

// NewOriginTag builds the tag per spec.md §4.3 step 3: "filename+line_offset
// when line_offset > 0, else filename".
func NewOriginTag(filename string, lineOffset int) OriginTag {
	if lineOffset > 0 {
		return OriginTag(fmt.Sprintf("%s+%d", filename, lineOffset))
	}
	return OriginTag(filename)
}

// Split recovers (editor_filename, line_offset) by splitting on the LAST
// '+', per the persistent contract in spec.md §6. A filename that itself
// contains '+' is therefore still handled correctly; an offset that fails
// to parse as a non-negative integer is treated as absent.
func (t OriginTag) Split() (filename string, lineOffset int) {
	s := string(t)
	idx := strings.LastIndex(s, "+")
	if idx < 0 {
		return s, 0
	}
	offsetStr := s[idx+1:]
	n, err := strconv.Atoi(offsetStr)
	if err != nil || n < 0 {
		return s, 0
	}
	return s[:idx], n
}

// Filename is a convenience accessor for Split's first return value.
func (t OriginTag) Filename() string {
	f, _ := t.Split()
	return f
}

// Offset is a convenience accessor for Split's second return value.
func (t OriginTag) Offset() int {
	_, o := t.Split()
	return o
}

func (t OriginTag) String() string { return string(t) }

// LocateLine returns the 1-based line on which the first occurrence of
// needle begins within text, defaulting to line 1 when needle is empty or
// not found. Both the Compiler (to line-number a syntax error) and the
// TracebackRewriter (to line-number a runtime exception) use this to
// recover a line number from a verror.Error's Near snippet, since the
// Kestrel runtime does not carry per-value source positions.
func LocateLine(text, needle string) int {
	if needle == "" {
		return 1
	}
	idx := strings.Index(text, needle)
	if idx < 0 {
		return 1
	}
	return strings.Count(text[:idx], "\n") + 1
}
