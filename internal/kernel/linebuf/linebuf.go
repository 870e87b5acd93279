// Package linebuf implements the LineBuffer (spec.md C2): the ordered
// sequence of source fragments that form one incomplete compound statement
// submitted a line at a time over the interactive channel.
package linebuf

import "strings"

// Buffer accumulates partial multi-line input. Invariants (spec.md §3):
// empty whenever the interpreter awaits a fresh top-level statement;
// becomes empty whenever the most recent compile returned complete-or-
// invalid; grows monotonically otherwise.
type Buffer struct {
	lines []string
}

// Append adds one received line to the buffer.
func (b *Buffer) Append(line string) {
	b.lines = append(b.lines, line)
}

// Joined returns the buffer's contents joined with '\n', ready to hand to
// the Compiler in single mode (spec.md §4.2).
func (b *Buffer) Joined() string {
	return strings.Join(b.lines, "\n")
}

// Clear empties the buffer. The REPLLoop empties it at those points
// (after a complete or invalid compile, and on a KeyboardInterrupt) by
// assigning a zero Buffer rather than by calling Clear.
func (b *Buffer) Clear() {
	b.lines = nil
}

// Empty reports whether the buffer currently holds no fragments.
func (b *Buffer) Empty() bool {
	return len(b.lines) == 0
}
