// Package promptmodel implements the PromptModel (spec.md C5): computes the
// current PS1/PS2 string from interpreter state. Prompts are a pure function
// of State, re-evaluated each time one is emitted (spec.md §4.6) — nothing
// here is cached, since a debug frame name or the execution counter can
// change between two emissions.
package promptmodel

import "fmt"

// Mode selects which prompt family is active.
type Mode int

const (
	// Plain is the default "ready to read a top-level statement" prompt.
	Plain Mode = iota
	// ExtensionShell uses the execution-counter "In [N]: " style prompt.
	ExtensionShell
	// Debug uses the "(frame_name)>>> " style prompt of a paused session.
	Debug
)

// State is everything PS1/PS2 depend on (spec.md §4.6).
type State struct {
	Mode            Mode
	DebugFrameName  string // only meaningful when Mode == Debug
	ExecutionCount  int    // only meaningful when Mode == ExtensionShell
	MoreExpected    bool
}

// PS1 returns the primary prompt for the given state.
func PS1(s State) string {
	switch s.Mode {
	case Debug:
		return fmt.Sprintf("(%s)>>> ", s.DebugFrameName)
	case ExtensionShell:
		return fmt.Sprintf("In [%d]: ", s.ExecutionCount)
	default:
		return ">>> "
	}
}

// PS2 returns the continuation prompt for the given state.
func PS2(s State) string {
	switch s.Mode {
	case Debug:
		return fmt.Sprintf("(%s)... ", s.DebugFrameName)
	case ExtensionShell:
		return indentFor(s.ExecutionCount)
	default:
		return "... "
	}
}

// Current returns PS1 or PS2 depending on MoreExpected, matching the
// REPLLoop's "emit PS1 or PS2 per more_expected" step (spec.md §4.7 item 2).
func Current(s State) string {
	if s.MoreExpected {
		return PS2(s)
	}
	return PS1(s)
}

// indentFor mirrors an extension shell's habit of right-aligning the
// continuation marker under "In [N]: " rather than using a fixed-width
// "... " regardless of N's digit count.
func indentFor(n int) string {
	width := len(fmt.Sprintf("In [%d]: ", n))
	pad := make([]byte, width-5)
	for i := range pad {
		pad[i] = ' '
	}
	return string(pad) + "...: "
}
