// Package magician implements the Magician (spec.md C9, GLOSSARY
// "Magician"): the magic-command pre-processor the REPLLoop runs every
// command-channel line through before dispatching it to the Compiler
// (spec.md §4.7 item 5). Kestrel ships exactly one magic command, carried
// forward from the teacher's REPL-only '?' shortcut (SPEC_FULL.md
// "SUPPLEMENTED FEATURES").
package magician

import (
	"strings"

	"github.com/kestrel-lang/kestrel/internal/core"
	"github.com/kestrel-lang/kestrel/internal/native"
	"github.com/kestrel-lang/kestrel/internal/value"
)

// Magician rewrites magic commands ahead of ordinary compilation.
type Magician struct {
	env core.Evaluator
}

// New builds a Magician bound to the evaluation environment '?' ultimately
// queries for the registered native categories.
func New(env core.Evaluator) *Magician {
	return &Magician{env: env}
}

// Rewrite implements adapters.Magician: a bare "?" is fully handled here
// (it calls native.Help directly and returns handled=true, consumed=true)
// rather than rewritten into Kestrel source, since it has no Kestrel-level
// syntax of its own — exactly as the teacher's handleHelpShortcut bypassed
// the normal evaluator path. Everything else passes through unrecognized.
func (m *Magician) Rewrite(line string) (rewritten string, consumed bool, handled bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed != "?" {
		return "", false, false
	}

	result, err := native.Help([]core.Value{}, map[string]core.Value{}, m.env)
	if err != nil {
		return "", true, true
	}
	if result != nil && result.GetType() != core.ValueType(value.TypeNone) {
		_, _ = m.env.GetOutputWriter().Write([]byte(result.String() + "\n"))
	}
	return "", true, true
}
