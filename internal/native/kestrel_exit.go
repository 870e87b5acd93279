package native

import (
	"github.com/kestrel-lang/kestrel/internal/core"
	"github.com/kestrel-lang/kestrel/internal/kernel/signal"
	"github.com/kestrel-lang/kestrel/internal/value"
)

// Quit implements the 'quit'/'exit' native (SPEC_FULL.md §9): requests kernel
// shutdown by raising signal.Exit through the ordinary error-return path,
// the same way break/continue raise verror sentinels for loop control. The
// Executor type-switches on signal.Exit instead of formatting a traceback.
func Quit(args []core.Value, refValues map[string]core.Value, eval core.Evaluator) (core.Value, error) {
	if len(args) > 1 {
		return value.NewNoneVal(), arityError("quit", 1, len(args))
	}

	code := 0
	if len(args) == 1 {
		n, ok := value.AsIntValue(args[0])
		if !ok {
			return value.NewNoneVal(), typeError("quit", "integer!", args[0])
		}
		code = int(n)
	}

	return value.NewNoneVal(), &signal.Exit{Code: code}
}
