// Package execenv adapts *eval.Evaluator — the Kestrel language runtime's
// evaluation engine — to core.Evaluator, the interface the kernel's Executor
// (spec.md C6) drives a user namespace through. The runtime predates the
// kernel layer and spells its entry points Do_Next/Do_Blk with no notion of
// redirectable I/O; Env supplies both without touching the runtime itself.
package execenv

import (
	"io"
	"os"

	"github.com/kestrel-lang/kestrel/internal/core"
	"github.com/kestrel-lang/kestrel/internal/eval"
)

// Env wraps an *eval.Evaluator so it satisfies core.Evaluator. All frame and
// lookup operations forward straight through; DoNext/DoBlock rename across
// the naming gap, and the Set/Get*Writer/Reader family stores the three
// streams the Evaluator itself has no field for.
type Env struct {
	*eval.Evaluator

	out io.Writer
	err io.Writer
	in  io.Reader
}

// New wraps ev with stdio as the default three streams, matching what a
// freshly started interpreter would inherit from its process.
func New(ev *eval.Evaluator) *Env {
	return &Env{Evaluator: ev, out: os.Stdout, err: os.Stderr, in: os.Stdin}
}

func (e *Env) DoNext(val core.Value) (core.Value, error) { return e.Evaluator.Do_Next(val) }

func (e *Env) DoBlock(vals []core.Value) (core.Value, error) { return e.Evaluator.Do_Blk(vals) }

func (e *Env) SetOutputWriter(w io.Writer) { e.out = w }
func (e *Env) GetOutputWriter() io.Writer  { return e.out }

func (e *Env) SetErrorWriter(w io.Writer) { e.err = w }
func (e *Env) GetErrorWriter() io.Writer  { return e.err }

func (e *Env) SetInputReader(r io.Reader) { e.in = r }
func (e *Env) GetInputReader() io.Reader  { return e.in }

var _ core.Evaluator = (*Env)(nil)
