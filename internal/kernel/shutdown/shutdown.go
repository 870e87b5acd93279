// Package shutdown implements the ShutdownCoordinator (spec.md C8, §4.9):
// three independent loops — GuiHost, REPLLoop, and the debug-interaction
// loop — can each observe an exit condition first. Whoever sees it first
// wins; every later observation is ignored so the original exit code and
// cause survive to the topmost frame.
package shutdown

import "sync"

// Intent is the captured exit condition: a code plus the error that caused
// it, if any (spec.md §4.9 "if the event loop propagated an exception,
// raise that; otherwise raise a fresh generic exit").
type Intent struct {
	Code  int
	Cause error
}

// Coordinator holds at most one Intent, set by whichever loop notices the
// exit condition first.
type Coordinator struct {
	mu     sync.Mutex
	intent *Intent
}

// New builds an empty Coordinator.
func New() *Coordinator {
	return &Coordinator{}
}

// Capture records intent if none has been recorded yet. Returns true when
// this call was the one that won the race.
func (c *Coordinator) Capture(intent Intent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.intent != nil {
		return false
	}
	c.intent = &intent
	return true
}

// Intent reports the captured exit condition, if any.
func (c *Coordinator) Intent() (Intent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.intent == nil {
		return Intent{}, false
	}
	return *c.intent, true
}

// Resolve implements the topmost-frame rule of spec.md §4.9: if an Intent
// was captured, use it; otherwise fall back to cause (the exception that
// unwound past every loop), or a fresh generic exit (code 1) if even that
// is nil.
func (c *Coordinator) Resolve(cause error) Intent {
	if intent, ok := c.Intent(); ok {
		return intent
	}
	if cause != nil {
		return Intent{Code: 1, Cause: cause}
	}
	return Intent{Code: 1}
}
