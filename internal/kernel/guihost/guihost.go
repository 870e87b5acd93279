// Package guihost implements the GuiHost capability (spec.md C9, §4.7,
// §9 "Polymorphic GuiHost"): {run(callback, period), quit()}. BusyLoopHost
// is the degenerate variant used when no GUI toolkit is selected; TeaGuiHost
// (teahost.go) pumps a real bubbletea program as the foreign event loop.
package guihost

import (
	"sync/atomic"
	"time"
)

// BusyLoopHost is the no-GUI-selected GuiHost: a plain ticker loop that
// invokes the REPL callback at least every period, exactly the degenerate
// case spec.md §4.7 calls out ("a degenerate busy-sleep loop when no GUI is
// selected").
type BusyLoopHost struct {
	quitRequested atomic.Bool
}

// NewBusyLoopHost builds a GuiHost with no backing event loop.
func NewBusyLoopHost() *BusyLoopHost { return &BusyLoopHost{} }

// Run ticks at period until tick returns false or Quit is called.
func (h *BusyLoopHost) Run(period time.Duration, tick func() (keepRunning bool)) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for range ticker.C {
		if h.quitRequested.Load() {
			return nil
		}
		if !tick() {
			return nil
		}
	}
	return nil
}

// Quit asks Run to stop at its next tick.
func (h *BusyLoopHost) Quit() { h.quitRequested.Store(true) }
