// Package control lets code outside the dashboard change its end date.
//
// A Handle is installed by the running dashboard and removed when it exits;
// anything holding the Handle (the control-file watcher, tests) can push a
// new end date through it while a dashboard is mounted.
package control

import "sync"

// Sink receives end dates pushed through a Handle.
type Sink func(date string)

// Handle forwards end-date updates to at most one installed sink.
type Handle struct {
	mu   sync.RWMutex
	sink Sink
}

// NewHandle returns a Handle with no sink installed.
func NewHandle() *Handle {
	return &Handle{}
}

// Install sets sink as the receiver, replacing any previous one.
func (h *Handle) Install(sink Sink) {
	h.mu.Lock()
	h.sink = sink
	h.mu.Unlock()
}

// Uninstall removes the current sink. Later updates are dropped.
func (h *Handle) Uninstall() {
	h.mu.Lock()
	h.sink = nil
	h.mu.Unlock()
}

// Installed reports whether a sink is currently installed.
func (h *Handle) Installed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sink != nil
}

// SetEndDate forwards d to the installed sink. It reports false, doing
// nothing, when no dashboard is mounted.
func (h *Handle) SetEndDate(d string) bool {
	h.mu.RLock()
	sink := h.sink
	h.mu.RUnlock()

	if sink == nil {
		return false
	}
	sink(d)
	return true
}
