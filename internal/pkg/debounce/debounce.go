// Package debounce guards actions that must not run concurrently, such as
// a save button wired to a PUT. A Guard admits one invocation at a time
// and re-arms only after a fixed delay following completion, so a rapid
// double click issues exactly one request.
package debounce

import (
	"sync"
	"time"
)

const DefaultDelay = 300 * time.Millisecond

// Guard rejects invocations while a prior one is in flight or cooling down.
type Guard struct {
	delay time.Duration

	mu   sync.Mutex
	busy bool
}

// NewGuard creates a Guard with the given re-arm delay.
// A non-positive delay falls back to DefaultDelay.
func NewGuard(delay time.Duration) *Guard {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Guard{delay: delay}
}

// Do runs fn unless the guard is held. The first return value reports
// whether fn ran; when it is false the call was a no-op and err is nil.
// The guard releases delay after fn returns, not when fn starts.
func (g *Guard) Do(fn func() error) (bool, error) {
	g.mu.Lock()
	if g.busy {
		g.mu.Unlock()
		return false, nil
	}
	g.busy = true
	g.mu.Unlock()

	// Scheduled in a defer so the guard still releases if fn panics.
	defer time.AfterFunc(g.delay, func() {
		g.mu.Lock()
		g.busy = false
		g.mu.Unlock()
	})

	return true, fn()
}
