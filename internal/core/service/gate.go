package service

import (
	"sync"

	"github.com/labelforge/labelforge-go/internal/core/domain"
)

// GateDecision is the gate's verdict for an authenticated surface.
type GateDecision int

const (
	// GateChecking means the session is still hydrating; show nothing yet.
	GateChecking GateDecision = iota
	// GateDenied means the session resolved unauthenticated.
	GateDenied
	// GateGranted means the caller may render the protected surface.
	GateGranted
)

func (d GateDecision) String() string {
	switch d {
	case GateChecking:
		return "checking"
	case GateDenied:
		return "denied"
	case GateGranted:
		return "granted"
	default:
		return "unknown"
	}
}

// SessionSource is the slice of Session the gate observes.
type SessionSource interface {
	Snapshot() domain.SessionState
}

// Gate guards access to surfaces that require a logged-in user. While the
// session is hydrating it answers GateChecking; once resolved it answers
// GateDenied or GateGranted. The deny callback (typically a redirect to the
// login screen) fires only on the transition into the denied state, never
// on repeated checks, so a caller polling the gate cannot loop redirects.
// A later successful login re-arms the callback.
type Gate struct {
	source SessionSource
	onDeny func()

	mu     sync.Mutex
	denied bool
}

// NewGate creates a gate over the given session. onDeny may be nil.
func NewGate(source SessionSource, onDeny func()) *Gate {
	return &Gate{source: source, onDeny: onDeny}
}

// Decide inspects the current session state and returns the verdict,
// firing the deny callback at most once per denied episode.
func (g *Gate) Decide() GateDecision {
	state := g.source.Snapshot()
	if state.Loading {
		return GateChecking
	}

	if !state.Authenticated {
		g.mu.Lock()
		fire := !g.denied
		g.denied = true
		g.mu.Unlock()

		if fire && g.onDeny != nil {
			g.onDeny()
		}
		return GateDenied
	}

	g.mu.Lock()
	g.denied = false
	g.mu.Unlock()
	return GateGranted
}
