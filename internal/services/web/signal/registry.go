package signal

import "sync"

// Registry keeps the signals of every live browser session in memory.
// Counters are not persisted and restart at zero with the process.
type Registry struct {
	mu      sync.Mutex
	signals map[string]*Signals
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{signals: make(map[string]*Signals)}
}

// For returns the signals of sessionID, creating them on first use.
func (r *Registry) For(sessionID string) *Signals {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.signals[sessionID]
	if !ok {
		s = New()
		r.signals[sessionID] = s
	}
	return s
}

// Forget drops the signals of sessionID.
func (r *Registry) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.signals, sessionID)
}

// Len returns how many sessions are tracked.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.signals)
}
