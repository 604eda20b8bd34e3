// Package signal implements per-browser update counters that tell dependent
// views to re-fetch after a successful create.
package signal

import (
	"sort"
	"sync"
)

// Kind names one update signal.
type Kind string

const (
	Words       Kind = "words"
	Meanings    Kind = "meanings"
	Reflections Kind = "reflections"
)

// Kinds lists every known signal in a stable order.
func Kinds() []Kind {
	return []Kind{Words, Meanings, Reflections}
}

// Valid reports whether k is a known signal.
func (k Kind) Valid() bool {
	switch k {
	case Words, Meanings, Reflections:
		return true
	default:
		return false
	}
}

// Event returns the client-side event name raised when k is bumped.
func (k Kind) Event() string {
	if !k.Valid() {
		return ""
	}
	return "lingo-" + string(k) + "-updated"
}

type listener struct {
	id int
	fn func(uint64)
}

// Signals holds the counters of one browser session.
type Signals struct {
	mu        sync.Mutex
	values    map[Kind]uint64
	nextID    int
	listeners map[Kind][]listener
}

// New returns signals with every counter at zero.
func New() *Signals {
	return &Signals{
		values:    make(map[Kind]uint64, 3),
		listeners: make(map[Kind][]listener, 3),
	}
}

// Value returns the current counter for k.
func (s *Signals) Value(k Kind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[k]
}

// Snapshot returns all counters.
func (s *Signals) Snapshot() map[Kind]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Kind]uint64, len(s.values))
	for _, k := range Kinds() {
		out[k] = s.values[k]
	}
	return out
}

// Bump increments k, notifies its listeners, and returns the new value.
// Unknown kinds are ignored and return 0.
func (s *Signals) Bump(k Kind) uint64 {
	if !k.Valid() {
		return 0
	}
	s.mu.Lock()
	s.values[k]++
	value := s.values[k]
	listeners := append([]listener(nil), s.listeners[k]...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(value)
	}
	return value
}

// Subscribe calls fn with the current value of k right away and again after
// every bump. The returned function removes the listener.
func (s *Signals) Subscribe(k Kind, fn func(uint64)) (unsubscribe func()) {
	if !k.Valid() || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners[k] = append(s.listeners[k], listener{id: id, fn: fn})
	current := s.values[k]
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			listeners := s.listeners[k]
			for i, l := range listeners {
				if l.id == id {
					s.listeners[k] = append(listeners[:i:i], listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// Events maps bumped kinds to their client-side event names, sorted and
// de-duplicated.
func Events(kinds []Kind) []string {
	seen := make(map[string]struct{}, len(kinds))
	events := make([]string, 0, len(kinds))
	for _, k := range kinds {
		event := k.Event()
		if event == "" {
			continue
		}
		if _, ok := seen[event]; ok {
			continue
		}
		seen[event] = struct{}{}
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}
