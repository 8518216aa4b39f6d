// Package suppress implements the process-global, time-bounded "ignore this
// path" set shared between mutating tools and the folder watcher/queue, per
// spec.md §4.10. Grounded on DESIGN NOTES §9's "time-based ignore map ->
// {path -> deadline}" guidance; entries are swept lazily on probe rather than
// via one timer per entry.
package suppress

import (
	"sync"
	"time"
)

// Window is how long a mark remains authoritative, per spec.md's invariant
// ("at most 10s from its last refresh").
const Window = 10 * time.Second

// Set is a process-global ignore map. The zero value is not usable; use New.
type Set struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// New constructs an empty Set.
func New() *Set {
	return &Set{expires: make(map[string]time.Time), now: time.Now}
}

// NewWithClock constructs a Set using a caller-supplied clock, for tests that
// need to simulate the passage of time deterministically.
func NewWithClock(now func() time.Time) *Set {
	return &Set{expires: make(map[string]time.Time), now: now}
}

// Mark records that path was just mutated: is_ignored(path) reports true for
// Window from now. Calling Mark again before expiry replaces the deadline
// (restarts the window) rather than extending it additively.
func (s *Set) Mark(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[path] = s.now().Add(Window)
}

// IsIgnored reports whether path is currently within its ignore window. An
// expired entry is dropped as a side effect of the probe.
func (s *Set) IsIgnored(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.expires[path]
	if !ok {
		return false
	}
	if s.now().After(deadline) {
		delete(s.expires, path)
		return false
	}
	return true
}

// Sweep drops every expired entry. Callers may run this periodically to
// bound map growth on folders with many renames and few subsequent probes;
// it is not required for correctness since IsIgnored self-cleans.
func (s *Set) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for p, deadline := range s.expires {
		if now.After(deadline) {
			delete(s.expires, p)
		}
	}
}
