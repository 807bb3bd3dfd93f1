package session

import "sync"

// Locks serializes mutations per session id. Every operation that
// changes a session (message append, status transition) must hold the
// session's lock so that two transitions can never both succeed
// against the same stale status.
type Locks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewLocks creates an empty lock table
func NewLocks() *Locks {
	return &Locks{entries: make(map[string]*lockEntry)}
}

// Acquire blocks until the session's lock is held and returns the
// release function. Entries are dropped once unreferenced so the table
// does not grow with the session history.
func (l *Locks) Acquire(sessionID string) func() {
	l.mu.Lock()
	e, ok := l.entries[sessionID]
	if !ok {
		e = &lockEntry{}
		l.entries[sessionID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, sessionID)
		}
		l.mu.Unlock()
	}
}
