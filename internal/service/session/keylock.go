package session

import "sync"

// KeyedLock serializes message processing per session key while letting
// different sessions proceed concurrently. Concurrent messages for one key
// would otherwise race on position and answer mutation.
type KeyedLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedLock returns an empty keyed lock.
func NewKeyedLock() *KeyedLock {
	return &KeyedLock{locks: make(map[string]*lockEntry)}
}

// Acquire blocks until the key's lock is held and returns the release
// function. Entries are reference counted so the map does not grow with
// finished sessions.
func (l *KeyedLock) Acquire(key string) func() {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &lockEntry{}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
