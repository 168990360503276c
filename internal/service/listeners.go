package service

import (
	"sync"
)

// listeners is a registry of callbacks kept in registration order. Every
// registration returns a handle that removes exactly that callback.
type listeners[T any] struct {
	mu      sync.Mutex
	next    uint64
	entries []listener[T]
}

type listener[T any] struct {
	id uint64
	fn T
}

// add registers fn and returns its removal handle. Calling the handle more
// than once is a no-op.
func (l *listeners[T]) add(fn T) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	id := l.next
	l.entries = append(l.entries, listener[T]{id: id, fn: fn})

	return func() { l.remove(id) }
}

func (l *listeners[T]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

// snapshot returns the callbacks registered right now, so they can be
// invoked without holding the lock.
func (l *listeners[T]) snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]T, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}

func (l *listeners[T]) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
