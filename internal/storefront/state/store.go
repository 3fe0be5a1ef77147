// Package state provides a small publish-subscribe container for values that
// several parts of the storefront read and mutate.
package state

import "sync"

// Store holds a value of type T and notifies subscribers whenever it changes.
// Values are treated as immutable: Update receives the current value and must
// return a new one instead of modifying it in place.
type Store[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[int]func(T)
	next  int
}

func New[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Snapshot returns the current value.
func (s *Store[T]) Snapshot() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := s.listeners()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update applies fn to the current value under the write lock, stores the
// result and notifies subscribers with it.
func (s *Store[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	subs := s.listeners()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
	return v
}

// Subscribe registers fn to be called after every change. The returned func
// removes the subscription; calling it more than once is harmless.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// listeners must be called with s.mu held.
func (s *Store[T]) listeners() []func(T) {
	out := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
