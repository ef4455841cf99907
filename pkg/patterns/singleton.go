package patterns

import "sync"

// Singleton lazily creates a single value shared by every caller.
type Singleton[T any] struct {
	once  sync.Once
	value T
	init  func() T
}

// NewSingleton creates a Singleton that builds its value with init on first use.
func NewSingleton[T any](init func() T) *Singleton[T] {
	return &Singleton[T]{init: init}
}

// Get returns the shared value, creating it on the first call.
func (s *Singleton[T]) Get() T {
	s.once.Do(func() {
		s.value = s.init()
	})
	return s.value
}
