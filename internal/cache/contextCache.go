package cache

import (
	"sync"
	"time"
)

// Slot is a single-value cache with a TTL. Get returns nil once the entry
// expires; Set overwrites unconditionally.
type Slot[T any] struct {
	mu      sync.Mutex
	value   *T
	setAt   time.Time
	ttl     time.Duration
	nowFunc func() time.Time
}

func NewSlot[T any](ttl time.Duration) *Slot[T] {
	return &Slot[T]{ttl: ttl, nowFunc: time.Now}
}

// Get returns the cached value, or nil when the slot is empty or stale.
func (s *Slot[T]) Get() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.value == nil {
		return nil
	}
	if s.nowFunc().Sub(s.setAt) > s.ttl {
		s.value = nil
		return nil
	}
	return s.value
}

func (s *Slot[T]) Set(v *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.setAt = s.nowFunc()
}

func (s *Slot[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
}
