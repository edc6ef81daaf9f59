package cache

import (
	"testing"
	"time"
)

func TestSlot(t *testing.T) {
	t.Run("empty slot returns nil", func(t *testing.T) {
		slot := NewSlot[int](time.Minute)
		if got := slot.Get(); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("set then get returns same value", func(t *testing.T) {
		slot := NewSlot[int](time.Minute)
		v := 7
		slot.Set(&v)
		got := slot.Get()
		if got == nil || *got != 7 {
			t.Errorf("expected 7, got %v", got)
		}
	})

	t.Run("expired entry is dropped", func(t *testing.T) {
		slot := NewSlot[int](10 * time.Millisecond)
		v := 7
		slot.Set(&v)
		time.Sleep(25 * time.Millisecond)
		if got := slot.Get(); got != nil {
			t.Errorf("expected nil after TTL, got %v", got)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		slot := NewSlot[int](time.Minute)
		a, b := 1, 2
		slot.Set(&a)
		slot.Set(&b)
		got := slot.Get()
		if got == nil || *got != 2 {
			t.Errorf("expected 2, got %v", got)
		}
	})

	t.Run("clear empties the slot", func(t *testing.T) {
		slot := NewSlot[int](time.Minute)
		v := 7
		slot.Set(&v)
		slot.Clear()
		if got := slot.Get(); got != nil {
			t.Errorf("expected nil after clear, got %v", got)
		}
	})
}
