// Package handoff carries the confirmed selection from the picker UI to
// the code that types it once the UI has closed.
package handoff

import "sync"

// Slot holds at most one pending selection. A later Set replaces an
// earlier one; Take empties the slot. The zero value is an empty slot.
type Slot struct {
	mu sync.Mutex
	ch chan string
}

// New returns an empty slot.
func New() *Slot {
	return &Slot{}
}

// lazyInit must be called with mu held.
func (s *Slot) lazyInit() {
	if s.ch == nil {
		s.ch = make(chan string, 1)
	}
}

// Set replaces the pending selection. When ok is false the slot is
// cleared instead.
func (s *Slot) Set(glyph string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lazyInit()
	s.drain()
	if ok {
		s.ch <- glyph
	}
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.Set("", false)
}

// Take removes and returns the pending selection.
func (s *Slot) Take() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lazyInit()
	select {
	case glyph := <-s.ch:
		return glyph, true
	default:
		return "", false
	}
}

func (s *Slot) drain() {
	select {
	case <-s.ch:
	default:
	}
}
