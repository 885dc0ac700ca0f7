package input

import (
	"sync"

	"github.com/kamstrup/intmap"
)

// State accumulates input events into queryable key, button and cursor
// state. It is written by the frame loop and may be read from any goroutine.
type State struct {
	mu      sync.RWMutex
	tick    uint64
	down    *intmap.Set[Key]
	pressed *intmap.Set[Key]
	buttons [mouseButtonCount]bool
	x, y    float64
}

// NewState returns an empty State at tick 0.
func NewState() *State {
	return &State{
		down:    intmap.NewSet[Key](32),
		pressed: intmap.NewSet[Key](8),
	}
}

// Apply folds ev into the state. A key that goes down is remembered as
// pressed until the next Advance, even if it is released again first.
func (s *State) Apply(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case KeyEvent:
		if e.Key == KeyUnknown {
			return
		}
		if e.Down {
			if s.down.Add(e.Key) {
				s.pressed.Add(e.Key)
			}
		} else {
			s.down.Del(e.Key)
		}
	case MouseMoveEvent:
		s.x, s.y = e.X, e.Y
	case MouseButtonEvent:
		if e.Button >= 0 && e.Button < mouseButtonCount {
			s.buttons[e.Button] = e.Down
		}
		s.x, s.y = e.X, e.Y
	}
}

// Advance moves to the next tick and returns it. Presses recorded so far
// are forgotten.
func (s *State) Advance() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick++
	s.pressed.Clear()
	return s.tick
}

// Tick returns the current tick.
func (s *State) Tick() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// Down reports whether k is held.
func (s *State) Down(k Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.down.Has(k)
}

// Pressed reports whether k went down during the current tick.
func (s *State) Pressed(k Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pressed.Has(k)
}

// ButtonDown reports whether b is held.
func (s *State) ButtonDown(b MouseButton) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b < 0 || b >= mouseButtonCount {
		return false
	}
	return s.buttons[b]
}

// Cursor returns the last known cursor position.
func (s *State) Cursor() (x, y float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.x, s.y
}

// Reset releases every key and button, as when the window loses focus.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down.Clear()
	s.pressed.Clear()
	s.buttons = [mouseButtonCount]bool{}
}

// Holders merges several physical keys that map to one Key, such as left
// and right Shift. The Key goes down with the first holder and up with the
// last. Platforms own one Holders each; it is not safe for concurrent use.
type Holders struct {
	counts *intmap.Map[Key, int]
}

// Press records one more holder of k and reports whether k just went down.
func (h *Holders) Press(k Key) bool {
	if h.counts == nil {
		h.counts = intmap.New[Key, int](8)
	}
	n, _ := h.counts.Get(k)
	h.counts.Put(k, n+1)
	return n == 0
}

// Release drops one holder of k and reports whether k just went up.
// Releasing a key with no holders reports true so stray releases still
// reach the game.
func (h *Holders) Release(k Key) bool {
	if h.counts == nil {
		return true
	}
	n, _ := h.counts.Get(k)
	if n <= 1 {
		h.counts.Del(k)
		return true
	}
	h.counts.Put(k, n-1)
	return false
}
