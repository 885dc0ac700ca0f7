package ramune

import (
	"time"

	"github.com/plus3/ramune/input"
)

// Key and MouseButton are defined by the input package, which also holds
// their constants.
type (
	Key         = input.Key
	MouseButton = input.MouseButton
)

// Event is anything delivered to the game's callback.
type Event interface {
	event()
}

// Resized is delivered once when the game starts and again whenever the
// screen changes size, before the next Update.
type Resized struct {
	Width, Height int
}

// Update is delivered at a fixed rate, after the tick's input events.
type Update struct {
	Delta time.Duration
	Tick  uint64
}

// Draw is delivered once per frame after Update. The frame is presented
// when the callback returns.
type Draw struct {
	Graphics *Graphics
}

type KeyDown struct {
	Key Key
}

type KeyUp struct {
	Key Key
}

type MouseMoved struct {
	X, Y float64
}

type MouseDown struct {
	Button MouseButton
	X, Y   float64
}

type MouseUp struct {
	Button MouseButton
	X, Y   float64
}

// CloseRequested is delivered when the user tries to close the window. The
// game quits afterwards unless the builder was told to KeepOpen.
type CloseRequested struct{}

func (Resized) event()        {}
func (Update) event()         {}
func (Draw) event()           {}
func (KeyDown) event()        {}
func (KeyUp) event()          {}
func (MouseMoved) event()     {}
func (MouseDown) event()      {}
func (MouseUp) event()        {}
func (CloseRequested) event() {}

func fromInput(ev input.Event) Event {
	switch e := ev.(type) {
	case input.KeyEvent:
		if e.Down {
			return KeyDown{Key: e.Key}
		}
		return KeyUp{Key: e.Key}
	case input.MouseMoveEvent:
		return MouseMoved{X: e.X, Y: e.Y}
	case input.MouseButtonEvent:
		if e.Down {
			return MouseDown{Button: e.Button, X: e.X, Y: e.Y}
		}
		return MouseUp{Button: e.Button, X: e.X, Y: e.Y}
	case input.CloseEvent:
		return CloseRequested{}
	}
	return nil
}
