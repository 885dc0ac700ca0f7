package input

// Event is a raw input event produced by a platform.
type Event interface {
	inputEvent()
}

// KeyEvent reports a key going down or up.
type KeyEvent struct {
	Key  Key
	Down bool
}

// MouseMoveEvent reports the cursor position in screen pixels.
type MouseMoveEvent struct {
	X, Y float64
}

// MouseButtonEvent reports a mouse button going down or up.
type MouseButtonEvent struct {
	Button MouseButton
	Down   bool
	X, Y   float64
}

// CloseEvent reports that the user asked to close the window.
type CloseEvent struct{}

func (KeyEvent) inputEvent()         {}
func (MouseMoveEvent) inputEvent()   {}
func (MouseButtonEvent) inputEvent() {}
func (CloseEvent) inputEvent()       {}
