package ramune

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/platform"
)

// Context gives the game access to the running loop. It is safe for
// concurrent use.
type Context struct {
	input   *input.State
	quit    atomic.Bool
	elapsed atomic.Int64

	mu            sync.RWMutex
	width, height int
	platform      platform.Platform
}

func newContext(p platform.Platform, width, height int) *Context {
	return &Context{
		input:    input.NewState(),
		platform: p,
		width:    width,
		height:   height,
	}
}

// Quit asks the game to stop. The current frame is not drawn if Quit is
// called before Draw.
func (c *Context) Quit() {
	c.quit.Store(true)
}

// Quitting reports whether Quit was called.
func (c *Context) Quitting() bool {
	return c.quit.Load()
}

// Size returns the current screen size.
func (c *Context) Size() (width, height int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width, c.height
}

// Tick returns the number of completed updates.
func (c *Context) Tick() uint64 {
	return c.input.Tick()
}

// Elapsed returns the game time, the sum of all Update deltas.
func (c *Context) Elapsed() time.Duration {
	return time.Duration(c.elapsed.Load())
}

// KeyDown reports whether k is held.
func (c *Context) KeyDown(k Key) bool {
	return c.input.Down(k)
}

// KeyPressed reports whether k went down during the current tick.
func (c *Context) KeyPressed(k Key) bool {
	return c.input.Pressed(k)
}

// MouseDown reports whether b is held.
func (c *Context) MouseDown(b MouseButton) bool {
	return c.input.ButtonDown(b)
}

// Cursor returns the last known cursor position in screen pixels.
func (c *Context) Cursor() (x, y float64) {
	return c.input.Cursor()
}

// SetTitle changes the window title. It reports false when the platform has
// no title to change.
func (c *Context) SetTitle(title string) bool {
	c.mu.RLock()
	t, ok := c.platform.(platform.Titler)
	c.mu.RUnlock()
	if !ok {
		return false
	}
	t.SetTitle(title)
	return true
}

func (c *Context) setSize(width, height int) {
	c.mu.Lock()
	c.width, c.height = width, height
	c.mu.Unlock()
}

// reset prepares for another run. The clock keeps counting.
func (c *Context) reset() {
	c.quit.Store(false)
	c.input.Reset()
}
