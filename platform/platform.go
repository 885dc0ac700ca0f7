// Package platform connects ramune to windowing systems.
//
// A Platform owns the OS window (or the lack of one), creates the lemon
// device that renders into it and drives a Handler: input first, then a
// fixed-rate Update, then Draw, until the handler quits, the window closes
// for good or the context is cancelled.
package platform

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/lemon"
)

var (
	// ErrQuit is returned by a Handler to end the run. Platforms translate
	// it into a nil error from Run.
	ErrQuit = errors.New("platform: quit")

	ErrUnknownPlatform = errors.New("platform: unknown platform")
)

// Options configure the window a platform opens.
type Options struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	VSync     bool
	// TPS is the number of Update calls per second.
	TPS int
}

// TickDuration returns the fixed update step for o.TPS.
func (o Options) TickDuration() time.Duration {
	if o.TPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(o.TPS)
}

// Handler receives the frame loop's callbacks. All calls happen on the
// platform's loop goroutine.
type Handler interface {
	// Start is called once the device exists, before any other call.
	Start(dev lemon.Device) error
	// Resize reports the screen size, once after Start and on every change.
	Resize(width, height int)
	Input(ev input.Event)
	Update(dt time.Duration) error
	Draw() error
	// Stop is called once when the loop ends, before the device closes.
	Stop()
}

// Platform runs a Handler.
type Platform interface {
	Name() string
	Run(ctx context.Context, opts Options, h Handler) error
}

// Titler is implemented by platforms whose window title can change while
// running.
type Titler interface {
	SetTitle(title string)
}

// Factory creates a Platform.
type Factory func() Platform

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a platform available by name. It panics if the name is
// taken, like database/sql drivers.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if f == nil {
		panic("platform: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("platform: Register called twice for " + name)
	}
	registry[name] = f
}

// Open creates the platform registered under name.
func Open(name string) (Platform, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownPlatform, name, Names())
	}
	return f(), nil
}

// Names lists registered platforms in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Step runs one Update+Draw pass and reports whether the handler asked to
// quit. Other errors are returned as is.
func Step(h Handler, dt time.Duration) (quit bool, err error) {
	if err := h.Update(dt); err != nil {
		if errors.Is(err, ErrQuit) {
			return true, nil
		}
		return false, err
	}
	if err := h.Draw(); err != nil {
		if errors.Is(err, ErrQuit) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
