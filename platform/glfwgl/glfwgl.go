// Package glfwgl runs ramune games in a GLFW window rendered with the
// OpenGL device. Importing it registers the "gl" platform.
//
// GLFW must run on the main thread on some systems. Programs using this
// platform should call runtime.LockOSThread from an init function in
// package main and call Game.Poll from main.
package glfwgl

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon/opengl"
	"github.com/plus3/ramune/platform"
)

// Name is the registry name of the GLFW platform.
const Name = "gl"

// maxCatchUp bounds the updates run for one frame after a stall.
const maxCatchUp = 5

func init() {
	platform.Register(Name, func() platform.Platform { return New() })
}

// Platform is the GLFW window platform.
type Platform struct {
	title atomic.Pointer[string]
}

// New returns a GLFW platform.
func New() *Platform {
	return &Platform{}
}

func (p *Platform) Name() string { return Name }

// SetTitle changes the window title on the next frame. Safe to call from
// any goroutine.
func (p *Platform) SetTitle(title string) {
	p.title.Store(&title)
}

// Run opens the window and drives h until it quits, the window closes or
// ctx is done.
func (p *Platform) Run(ctx context.Context, opts platform.Options, h platform.Handler) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := logging.Named("platform.gl")

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfwgl: init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(opts.Resizable))

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfwgl: create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	fbw, fbh := win.GetFramebufferSize()
	dev, err := opengl.New(fbw, fbh)
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := h.Start(dev); err != nil {
		return err
	}
	defer h.Stop()
	h.Resize(fbw, fbh)

	w := &window{win: win, h: h}
	w.install()

	log.Info("window opened", zap.String("title", opts.Title), zap.Int("width", fbw), zap.Int("height", fbh))
	defer log.Info("window closed")

	dt := opts.TickDuration()
	last := time.Now()
	var lag time.Duration
	for ctx.Err() == nil {
		glfw.PollEvents()
		if t := p.title.Swap(nil); t != nil {
			win.SetTitle(*t)
		}
		if w.width > 0 && w.height > 0 {
			if err := dev.Resize(w.width, w.height); err != nil {
				return err
			}
			h.Resize(w.width, w.height)
			w.width, w.height = 0, 0
		}

		now := time.Now()
		lag += now.Sub(last)
		last = now
		if lag > maxCatchUp*dt {
			lag = maxCatchUp * dt
		}

		for ; lag >= dt; lag -= dt {
			if err := h.Update(dt); err != nil {
				if errors.Is(err, platform.ErrQuit) {
					return nil
				}
				return err
			}
		}
		if err := h.Draw(); err != nil {
			if errors.Is(err, platform.ErrQuit) {
				return nil
			}
			return err
		}
		win.SwapBuffers()
	}
	return nil
}

// window forwards GLFW callbacks to the handler. Callbacks run inside
// PollEvents, so input always reaches the handler before the next Update.
type window struct {
	win  *glfw.Window
	h    platform.Handler
	held input.Holders

	// width and height hold a pending framebuffer resize.
	width, height int
	x, y          float64
}

func (w *window) install() {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		k, ok := keymap[key]
		if !ok {
			return
		}
		down := action == glfw.Press
		if down && !w.held.Press(k) || !down && !w.held.Release(k) {
			return
		}
		w.h.Input(input.KeyEvent{Key: k, Down: down})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.x, w.y = x, y
		w.h.Input(input.MouseMoveEvent{X: x, Y: y})
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := buttons[button]
		if !ok {
			return
		}
		w.h.Input(input.MouseButtonEvent{Button: b, Down: action == glfw.Press, X: w.x, Y: w.y})
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
	})
	w.win.SetCloseCallback(func(win *glfw.Window) {
		// The handler decides whether closing quits.
		win.SetShouldClose(false)
		w.h.Input(input.CloseEvent{})
	})
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
