// Package ebitenwin runs ramune games in a desktop (or browser/mobile)
// window provided by Ebitengine.
package ebitenwin

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon/ebitengine"
	"github.com/plus3/ramune/platform"
)

// Name is the registry name of the Ebitengine platform.
const Name = "ebiten"

func init() {
	platform.Register(Name, func() platform.Platform { return New() })
}

// Overlay draws over the game, such as a debug UI. The window calls
// BeginFrame and EndFrame around every update and Draw after every frame.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

// Platform is the Ebitengine window platform.
type Platform struct {
	overlay Overlay
}

// New returns an Ebitengine platform.
func New() *Platform {
	return &Platform{}
}

func (p *Platform) Name() string { return Name }

// SetOverlay installs o over the game. Call it before Run.
func (p *Platform) SetOverlay(o Overlay) {
	p.overlay = o
}

// SetTitle changes the window title. Safe to call from any goroutine.
func (p *Platform) SetTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// Run opens the window and blocks until the game ends. Ebitengine requires
// this to be called from the main goroutine on most systems.
func (p *Platform) Run(ctx context.Context, opts platform.Options, h platform.Handler) error {
	log := logging.Named("platform.ebiten")

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	if opts.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetVsyncEnabled(opts.VSync)
	ebiten.SetTPS(max(opts.TPS, 1))
	ebiten.SetWindowClosingHandled(true)

	dev := ebitengine.New(opts.Width, opts.Height)
	defer dev.Close()

	if err := h.Start(dev); err != nil {
		return err
	}
	h.Resize(opts.Width, opts.Height)

	g := &hostGame{
		ctx:     ctx,
		h:       h,
		dev:     dev,
		dt:      opts.TickDuration(),
		overlay: p.overlay,
		width:   opts.Width,
		height:  opts.Height,
	}

	log.Info("window opened", zap.String("title", opts.Title), zap.Int("width", opts.Width), zap.Int("height", opts.Height))
	err := ebiten.RunGame(g)
	h.Stop()
	log.Info("window closed")

	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type hostGame struct {
	ctx     context.Context
	h       platform.Handler
	dev     *ebitengine.Device
	dt      time.Duration
	overlay Overlay

	width, height int
	layoutW       int
	layoutH       int

	keys     []ebiten.Key
	held     input.Holders
	cursorX  int
	cursorY  int
	drawErr  error
	quitting bool
}

func (g *hostGame) Update() error {
	if g.drawErr != nil {
		return g.drawErr
	}
	if g.quitting || g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if g.layoutW > 0 && g.layoutH > 0 && (g.layoutW != g.width || g.layoutH != g.height) {
		g.width, g.height = g.layoutW, g.layoutH
		if err := g.dev.Resize(g.width, g.height); err != nil {
			return err
		}
		g.h.Resize(g.width, g.height)
	}

	g.pollInput()

	if g.overlay != nil {
		g.overlay.BeginFrame()
		defer g.overlay.EndFrame()
	}
	if err := g.h.Update(g.dt); err != nil {
		if errors.Is(err, platform.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *hostGame) pollInput() {
	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keymap[k]; ok && g.held.Press(key) {
			g.h.Input(input.KeyEvent{Key: key, Down: true})
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if key, ok := keymap[k]; ok && g.held.Release(key) {
			g.h.Input(input.KeyEvent{Key: key, Down: false})
		}
	}

	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.h.Input(input.MouseMoveEvent{X: float64(x), Y: float64(y)})
	}
	for _, b := range buttons {
		switch {
		case inpututil.IsMouseButtonJustPressed(b.ebiten):
			g.h.Input(input.MouseButtonEvent{Button: b.input, Down: true, X: float64(x), Y: float64(y)})
		case inpututil.IsMouseButtonJustReleased(b.ebiten):
			g.h.Input(input.MouseButtonEvent{Button: b.input, Down: false, X: float64(x), Y: float64(y)})
		}
	}

	if ebiten.IsWindowBeingClosed() {
		g.h.Input(input.CloseEvent{})
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.drawErr != nil || g.quitting {
		return
	}
	g.dev.SetScreen(screen)
	defer g.dev.SetScreen(nil)

	if err := g.h.Draw(); err != nil {
		if errors.Is(err, platform.ErrQuit) {
			g.quitting = true
			return
		}
		g.drawErr = err
		return
	}
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

// Layout keeps the screen the same size as the window so one lemon pixel is
// one window pixel.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layoutW, g.layoutH = outsideWidth, outsideHeight
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
