package ramune

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon"
	"github.com/plus3/ramune/platform"
	"github.com/plus3/ramune/platform/headless"
)

// platformPackages names the packages that register the window platforms.
// Window platforms pull in cgo, so programs link only the ones they import.
var platformPackages = map[string]string{
	"ebiten": "github.com/plus3/ramune/platform/ebitenwin",
	"gl":     "github.com/plus3/ramune/platform/glfwgl",
}

// GameBuilder configures a Game. The zero value is not usable; start with
// NewGameBuilder.
type GameBuilder struct {
	cfg      Config
	platform platform.Platform
	logger   *zap.Logger
	keepOpen bool
}

// NewGameBuilder returns a builder holding DefaultConfig.
func NewGameBuilder() *GameBuilder {
	return &GameBuilder{cfg: DefaultConfig()}
}

func (b *GameBuilder) Title(title string) *GameBuilder {
	b.cfg.Title = title
	return b
}

func (b *GameBuilder) Size(width, height int) *GameBuilder {
	b.cfg.Width, b.cfg.Height = width, height
	return b
}

func (b *GameBuilder) Resizable(resizable bool) *GameBuilder {
	b.cfg.Resizable = resizable
	return b
}

func (b *GameBuilder) VSync(vsync bool) *GameBuilder {
	b.cfg.VSync = vsync
	return b
}

// TPS sets the number of Update events per second.
func (b *GameBuilder) TPS(tps int) *GameBuilder {
	b.cfg.TPS = tps
	return b
}

// Backend selects a registered platform by name, such as "ebiten",
// "headless" or "gl".
func (b *GameBuilder) Backend(name string) *GameBuilder {
	b.cfg.Backend = name
	return b
}

// Config replaces every setting with cfg.
func (b *GameBuilder) Config(cfg Config) *GameBuilder {
	b.cfg = cfg
	return b
}

// Platform runs the game on p instead of a registered backend.
func (b *GameBuilder) Platform(p platform.Platform) *GameBuilder {
	b.platform = p
	return b
}

// Logger installs l as ramune's logger when the game is built.
func (b *GameBuilder) Logger(l *zap.Logger) *GameBuilder {
	b.logger = l
	return b
}

// KeepOpen stops CloseRequested from quitting the game. The callback then
// decides whether to call Context.Quit.
func (b *GameBuilder) KeepOpen() *GameBuilder {
	b.keepOpen = true
	return b
}

// Build validates the configuration and resolves the platform.
func (b *GameBuilder) Build() (*Game, *Context, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if b.logger != nil {
		SetLogger(b.logger)
	}

	p := b.platform
	if p == nil {
		var err error
		p, err = b.openPlatform()
		if err != nil {
			return nil, nil, err
		}
	}

	ctx := newContext(p, b.cfg.Width, b.cfg.Height)
	g := &Game{
		platform: p,
		ctx:      ctx,
		keepOpen: b.keepOpen,
		opts: platform.Options{
			Title:     b.cfg.Title,
			Width:     b.cfg.Width,
			Height:    b.cfg.Height,
			Resizable: b.cfg.Resizable,
			VSync:     b.cfg.VSync,
			TPS:       b.cfg.TPS,
		},
	}
	return g, ctx, nil
}

func (b *GameBuilder) openPlatform() (platform.Platform, error) {
	if b.cfg.Backend == headless.Name {
		return headless.New(headless.Config{
			Hz:     b.cfg.Headless.Hz,
			Frames: b.cfg.Headless.Frames,
		}), nil
	}
	p, err := platform.Open(b.cfg.Backend)
	if err != nil {
		if pkg, ok := platformPackages[b.cfg.Backend]; ok && errors.Is(err, platform.ErrUnknownPlatform) {
			return nil, fmt.Errorf("ramune: %w; add `import _ %q` to link it", err, pkg)
		}
		return nil, fmt.Errorf("ramune: %w", err)
	}
	return p, nil
}

// Game is a built game, ready to run.
type Game struct {
	platform platform.Platform
	opts     platform.Options
	ctx      *Context
	keepOpen bool
	running  atomic.Bool
}

// Poll runs the game until it quits, delivering every event to fn.
func (g *Game) Poll(fn func(Event)) error {
	return g.Run(context.Background(), fn)
}

// Run is like Poll but also stops, without error, when ctx is done.
func (g *Game) Run(ctx context.Context, fn func(Event)) error {
	if fn == nil {
		return ErrNilCallback
	}
	if !g.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer g.running.Store(false)

	g.ctx.reset()
	log := logging.Named("game")
	log.Info("starting", zap.String("platform", g.platform.Name()), zap.String("title", g.opts.Title))

	l := &loop{game: g, fn: fn, log: log}
	err := g.platform.Run(ctx, g.opts, l)
	if err != nil {
		log.Error("stopped", zap.Error(err))
		return err
	}
	log.Info("stopped", zap.Uint64("ticks", g.ctx.Tick()), zap.Duration("elapsed", g.ctx.Elapsed()))
	return nil
}

// Context returns the context handed out by Build.
func (g *Game) Context() *Context {
	return g.ctx
}

// loop adapts a Game and its callback to platform.Handler.
type loop struct {
	game     *Game
	fn       func(Event)
	log      *zap.Logger
	graphics *Graphics
	err      error
}

func (l *loop) Start(dev lemon.Device) error {
	info := dev.Info()
	l.log.Info("device ready", zap.String("device", info.Name), zap.Int("max_vertices", info.MaxVertices))
	g, err := newGraphics(dev)
	if err != nil {
		return err
	}
	l.graphics = g
	return nil
}

func (l *loop) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if err := l.graphics.resize(width, height); err != nil && l.err == nil {
		l.err = err
		return
	}
	l.game.ctx.setSize(width, height)
	l.fn(Resized{Width: width, Height: height})
}

func (l *loop) Input(ev input.Event) {
	e := fromInput(ev)
	if e == nil {
		l.log.Warn("dropped input event", zap.String("type", fmt.Sprintf("%T", ev)))
		return
	}
	ctx := l.game.ctx
	ctx.input.Apply(ev)
	l.fn(e)
	if _, ok := e.(CloseRequested); ok && !l.game.keepOpen {
		ctx.Quit()
	}
}

func (l *loop) Update(dt time.Duration) error {
	if l.err != nil {
		return l.err
	}
	ctx := l.game.ctx
	if ctx.Quitting() {
		return platform.ErrQuit
	}
	ctx.elapsed.Add(int64(dt))
	l.fn(Update{Delta: dt, Tick: ctx.input.Tick()})
	ctx.input.Advance()
	if ctx.Quitting() {
		return platform.ErrQuit
	}
	return nil
}

func (l *loop) Draw() error {
	l.graphics.beginFrame()
	l.fn(Draw{Graphics: l.graphics})
	if err := l.graphics.endFrame(); err != nil {
		return fmt.Errorf("ramune: draw: %w", err)
	}
	return nil
}

func (l *loop) Stop() {
	if err := l.graphics.release(); err != nil {
		l.log.Warn("releasing targets", zap.Error(err))
	}
}
