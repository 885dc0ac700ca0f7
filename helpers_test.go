package ramune_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/lemon/lemontest"
	"github.com/plus3/ramune/platform"
)

// fakePlatform drives a handler for a fixed number of frames against a
// recording device.
type fakePlatform struct {
	dev     *lemontest.Device
	frames  int
	events  map[int][]input.Event
	resizes map[int][2]int
	title   string
}

func newFake(frames int) *fakePlatform {
	return &fakePlatform{
		dev:     lemontest.NewDevice(320, 240),
		frames:  frames,
		events:  make(map[int][]input.Event),
		resizes: make(map[int][2]int),
	}
}

func (p *fakePlatform) Name() string { return "fake" }

func (p *fakePlatform) SetTitle(title string) { p.title = title }

func (p *fakePlatform) Run(ctx context.Context, opts platform.Options, h platform.Handler) error {
	if err := p.dev.Resize(opts.Width, opts.Height); err != nil {
		return err
	}
	if err := h.Start(p.dev); err != nil {
		return err
	}
	defer h.Stop()
	h.Resize(opts.Width, opts.Height)

	for frame := 1; frame <= p.frames; frame++ {
		if ctx.Err() != nil {
			return nil
		}
		if size, ok := p.resizes[frame]; ok {
			if err := p.dev.Resize(size[0], size[1]); err != nil {
				return err
			}
			h.Resize(size[0], size[1])
		}
		for _, ev := range p.events[frame] {
			h.Input(ev)
		}
		quit, err := platform.Step(h, opts.TickDuration())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	return nil
}

// build returns a game on p sized 320x240 at 60 TPS.
func build(t *testing.T, p *fakePlatform, configure ...func(*ramune.GameBuilder)) (*ramune.Game, *ramune.Context) {
	t.Helper()
	b := ramune.NewGameBuilder().Size(320, 240).TPS(60).Platform(p)
	for _, fn := range configure {
		fn(b)
	}
	game, ctx, err := b.Build()
	require.NoError(t, err)
	return game, ctx
}

// drawEach returns a poll callback that calls fn on every Draw event.
func drawEach(fn func(g *ramune.Graphics)) func(ramune.Event) {
	return func(e ramune.Event) {
		if d, ok := e.(ramune.Draw); ok {
			fn(d.Graphics)
		}
	}
}
