package ebitenwin

import (
	"context"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/lemon"
	"github.com/plus3/ramune/platform"
)

type calls struct {
	log []string
}

type handler struct {
	*calls
	err error
}

func (h handler) Start(lemon.Device) error { return nil }
func (h handler) Resize(int, int)          {}
func (h handler) Input(input.Event)        {}
func (h handler) Draw() error              { return nil }
func (h handler) Stop()                    {}

func (h handler) Update(time.Duration) error {
	h.log = append(h.log, "update")
	return h.err
}

type overlay struct {
	*calls
}

func (o overlay) BeginFrame()        { o.log = append(o.log, "begin") }
func (o overlay) EndFrame()          { o.log = append(o.log, "end") }
func (o overlay) Draw(*ebiten.Image) { o.log = append(o.log, "draw") }

func (o overlay) Layout(w, h int) {
	o.log = append(o.log, "layout")
}

func TestOverlay(t *testing.T) {
	t.Run("brackets every update", func(t *testing.T) {
		c := &calls{}
		g := &hostGame{ctx: context.Background(), h: handler{calls: c}, overlay: overlay{c}}

		assert.NoError(t, g.Update())
		assert.NoError(t, g.Update())
		assert.Equal(t, []string{"begin", "update", "end", "begin", "update", "end"}, c.log)
	})

	t.Run("frame ends when the game quits", func(t *testing.T) {
		c := &calls{}
		g := &hostGame{ctx: context.Background(), h: handler{calls: c, err: platform.ErrQuit}, overlay: overlay{c}}

		assert.ErrorIs(t, g.Update(), ebiten.Termination)
		assert.Equal(t, []string{"begin", "update", "end"}, c.log)
	})

	t.Run("follows the layout", func(t *testing.T) {
		c := &calls{}
		g := &hostGame{ctx: context.Background(), h: handler{calls: c}, overlay: overlay{c}}

		w, h := g.Layout(800, 600)
		assert.Equal(t, 800, w)
		assert.Equal(t, 600, h)
		assert.Equal(t, []string{"layout"}, c.log)
	})

	t.Run("optional", func(t *testing.T) {
		c := &calls{}
		g := &hostGame{ctx: context.Background(), h: handler{calls: c}}

		assert.NoError(t, g.Update())
		g.Layout(800, 600)
		assert.Equal(t, []string{"update"}, c.log)
	})
}
