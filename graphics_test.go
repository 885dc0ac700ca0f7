package ramune_test

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/lemon"
	"github.com/plus3/ramune/platform/headless"
)

// pos strips colors from vertices.
func pos(vs []lemon.Vertex) [][2]float32 {
	out := make([][2]float32, len(vs))
	for i, v := range vs {
		out[i] = [2]float32{v.X, v.Y}
	}
	return out
}

func TestGraphicsPresent(t *testing.T) {
	p := newFake(1)
	game, _ := build(t, p)

	require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
		g.Clear(ramune.CornflowerBlue)
	})))

	subs := p.dev.Submissions()
	require.Len(t, subs, 1, "a clear-only frame still reaches the screen")
	cmds := subs[0]
	require.Len(t, cmds, 5)

	assert.Equal(t, lemon.Viewport{Width: 320, Height: 240}, cmds[0])
	composite := cmds[1].(lemon.Clear).Target
	intermediary := cmds[2].(lemon.Clear).Target
	assert.Equal(t, lemon.Color(ramune.CornflowerBlue), cmds[1].(lemon.Clear).Color)
	assert.Equal(t, lemon.Blit{Src: composite, Dst: intermediary}, cmds[3])
	assert.Equal(t, lemon.Blit{Src: intermediary, Dst: lemon.Screen}, cmds[4])

	assert.Equal(t, []lemon.Handle{composite, intermediary}, p.dev.Disposed)
}

func TestGraphicsTargets(t *testing.T) {
	p := newFake(2)
	game, _ := build(t, p)

	var formats []lemon.Format
	require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
		for _, cmd := range p.dev.Commands() {
			if c, ok := cmd.(lemon.Clear); ok {
				target, live := p.dev.Target(c.Target)
				require.True(t, live)
				assert.Equal(t, 320, target.Width)
				assert.Equal(t, 240, target.Height)
				formats = append(formats, target.Format)
			}
		}
		g.Clear(ramune.Black)
	})))

	assert.Equal(t, []lemon.Format{lemon.FormatRGBA16F, lemon.FormatSRGBA8}, formats)
}

func TestScope(t *testing.T) {
	t.Run("rect vertices", func(t *testing.T) {
		p := newFake(1)
		game, _ := build(t, p)

		require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
			s := g.Push()
			s.SetColor(ramune.Red)
			s.DrawRect(50, 50, 20, 10)
			s.Pop()
		})))

		draws := p.dev.Draws()
		require.Len(t, draws, 1)
		want := [][2]float32{
			{50, 50}, {50, 60}, {70, 50},
			{70, 50}, {50, 60}, {70, 60},
		}
		if diff := cmp.Diff(want, pos(draws[0].Vertices)); diff != "" {
			t.Errorf("rect vertices (-want +got):\n%s", diff)
		}
		for _, v := range draws[0].Vertices {
			assert.Equal(t, lemon.Color(ramune.Red), lemon.Color{R: v.R, G: v.G, B: v.B, A: v.A})
		}
	})

	t.Run("sorted by depth", func(t *testing.T) {
		p := newFake(1)
		game, _ := build(t, p)

		require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
			s := g.Push()
			s.SetDepth(2)
			s.DrawRect(2, 0, 1, 1)
			s.SetDepth(0)
			s.DrawRect(0, 0, 1, 1)
			s.SetDepth(1)
			s.DrawRect(1, 0, 1, 1)
			s.SetDepth(0)
			s.DrawRect(10, 0, 1, 1)
			s.Pop()
		})))

		draws := p.dev.Draws()
		require.Len(t, draws, 1)
		var firstX []float32
		for i := 0; i < len(draws[0].Vertices); i += 6 {
			firstX = append(firstX, draws[0].Vertices[i].X)
		}
		assert.Equal(t, []float32{0, 10, 1, 2}, firstX)
	})

	t.Run("children inherit and keep call order", func(t *testing.T) {
		p := newFake(1)
		game, _ := build(t, p)

		require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
			root := g.Push()
			root.SetColor(ramune.Green)
			root.Translate(100, 100)
			root.DrawTriangle(0, 0, 1, 0, 0, 1)

			child := root.Push()
			assert.Equal(t, ramune.Green, child.Color())
			child.Translate(10, 0)
			child.DrawTriangle(0, 0, 1, 0, 0, 1)

			root.DrawTriangle(5, 5, 6, 5, 5, 6)
			child.Pop()
			root.Pop()
		})))

		draws := p.dev.Draws()
		require.Len(t, draws, 1)
		want := [][2]float32{
			{100, 100}, {101, 100}, {100, 101},
			{110, 100}, {111, 100}, {110, 101},
			{105, 105}, {106, 105}, {105, 106},
		}
		if diff := cmp.Diff(want, pos(draws[0].Vertices)); diff != "" {
			t.Errorf("vertices (-want +got):\n%s", diff)
		}
	})

	t.Run("shapes", func(t *testing.T) {
		p := newFake(1)
		game, _ := build(t, p)

		require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
			s := g.Push()
			s.DrawCircle(50, 50, 10)
			s.DrawLine(0, 0, 10, 0, 2)
			s.DrawLine(0, 0, 0, 0, 2)
			s.DrawRect(0, 0, 0, 10)
			s.DrawRect(0, 0, 10, -1)
			s.Pop()
		})))

		draws := p.dev.Draws()
		require.Len(t, draws, 1)
		assert.Len(t, draws[0].Vertices, 3*ramune.CircleSegments+6)

		line := pos(draws[0].Vertices[3*ramune.CircleSegments:])
		for _, v := range line {
			assert.Contains(t, []float32{-1, 1}, v[1])
		}
	})

	t.Run("empty scope submits nothing", func(t *testing.T) {
		p := newFake(1)
		game, _ := build(t, p)

		var stats ramune.FrameStats
		require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
			s := g.Push()
			s.DrawRect(0, 0, 0, 0)
			s.Pop()
			stats = g.Stats()
		})))

		assert.Empty(t, p.dev.Draws())
		assert.Len(t, p.dev.Submissions(), 1)
		assert.Zero(t, stats)
	})

	t.Run("split at device limit", func(t *testing.T) {
		p := newFake(2)
		p.dev.SetMaxVertices(6)
		game, _ := build(t, p)

		var stats ramune.FrameStats
		require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
			stats = g.Stats()
			s := g.Push()
			for i := range 3 {
				s.DrawRect(float32(i), 0, 1, 1)
			}
			s.Pop()
		})))

		assert.Len(t, p.dev.Draws(), 6, "two frames of three draws")
		assert.Equal(t, ramune.FrameStats{Scopes: 1, DrawCalls: 3, Vertices: 18, Submits: 2}, stats)
	})

	t.Run("pop", func(t *testing.T) {
		p := newFake(1)
		game, _ := build(t, p)

		require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
			s := g.Push()
			child := s.Push()
			child.DrawRect(0, 0, 1, 1)
			child.Pop()
			child.Pop()
			assert.Panics(t, func() { child.DrawRect(0, 0, 1, 1) })

			s.Pop()
			s.Pop()
			assert.Panics(t, func() { s.DrawRect(0, 0, 1, 1) })
			assert.Panics(t, func() { s.Push() })
		})))

		assert.Len(t, p.dev.Draws(), 1)
	})
}

func TestGraphicsHeadless(t *testing.T) {
	var screen *image.RGBA
	hp := headless.New(headless.Config{
		Frames: 1,
		AfterFrame: func(_ uint64, dev lemon.Device) error {
			var err error
			screen, err = dev.Readback(lemon.Screen)
			return err
		},
	})
	game, _, err := ramune.NewGameBuilder().Size(200, 150).Platform(hp).Build()
	require.NoError(t, err)

	require.NoError(t, game.Poll(drawEach(func(g *ramune.Graphics) {
		g.Clear(ramune.CornflowerBlue)
		s := g.Push()
		s.DrawRect(50, 50, 50, 50)
		s.Pop()
	})))

	require.NotNil(t, screen)
	assert.Equal(t, image.Rect(0, 0, 200, 150), screen.Bounds())

	bg := screen.RGBAAt(10, 10)
	assert.InDelta(t, 100, int(bg.R), 2)
	assert.InDelta(t, 149, int(bg.G), 2)
	assert.InDelta(t, 237, int(bg.B), 2)

	fg := screen.RGBAAt(75, 75)
	assert.InDelta(t, 255, int(fg.R), 2)
	assert.InDelta(t, 255, int(fg.G), 2)
	assert.InDelta(t, 255, int(fg.B), 2)
}
