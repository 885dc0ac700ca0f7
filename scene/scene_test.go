package scene_test

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/lemon"
	"github.com/plus3/ramune/platform/headless"
	"github.com/plus3/ramune/scene"
)

type counter struct {
	runs  int
	ticks []uint64
	log   *[]string
	name  string
}

func (c *counter) Update(frame *scene.Frame) {
	c.runs++
	c.ticks = append(c.ticks, frame.Tick)
	if c.log != nil {
		*c.log = append(*c.log, c.name)
	}
}

type spawner struct {
	child scene.System
	done  bool
}

func (s *spawner) Update(frame *scene.Frame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Register(s.child)
	frame.Commands.Remove(s)
}

type box struct {
	x, y  float32
	color ramune.Color
	depth float32
}

func (b *box) Update(*scene.Frame) {}

func (b *box) Draw(s *ramune.Scope) {
	s.SetDepth(b.depth)
	s.SetColor(b.color)
	s.DrawRect(b.x, b.y, 20, 20)
}

func TestScene(t *testing.T) {
	t.Run("registration order", func(t *testing.T) {
		var order []string
		sc := scene.New(nil)
		sc.Register(&counter{name: "first", log: &order})
		sc.Register(&counter{name: "second", log: &order})

		sc.Once(time.Millisecond, 0)
		sc.Once(time.Millisecond, 1)

		assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	})

	t.Run("commands apply after the frame", func(t *testing.T) {
		c := &counter{}
		sp := &spawner{child: c}
		sc := scene.New(nil)
		sc.Register(sp)

		sc.Once(time.Millisecond, 0)
		assert.Equal(t, 0, c.runs, "registered systems wait for the next update")
		assert.Equal(t, []scene.System{c}, sc.Systems())

		sc.Once(time.Millisecond, 1)
		assert.Equal(t, []uint64{1}, c.ticks)
	})

	t.Run("defer", func(t *testing.T) {
		var order []string
		sc := scene.New(nil)
		sc.Register(deferring{log: &order})
		sc.Register(&counter{name: "after", log: &order})

		sc.Once(time.Millisecond, 0)
		assert.Equal(t, []string{"after", "deferred"}, order)
	})

	t.Run("remove", func(t *testing.T) {
		c := &counter{}
		sc := scene.New(nil)
		sc.Register(c)
		assert.True(t, sc.Remove(c))
		assert.False(t, sc.Remove(c))
		sc.Once(time.Millisecond, 0)
		assert.Zero(t, c.runs)
	})
}

type deferring struct {
	log *[]string
}

func (d deferring) Update(frame *scene.Frame) {
	frame.Commands.Defer(func() { *d.log = append(*d.log, "deferred") })
}

func TestStats(t *testing.T) {
	sc := scene.New(nil)
	sc.Register(&counter{})
	sc.Register(&spawner{child: &counter{}})

	stats := sc.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Zero(t, stats.Systems[0].MinDuration)

	for i := range 5 {
		sc.Once(time.Millisecond, uint64(i))
	}

	stats = sc.Stats()
	require.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, "counter", stats.Systems[0].Name)
	assert.Equal(t, int64(5), stats.Systems[0].Runs)
	assert.Equal(t, "counter", stats.Systems[1].Name, "spawner replaced by its child")
	assert.Equal(t, int64(4), stats.Systems[1].Runs)
	assert.Equal(t, int64(9), stats.TotalRuns)

	s := stats.Systems[0]
	assert.LessOrEqual(t, s.MinDuration, s.AvgDuration)
	assert.LessOrEqual(t, s.AvgDuration, s.MaxDuration)
	assert.GreaterOrEqual(t, s.TotalDuration, s.LastDuration)
}

func TestSceneHandle(t *testing.T) {
	var screen *image.RGBA
	p := headless.New(headless.Config{
		Frames: 3,
		AfterFrame: func(_ uint64, dev lemon.Device) error {
			var err error
			screen, err = dev.Readback(lemon.Screen)
			return err
		},
	})
	game, ctx, err := ramune.NewGameBuilder().Size(100, 100).Platform(p).Build()
	require.NoError(t, err)

	sc := scene.New(ctx)
	sc.Background = ramune.Blue
	c := &counter{}
	sc.Register(c)
	sc.Register(&box{x: 10, y: 10, color: ramune.Red, depth: 1})
	sc.Register(&box{x: 20, y: 20, color: ramune.Green})

	require.NoError(t, game.Poll(sc.Handle))
	assert.Equal(t, []uint64{0, 1, 2}, c.ticks)

	require.NotNil(t, screen)
	assert.Equal(t, uint8(255), screen.RGBAAt(5, 5).B, "background")
	assert.Equal(t, uint8(255), screen.RGBAAt(25, 25).R, "higher depth on top")
	assert.Equal(t, uint8(255), screen.RGBAAt(35, 35).G)
}
