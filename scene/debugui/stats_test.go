package debugui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/ecs"
	"github.com/plus3/ramune/platform/headless"
	"github.com/plus3/ramune/scene"
	"github.com/plus3/ramune/scene/debugui"
)

type square struct{}

func (square) Update(*scene.Frame) {}

func (square) Draw(s *ramune.Scope) {
	s.DrawRect(1, 1, 4, 4)
}

func TestStatsWindow(t *testing.T) {
	p := headless.New(headless.Config{Frames: 3})
	game, ctx, err := ramune.NewGameBuilder().Size(32, 32).Platform(p).Build()
	require.NoError(t, err)

	sc := scene.New(ctx)
	sc.Register(square{})
	w := debugui.SpawnStatsWindow(sc)

	require.NoError(t, game.Poll(w.Observe(sc.Handle)))

	assert.EqualValues(t, 3, w.Frames())
	assert.Positive(t, w.Graphics().DrawCalls)
	assert.Positive(t, w.Graphics().Vertices)
	assert.GreaterOrEqual(t, w.AverageFrameTime(), float32(0))

	items := 0
	for range ecs.NewView[struct{ *debugui.ImguiItem }](sc.Storage()).Values() {
		items++
	}
	assert.Equal(t, 1, items, "the window is an ImguiItem entity")
	assert.Equal(t, 1, sc.Stats().Entities)
}
