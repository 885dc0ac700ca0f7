package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune/ecs"
)

func TestCommands(t *testing.T) {
	t.Run("nothing happens until flush", func(t *testing.T) {
		s := newStorage()
		e := s.Spawn(Position{})

		var c ecs.Commands
		ref := c.Spawn(Position{X: 1}, Velocity{})
		c.Delete(e)
		assert.Equal(t, 2, c.Len())
		assert.True(t, s.Alive(e))
		_, ok := ref.Entity()
		assert.False(t, ok, "spawn refs resolve after flush")

		c.Flush(s)
		assert.Zero(t, c.Len())
		assert.False(t, s.Alive(e))
		spawned, ok := ref.Entity()
		require.True(t, ok)
		assert.Equal(t, float32(1), ecs.Get[Position](s, spawned).X)
	})

	t.Run("order", func(t *testing.T) {
		s := newStorage()
		e := s.Spawn(Position{})

		var c ecs.Commands
		var log []string
		c.Defer(func() {
			log = append(log, "defer")
			assert.Equal(t, 1, s.Len(), "deferred functions see spawns and deletes")
		})
		c.Spawn(Score(1))
		c.Delete(e)
		c.Flush(s)
		assert.Equal(t, []string{"defer"}, log)
	})

	t.Run("entities are followed across moves", func(t *testing.T) {
		s := newStorage()
		e := s.Spawn(Position{X: 1}, Velocity{DX: 1})

		var c ecs.Commands
		c.AddComponent(e, Health{Current: 2})
		c.RemoveComponent(e, reflect.TypeFor[Velocity]())
		c.AddComponent(e, Score(3))
		c.Flush(s)

		view := ecs.NewView[struct {
			ecs.Entity
			*Position
			*Health
			*Score
		}](s)
		count := 0
		for _, got := range view.Iter() {
			count++
			assert.Equal(t, float32(1), got.Position.X)
			assert.Equal(t, 2, got.Health.Current)
			assert.Equal(t, Score(3), *got.Score)
			assert.False(t, ecs.Has[Velocity](s, got.Entity))
		}
		assert.Equal(t, 1, count)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("remove then add back", func(t *testing.T) {
		s := newStorage()
		e := s.Spawn(Position{X: 1}, Velocity{DX: 1})

		var c ecs.Commands
		c.RemoveComponent(e, reflect.TypeFor[Velocity]())
		c.AddComponent(e, Velocity{DX: 2})
		c.AddComponent(e, Health{})
		c.Flush(s)

		require.Equal(t, 1, s.Len())
		for m := range ecs.NewView[struct {
			*Velocity
			*Health
		}](s).Values() {
			assert.Equal(t, float32(2), m.Velocity.DX)
		}
	})

	t.Run("changes to deleted entities are dropped", func(t *testing.T) {
		s := newStorage()
		e := s.Spawn(Position{})

		var c ecs.Commands
		c.AddComponent(e, Velocity{})
		c.Delete(e)
		c.Spawn(Position{})
		c.Flush(s)

		assert.Equal(t, 1, s.Len())
		for _, a := range s.Archetypes() {
			assert.False(t, a.Has(reflect.TypeFor[Velocity]()) && a.Len() > 0)
		}
	})

	t.Run("commands queued while flushing wait", func(t *testing.T) {
		s := newStorage()
		var c ecs.Commands
		c.Defer(func() {
			c.Spawn(Score(1))
		})
		c.Flush(s)
		assert.Zero(t, s.Len())
		assert.Equal(t, 1, c.Len())

		c.Flush(s)
		assert.Equal(t, 1, s.Len())
	})
}

type bound struct {
	Movers  ecs.Query[mover]
	Scores  ecs.Query[struct{ *Score }]
	Health  ecs.Singleton[Health]
	Plain   int
	private ecs.Query[mover]
}

func TestBind(t *testing.T) {
	s := newStorage()
	s.Spawn(Position{}, Velocity{})

	var b bound
	execs := ecs.Bind(&b, s)
	require.Len(t, execs, 2)
	for _, e := range execs {
		e.Execute()
	}
	assert.Equal(t, 1, b.Movers.Len())
	assert.Zero(t, b.Scores.Len())
	b.Health.Get().Max = 4
	assert.Equal(t, 4, ecs.GetSingleton[Health](s).Max)
	assert.Panics(t, func() { b.private.Execute() }, "unexported fields are not bound")

	assert.Nil(t, ecs.Bind(b, s), "values cannot be bound")
	assert.Nil(t, ecs.Bind(new(int), s))
}
