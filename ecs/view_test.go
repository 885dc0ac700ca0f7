package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune/ecs"
)

type mover struct {
	ecs.Entity
	*Position
	*Velocity
}

type maybeHurt struct {
	*Position
	Health *Health `ecs:"optional"`
}

func TestView(t *testing.T) {
	t.Run("iterates matching archetypes in order", func(t *testing.T) {
		s := newStorage()
		a := s.Spawn(Position{X: 1}, Velocity{DX: 1})
		s.Spawn(Position{X: 2})
		c := s.Spawn(Position{X: 3}, Velocity{DX: 3}, Health{})
		d := s.Spawn(Position{X: 4}, Velocity{DX: 4})

		view := ecs.NewView[mover](s)
		var got []ecs.Entity
		for e, m := range view.Iter() {
			assert.Equal(t, e, m.Entity)
			assert.Equal(t, m.Position.X, m.Velocity.DX)
			got = append(got, e)
		}
		assert.Equal(t, []ecs.Entity{a, d, c}, got)
	})

	t.Run("writes through", func(t *testing.T) {
		s := newStorage()
		e := s.Spawn(Position{X: 1}, Velocity{DX: 2})
		for m := range ecs.NewView[mover](s).Values() {
			m.Position.X += m.Velocity.DX
		}
		assert.Equal(t, float32(3), ecs.Get[Position](s, e).X)
	})

	t.Run("optional fields", func(t *testing.T) {
		s := newStorage()
		plain := s.Spawn(Position{X: 1})
		hurt := s.Spawn(Position{X: 2}, Health{Current: 5})

		view := ecs.NewView[maybeHurt](s)
		got := view.Get(plain)
		require.NotNil(t, got)
		assert.Nil(t, got.Health)

		got = view.Get(hurt)
		require.NotNil(t, got)
		assert.Equal(t, 5, got.Health.Current)

		count := 0
		for range view.Iter() {
			count++
		}
		assert.Equal(t, 2, count)
	})

	t.Run("get misses", func(t *testing.T) {
		s := newStorage()
		e := s.Spawn(Position{})
		view := ecs.NewView[mover](s)
		assert.Nil(t, view.Get(e))
		s.Delete(e)
		assert.Nil(t, ecs.NewView[maybeHurt](s).Get(e))
	})

	t.Run("spawn", func(t *testing.T) {
		s := newStorage()
		view := ecs.NewView[maybeHurt](s)
		e := view.Spawn(maybeHurt{Position: &Position{X: 9}})
		assert.Equal(t, float32(9), ecs.Get[Position](s, e).X)
		assert.False(t, ecs.Has[Health](s, e))

		assert.Panics(t, func() { view.Spawn(maybeHurt{}) })
	})

	t.Run("invalid view types panic", func(t *testing.T) {
		s := newStorage()
		assert.Panics(t, func() { ecs.NewView[int](s) })
		assert.Panics(t, func() { ecs.NewView[struct{ P Position }](s) })
		assert.Panics(t, func() {
			ecs.NewView[struct {
				P *Position `ecs:"sometimes"`
			}](s)
		})
	})
}

func TestQuery(t *testing.T) {
	t.Run("execute gathers matches", func(t *testing.T) {
		s := newStorage()
		q := ecs.NewQuery[mover](s)

		q.Execute()
		assert.Zero(t, q.Len())
		_, _, ok := q.First()
		assert.False(t, ok)

		a := s.Spawn(Position{}, Velocity{})
		assert.Zero(t, q.Len(), "results hold until the next Execute")

		q.Execute()
		assert.Equal(t, 1, q.Len())
		e, m, ok := q.First()
		require.True(t, ok)
		assert.Equal(t, a, e)
		assert.Equal(t, a, m.Entity)

		s.Spawn(Position{}, Velocity{}, Score(1))
		s.Spawn(Position{})
		q.Execute()
		assert.Equal(t, 2, q.Len(), "archetypes created later are picked up")

		s.Delete(a)
		q.Execute()
		var left []ecs.Entity
		for e := range q.Iter() {
			left = append(left, e)
		}
		assert.Len(t, left, 1)
		assert.NotContains(t, left, a)
	})

	t.Run("unexecuted queries panic", func(t *testing.T) {
		s := newStorage()
		q := ecs.NewQuery[mover](s)
		assert.Panics(t, func() { q.Iter() })
		assert.Panics(t, func() { q.Values() })

		var unbound ecs.Query[mover]
		assert.Panics(t, func() { unbound.Execute() })
	})
}
