package lemon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune/lemon"
)

func TestTable(t *testing.T) {
	t.Run("insert and get", func(t *testing.T) {
		var table lemon.Table[string]
		a := table.Insert("a")
		b := table.Insert("b")

		assert.NotEqual(t, lemon.Handle(0), a)
		assert.NotEqual(t, a, b)
		assert.Equal(t, 2, table.Len())

		v, ok := table.Get(a)
		require.True(t, ok)
		assert.Equal(t, "a", v)
	})

	t.Run("stale handle after reuse", func(t *testing.T) {
		var table lemon.Table[int]
		first := table.Insert(1)

		v, ok := table.Remove(first)
		require.True(t, ok)
		assert.Equal(t, 1, v)

		second := table.Insert(2)
		assert.Equal(t, first.Index(), second.Index(), "slot should be reused")
		assert.NotEqual(t, first.Generation(), second.Generation())

		_, ok = table.Get(first)
		assert.False(t, ok, "stale handle must not resolve")

		_, ok = table.Remove(first)
		assert.False(t, ok)

		v, ok = table.Get(second)
		require.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("screen and zero never resolve", func(t *testing.T) {
		var table lemon.Table[int]
		table.Insert(1)

		assert.False(t, table.Contains(0))
		assert.False(t, table.Contains(lemon.Screen))
		_, ok := table.Remove(lemon.Screen)
		assert.False(t, ok)
	})

	t.Run("all skips removed slots across blocks", func(t *testing.T) {
		var table lemon.Table[int]
		handles := make([]lemon.Handle, 150)
		for i := range handles {
			handles[i] = table.Insert(i)
		}
		for i := 0; i < len(handles); i += 2 {
			table.Remove(handles[i])
		}

		var seen []int
		for h, v := range table.All() {
			assert.True(t, table.Contains(h))
			seen = append(seen, v)
		}

		assert.Len(t, seen, 75)
		assert.Equal(t, 75, table.Len())
		for _, v := range seen {
			assert.Equal(t, 1, v%2)
		}
	})
}

func TestHandleString(t *testing.T) {
	assert.Equal(t, "screen", lemon.Screen.String())
	assert.Equal(t, "handle(nil)", lemon.Handle(0).String())

	var table lemon.Table[struct{}]
	h := table.Insert(struct{}{})
	assert.Equal(t, "handle(0#1)", h.String())
}
