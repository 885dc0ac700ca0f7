package input_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/ramune/input"
)

func TestState(t *testing.T) {
	t.Run("pressed only on the tick it went down", func(t *testing.T) {
		s := input.NewState()
		s.Apply(input.KeyEvent{Key: input.KeySpace, Down: true})

		assert.True(t, s.Down(input.KeySpace))
		assert.True(t, s.Pressed(input.KeySpace))

		s.Advance()
		assert.True(t, s.Down(input.KeySpace))
		assert.False(t, s.Pressed(input.KeySpace))

		// key repeat must not restamp the press
		s.Apply(input.KeyEvent{Key: input.KeySpace, Down: true})
		assert.False(t, s.Pressed(input.KeySpace))

		s.Apply(input.KeyEvent{Key: input.KeySpace, Down: false})
		assert.False(t, s.Down(input.KeySpace))
	})

	t.Run("tap within one tick still counts as pressed", func(t *testing.T) {
		s := input.NewState()
		s.Apply(input.KeyEvent{Key: input.KeySpace, Down: true})
		s.Apply(input.KeyEvent{Key: input.KeySpace, Down: false})

		assert.False(t, s.Down(input.KeySpace))
		assert.True(t, s.Pressed(input.KeySpace))

		s.Advance()
		assert.False(t, s.Pressed(input.KeySpace))
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		s := input.NewState()
		s.Apply(input.KeyEvent{Key: input.KeyUnknown, Down: true})
		assert.False(t, s.Down(input.KeyUnknown))
	})

	t.Run("mouse", func(t *testing.T) {
		s := input.NewState()
		s.Apply(input.MouseMoveEvent{X: 3, Y: 4})
		x, y := s.Cursor()
		assert.Equal(t, 3.0, x)
		assert.Equal(t, 4.0, y)

		s.Apply(input.MouseButtonEvent{Button: input.MouseRight, Down: true, X: 5, Y: 6})
		assert.True(t, s.ButtonDown(input.MouseRight))
		assert.False(t, s.ButtonDown(input.MouseLeft))
		assert.False(t, s.ButtonDown(input.MouseButton(42)))
		x, y = s.Cursor()
		assert.Equal(t, 5.0, x)
		assert.Equal(t, 6.0, y)
	})

	t.Run("reset releases everything", func(t *testing.T) {
		s := input.NewState()
		s.Apply(input.KeyEvent{Key: input.KeyA, Down: true})
		s.Apply(input.MouseButtonEvent{Button: input.MouseLeft, Down: true})
		s.Reset()
		assert.False(t, s.Down(input.KeyA))
		assert.False(t, s.ButtonDown(input.MouseLeft))
	})
}

func TestHolders(t *testing.T) {
	var h input.Holders

	assert.True(t, h.Press(input.KeyShift), "left shift goes down")
	assert.False(t, h.Press(input.KeyShift), "right shift while left is held")
	assert.False(t, h.Release(input.KeyShift), "right shift released, left still held")
	assert.True(t, h.Release(input.KeyShift), "last holder released")

	assert.True(t, h.Release(input.KeyAlt), "stray release passes through")
	assert.True(t, h.Press(input.KeyAlt))
}

func TestKeyString(t *testing.T) {
	tests := map[input.Key]string{
		input.KeyA:      "A",
		input.KeyZ:      "Z",
		input.Key0:      "0",
		input.Key9:      "9",
		input.KeyF12:    "F12",
		input.KeyEscape: "Escape",
		input.Key(-1):   "Key(-1)",
	}
	for k, want := range tests {
		assert.Equal(t, want, k.String())
	}
	assert.Len(t, input.Keys(), 60)
	assert.Equal(t, "Middle", input.MouseMiddle.String())
}
