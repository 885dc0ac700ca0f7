package glfwgl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/plus3/ramune/input"
)

var keymap = map[glfw.Key]input.Key{
	glfw.KeySpace:        input.KeySpace,
	glfw.KeyEnter:        input.KeyEnter,
	glfw.KeyKPEnter:      input.KeyEnter,
	glfw.KeyEscape:       input.KeyEscape,
	glfw.KeyTab:          input.KeyTab,
	glfw.KeyBackspace:    input.KeyBackspace,
	glfw.KeyUp:           input.KeyUp,
	glfw.KeyDown:         input.KeyDown,
	glfw.KeyLeft:         input.KeyLeft,
	glfw.KeyRight:        input.KeyRight,
	glfw.KeyLeftShift:    input.KeyShift,
	glfw.KeyRightShift:   input.KeyShift,
	glfw.KeyLeftControl:  input.KeyControl,
	glfw.KeyRightControl: input.KeyControl,
	glfw.KeyLeftAlt:      input.KeyAlt,
	glfw.KeyRightAlt:     input.KeyAlt,
}

var buttons = map[glfw.MouseButton]input.MouseButton{
	glfw.MouseButtonLeft:   input.MouseLeft,
	glfw.MouseButtonRight:  input.MouseRight,
	glfw.MouseButtonMiddle: input.MouseMiddle,
}

func init() {
	// GLFW key codes follow ASCII for letters and digits, and number F1
	// through F25 consecutively.
	for i := range glfw.Key(26) {
		keymap[glfw.KeyA+i] = input.KeyA + input.Key(i)
	}
	for i := range glfw.Key(10) {
		keymap[glfw.Key0+i] = input.Key0 + input.Key(i)
	}
	for i := range glfw.Key(12) {
		keymap[glfw.KeyF1+i] = input.KeyF1 + input.Key(i)
	}
}
