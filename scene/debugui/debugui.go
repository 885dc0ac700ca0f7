// Package debugui draws a Dear ImGui debug overlay over a scene.
//
// Widgets are entities carrying an ImguiItem. The ImguiSystem defers their
// render functions to the end of every update, which lands them between
// the BeginFrame and EndFrame of the window's overlay hook.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ramune/ecs"
	"github.com/plus3/ramune/scene"
)

// ImguiItem is a component that holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Systems that read input can check it to stay out of the way.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queues every ImguiItem for rendering and refreshes the
// ImguiInputState singleton.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Update(frame *scene.Frame) {
	io := imgui.CurrentIO()
	state := s.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range s.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// Register adds the debug UI components to s.
func Register(s *ecs.Storage) {
	ecs.Register[ImguiItem](s)
}
