// Package ebiten connects the debug UI to the Ebitengine window platform.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/ramune/platform/ebitenwin"
)

// ImguiBackend wraps the Ebitengine Dear ImGui backend as an
// ebitenwin.Overlay, so the window brackets every update with a Dear ImGui
// frame and draws it over the game.
type ImguiBackend struct {
	backend *ebitenbackend.EbitenBackend
}

// New creates the backend for a title window of width×height pixels.
func New(title string, width, height int) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{backend: b}
}

func (b *ImguiBackend) BeginFrame() { b.backend.BeginFrame() }

func (b *ImguiBackend) EndFrame() { b.backend.EndFrame() }

func (b *ImguiBackend) Draw(screen *ebiten.Image) { b.backend.Draw(screen) }

func (b *ImguiBackend) Layout(width, height int) { b.backend.Layout(width, height) }

var _ ebitenwin.Overlay = (*ImguiBackend)(nil)
