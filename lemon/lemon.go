// Package lemon is ramune's graphics abstraction layer.
//
// A Device owns render targets and executes command lists. Callers never
// touch backend objects directly: targets are addressed by generational
// Handles, drawing is expressed as Commands recorded by an Encoder, and
// everything a device allocated is released when the device closes.
//
// Backends live in sub-packages: soft (CPU), ebitengine and opengl.
package lemon

import (
	"fmt"
	"image"
)

// Format is the pixel format of a render target.
type Format uint8

const (
	FormatRGBA8 Format = iota + 1
	FormatSRGBA8
	FormatRGBA16F
)

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "rgba8"
	case FormatSRGBA8:
		return "srgba8"
	case FormatRGBA16F:
		return "rgba16f"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f >= FormatRGBA8 && f <= FormatRGBA16F
}

// Color is a straight-alpha color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Vertex is a pixel-space position (origin top-left, y down) with a color.
type Vertex struct {
	X, Y       float32
	R, G, B, A float32
}

// VertexSize is the size of a Vertex in bytes as uploaded to GPU buffers.
const VertexSize = 6 * 4

// Info describes device capabilities.
type Info struct {
	Name string
	// MaxVertices is the largest vertex count a single Draw may carry.
	// Always a positive multiple of 3.
	MaxVertices int
}

// Device is a graphics backend.
//
// Devices are not safe for concurrent use; all calls must come from the
// goroutine that drives the frame loop.
type Device interface {
	Info() Info

	// Size returns the size of the Screen target.
	Size() (width, height int)

	// Resize informs the device that the Screen changed size.
	Resize(width, height int) error

	NewTarget(width, height int, format Format) (Handle, error)
	TargetSize(h Handle) (width, height int, err error)
	Dispose(h Handle) error

	// Submit executes the commands in order. On failure the commands
	// before the failing one have already executed.
	Submit(list *CommandList) error

	// Readback copies the contents of a target into a new image.
	Readback(h Handle) (*image.RGBA, error)

	// Close releases every resource still owned by the device.
	Close() error
}
