// Package ebitengine implements a lemon.Device on top of Ebitengine images.
//
// Ebitengine owns the GPU context, so the Screen target only exists while a
// frame is being drawn: the window runner hands the frame's screen image to
// SetScreen before submitting and clears it afterwards.
package ebitengine

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/ramune/lemon"
)

// ErrNoScreen is returned when a command targets the Screen outside a frame.
var ErrNoScreen = errors.New("ebitengine: screen is only available while drawing a frame")

// ebiten indexes vertices with uint16.
const maxVertices = 65535 - 65535%3

type target struct {
	img    *ebiten.Image
	format lemon.Format
}

// Device is a lemon.Device backed by *ebiten.Image targets.
type Device struct {
	screen  *ebiten.Image
	width   int
	height  int
	targets lemon.Table[*target]

	white      *ebiten.Image
	viewWidth  int
	viewHeight int

	vertices []ebiten.Vertex
	indices  []uint16
	closed   bool
}

// New returns a device for a screen of width×height pixels.
func New(width, height int) *Device {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	return &Device{
		width:      width,
		height:     height,
		white:      base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		viewWidth:  width,
		viewHeight: height,
	}
}

// SetScreen sets the image Screen commands render into. Pass nil when the
// frame is over.
func (d *Device) SetScreen(screen *ebiten.Image) {
	d.screen = screen
}

func (d *Device) Info() lemon.Info {
	return lemon.Info{Name: "ebitengine", MaxVertices: maxVertices}
}

func (d *Device) Size() (int, int) {
	return d.width, d.height
}

func (d *Device) Resize(width, height int) error {
	if d.closed {
		return lemon.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return lemon.ErrInvalidSize
	}
	d.width, d.height = width, height
	return nil
}

func (d *Device) NewTarget(width, height int, format lemon.Format) (lemon.Handle, error) {
	if d.closed {
		return 0, lemon.ErrClosed
	}
	if err := lemon.CheckSize(width, height, format); err != nil {
		return 0, err
	}
	img := ebiten.NewImageWithOptions(image.Rect(0, 0, width, height), &ebiten.NewImageOptions{
		Unmanaged: true,
	})
	return d.targets.Insert(&target{img: img, format: format}), nil
}

func (d *Device) TargetSize(h lemon.Handle) (int, int, error) {
	if d.closed {
		return 0, 0, lemon.ErrClosed
	}
	if h == lemon.Screen {
		return d.width, d.height, nil
	}
	t, ok := d.targets.Get(h)
	if !ok {
		return 0, 0, lemon.ErrInvalidHandle
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func (d *Device) Dispose(h lemon.Handle) error {
	if d.closed {
		return lemon.ErrClosed
	}
	t, ok := d.targets.Remove(h)
	if !ok {
		return lemon.ErrInvalidHandle
	}
	t.img.Deallocate()
	return nil
}

func (d *Device) Submit(list *lemon.CommandList) error {
	if d.closed {
		return lemon.ErrClosed
	}
	return lemon.Execute(list, d.exec)
}

func (d *Device) exec(cmd lemon.Command) error {
	switch c := cmd.(type) {
	case lemon.Viewport:
		d.viewWidth, d.viewHeight = c.Width, c.Height

	case lemon.Clear:
		img, err := d.resolve(c.Target)
		if err != nil {
			return err
		}
		img.Fill(toNRGBA(c.Color))

	case lemon.Draw:
		img, err := d.resolve(c.Target)
		if err != nil {
			return err
		}
		d.drawTriangles(img, c.Vertices)

	case lemon.Blit:
		src, err := d.resolve(c.Src)
		if err != nil {
			return err
		}
		dst, err := d.resolve(c.Dst)
		if err != nil {
			return err
		}
		sb, db := src.Bounds(), dst.Bounds()
		op := &ebiten.DrawImageOptions{
			Filter: ebiten.FilterNearest,
			Blend:  ebiten.BlendCopy,
		}
		op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
		dst.DrawImage(src, op)
	}
	return nil
}

func (d *Device) drawTriangles(img *ebiten.Image, vs []lemon.Vertex) {
	b := img.Bounds()
	sx := float32(b.Dx()) / float32(d.viewWidth)
	sy := float32(b.Dy()) / float32(d.viewHeight)

	d.vertices = d.vertices[:0]
	d.indices = d.indices[:0]
	for i, v := range vs {
		d.vertices = append(d.vertices, ebiten.Vertex{
			DstX:   v.X * sx,
			DstY:   v.Y * sy,
			SrcX:   1,
			SrcY:   1,
			ColorR: v.R,
			ColorG: v.G,
			ColorB: v.B,
			ColorA: v.A,
		})
		d.indices = append(d.indices, uint16(i))
	}
	img.DrawTriangles(d.vertices, d.indices, d.white, &ebiten.DrawTrianglesOptions{})
}

func (d *Device) Readback(h lemon.Handle) (*image.RGBA, error) {
	img, err := d.resolve(h)
	if err != nil {
		return nil, err
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	img.ReadPixels(out.Pix)
	return out, nil
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	d.screen = nil
	return lemon.ReleaseAll("ebitengine", &d.targets, func(t *target) error {
		t.img.Deallocate()
		return nil
	})
}

func (d *Device) resolve(h lemon.Handle) (*ebiten.Image, error) {
	if d.closed {
		return nil, lemon.ErrClosed
	}
	if h == lemon.Screen {
		if d.screen == nil {
			return nil, ErrNoScreen
		}
		return d.screen, nil
	}
	t, ok := d.targets.Get(h)
	if !ok {
		return nil, lemon.ErrInvalidHandle
	}
	return t.img, nil
}

func toNRGBA(c lemon.Color) color.NRGBA {
	return color.NRGBA{
		R: unit8(c.R),
		G: unit8(c.G),
		B: unit8(c.B),
		A: unit8(c.A),
	}
}

func unit8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

var _ lemon.Device = (*Device)(nil)
