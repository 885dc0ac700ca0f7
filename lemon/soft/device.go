// Package soft implements a lemon.Device that renders on the CPU.
//
// It needs no window or GPU, which makes it the device behind headless runs,
// screenshots and tests. Triangles are flat shaded with the color of their
// first vertex, and every format is stored as 8-bit RGBA.
package soft

import (
	"image"

	"github.com/gogpu/gg"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon"
)

const maxVertices = 3 * 4096

type target struct {
	dc     *gg.Context
	format lemon.Format
}

// Device is a CPU lemon.Device.
type Device struct {
	screen  *gg.Context
	targets lemon.Table[*target]

	viewWidth  int
	viewHeight int
	closed     bool
}

// New returns a device whose screen is width×height pixels.
func New(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, lemon.ErrInvalidSize
	}
	logging.Named("lemon.soft").Info("device created", zap.Int("width", width), zap.Int("height", height))
	return &Device{
		screen:     gg.NewContext(width, height),
		viewWidth:  width,
		viewHeight: height,
	}, nil
}

func (d *Device) Info() lemon.Info {
	return lemon.Info{Name: "soft", MaxVertices: maxVertices}
}

func (d *Device) Size() (int, int) {
	return d.screen.Width(), d.screen.Height()
}

func (d *Device) Resize(width, height int) error {
	if d.closed {
		return lemon.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return lemon.ErrInvalidSize
	}
	if width == d.screen.Width() && height == d.screen.Height() {
		return nil
	}
	old := d.screen
	d.screen = gg.NewContext(width, height)
	return old.Close()
}

func (d *Device) NewTarget(width, height int, format lemon.Format) (lemon.Handle, error) {
	if d.closed {
		return 0, lemon.ErrClosed
	}
	if err := lemon.CheckSize(width, height, format); err != nil {
		return 0, err
	}
	return d.targets.Insert(&target{dc: gg.NewContext(width, height), format: format}), nil
}

func (d *Device) TargetSize(h lemon.Handle) (int, int, error) {
	dc, err := d.resolve(h)
	if err != nil {
		return 0, 0, err
	}
	return dc.Width(), dc.Height(), nil
}

func (d *Device) Dispose(h lemon.Handle) error {
	if d.closed {
		return lemon.ErrClosed
	}
	t, ok := d.targets.Remove(h)
	if !ok {
		return lemon.ErrInvalidHandle
	}
	return t.dc.Close()
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
		return nil

	case lemon.Clear:
		dc, err := d.resolve(c.Target)
		if err != nil {
			return err
		}
		dc.ClearWithColor(toRGBA(c.Color))
		return nil

	case lemon.Draw:
		dc, err := d.resolve(c.Target)
		if err != nil {
			return err
		}
		return d.fill(dc, c.Vertices)

	case lemon.Blit:
		src, err := d.resolve(c.Src)
		if err != nil {
			return err
		}
		dst, err := d.resolve(c.Dst)
		if err != nil {
			return err
		}
		dst.Clear()
		dst.DrawImageEx(gg.ImageBufFromImage(src.Image()), gg.DrawImageOptions{
			DstWidth:      float64(dst.Width()),
			DstHeight:     float64(dst.Height()),
			Interpolation: gg.InterpNearest,
			Opacity:       1,
			BlendMode:     gg.BlendNormal,
		})
		return nil
	}
	return nil
}

// fill draws runs of same-colored triangles as a single path so the shared
// edges of a quad do not leave anti-aliasing seams.
func (d *Device) fill(dc *gg.Context, vs []lemon.Vertex) error {
	sx := float64(dc.Width()) / float64(d.viewWidth)
	sy := float64(dc.Height()) / float64(d.viewHeight)

	for start := 0; start < len(vs); {
		first := vs[start]
		end := start + 3
		for end < len(vs) && sameColor(vs[end], first) {
			end += 3
		}

		dc.ClearPath()
		dc.SetRGBA(float64(first.R), float64(first.G), float64(first.B), float64(first.A))
		for i := start; i < end; i += 3 {
			dc.MoveTo(float64(vs[i].X)*sx, float64(vs[i].Y)*sy)
			dc.LineTo(float64(vs[i+1].X)*sx, float64(vs[i+1].Y)*sy)
			dc.LineTo(float64(vs[i+2].X)*sx, float64(vs[i+2].Y)*sy)
			dc.ClosePath()
		}
		if err := dc.Fill(); err != nil {
			return err
		}
		start = end
	}
	return nil
}

func (d *Device) Readback(h lemon.Handle) (*image.RGBA, error) {
	dc, err := d.resolve(h)
	if err != nil {
		return nil, err
	}
	src := dc.Image()
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, nil
	}
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out, nil
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	err := lemon.ReleaseAll("soft", &d.targets, func(t *target) error {
		return t.dc.Close()
	})
	if cerr := d.screen.Close(); err == nil {
		err = cerr
	}
	return err
}

func (d *Device) resolve(h lemon.Handle) (*gg.Context, error) {
	if d.closed {
		return nil, lemon.ErrClosed
	}
	if h == lemon.Screen {
		return d.screen, nil
	}
	t, ok := d.targets.Get(h)
	if !ok {
		return nil, lemon.ErrInvalidHandle
	}
	return t.dc, nil
}

func sameColor(a, b lemon.Vertex) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B && a.A == b.A
}

func toRGBA(c lemon.Color) gg.RGBA {
	return gg.RGBA{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

var _ lemon.Device = (*Device)(nil)
