// Package lemontest provides a recording lemon.Device for tests.
package lemontest

import (
	"fmt"
	"image"
	"slices"

	"github.com/plus3/ramune/lemon"
)

// Target describes a target allocated on a Device.
type Target struct {
	Width, Height int
	Format        lemon.Format
}

// Device records everything submitted to it without rendering.
type Device struct {
	info   lemon.Info
	width  int
	height int

	targets lemon.Table[Target]
	lists   [][]lemon.Command
	closed  bool

	// SubmitErr, when set, is returned by the next Submit and cleared.
	SubmitErr error
	// Disposed lists every handle passed to a successful Dispose.
	Disposed []lemon.Handle
}

// NewDevice returns a recording device with a screen of the given size.
func NewDevice(width, height int) *Device {
	return &Device{
		info:   lemon.Info{Name: "lemontest", MaxVertices: 3 * 1024},
		width:  width,
		height: height,
	}
}

// SetMaxVertices changes the vertex limit reported by Info.
func (d *Device) SetMaxVertices(n int) {
	d.info.MaxVertices = n
}

func (d *Device) Info() lemon.Info { return d.info }

func (d *Device) Size() (int, int) { return d.width, d.height }

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
	return d.targets.Insert(Target{Width: width, Height: height, Format: format}), nil
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
	return t.Width, t.Height, nil
}

func (d *Device) Dispose(h lemon.Handle) error {
	if d.closed {
		return lemon.ErrClosed
	}
	if _, ok := d.targets.Remove(h); !ok {
		return lemon.ErrInvalidHandle
	}
	d.Disposed = append(d.Disposed, h)
	return nil
}

func (d *Device) Submit(list *lemon.CommandList) error {
	if d.closed {
		return lemon.ErrClosed
	}
	if err := d.SubmitErr; err != nil {
		d.SubmitErr = nil
		return err
	}
	err := lemon.Execute(list, func(cmd lemon.Command) error {
		for _, h := range handles(cmd) {
			if h != lemon.Screen && !d.targets.Contains(h) {
				return lemon.ErrInvalidHandle
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	d.lists = append(d.lists, slices.Clone(list.Commands()))
	return nil
}

func (d *Device) Readback(h lemon.Handle) (*image.RGBA, error) {
	w, ht, err := d.TargetSize(h)
	if err != nil {
		return nil, err
	}
	return image.NewRGBA(image.Rect(0, 0, w, ht)), nil
}

func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return lemon.ReleaseAll(d.info.Name, &d.targets, func(Target) error { return nil })
}

// Closed reports whether Close was called.
func (d *Device) Closed() bool { return d.closed }

// Live returns the number of targets not yet disposed.
func (d *Device) Live() int { return d.targets.Len() }

// Target returns the description of a live target.
func (d *Device) Target(h lemon.Handle) (Target, bool) {
	return d.targets.Get(h)
}

// Submissions returns every successfully submitted list, oldest first.
func (d *Device) Submissions() [][]lemon.Command {
	return d.lists
}

// Commands returns all submitted commands flattened in submission order.
func (d *Device) Commands() []lemon.Command {
	var out []lemon.Command
	for _, l := range d.lists {
		out = append(out, l...)
	}
	return out
}

// Draws returns the submitted Draw commands in order.
func (d *Device) Draws() []lemon.Draw {
	var out []lemon.Draw
	for _, cmd := range d.Commands() {
		if draw, ok := cmd.(lemon.Draw); ok {
			out = append(out, draw)
		}
	}
	return out
}

// Reset forgets recorded submissions.
func (d *Device) Reset() {
	d.lists = nil
	d.Disposed = nil
}

func handles(cmd lemon.Command) []lemon.Handle {
	switch c := cmd.(type) {
	case lemon.Clear:
		return []lemon.Handle{c.Target}
	case lemon.Draw:
		return []lemon.Handle{c.Target}
	case lemon.Blit:
		return []lemon.Handle{c.Src, c.Dst}
	case lemon.Viewport:
		return nil
	default:
		panic(fmt.Sprintf("lemontest: unknown command %T", cmd))
	}
}

var _ lemon.Device = (*Device)(nil)
