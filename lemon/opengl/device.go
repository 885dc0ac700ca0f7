// Package opengl implements a lemon.Device on OpenGL 3.3 core.
//
// The device renders with two programs: composite draws colored triangles
// in pixel coordinates, swapchain copies a target's texture over a whole
// destination. Every target is a framebuffer with a texture attached.
//
// All methods must be called on the goroutine, locked to its OS thread,
// that owns the current GL context.
package opengl

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon"
)

const maxVertices = 3 * 8192

type target struct {
	fbo, tex      uint32
	width, height int
	format        lemon.Format
}

func (t *target) release() error {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.tex)
	return nil
}

// Device is an OpenGL lemon.Device.
type Device struct {
	composite *program
	swapchain *program
	vao       uint32
	vbo       uint32
	blitVAO   uint32

	targets lemon.Table[*target]

	width, height         int
	viewWidth, viewHeight int
	closed                bool
	log                   *zap.Logger
}

// New loads GL entry points for the current context and builds the
// device. width and height are the framebuffer size of the window.
func New(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, lemon.ErrInvalidSize
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: init: %w", err)
	}

	d := &Device{
		width:      width,
		height:     height,
		viewWidth:  width,
		viewHeight: height,
		log:        logging.Named("lemon.opengl"),
	}

	var err error
	d.composite, err = newProgram(compositeVertex, compositeFragment,
		[]string{"aPos", "aColor"}, []string{"uViewport"})
	if err != nil {
		return nil, err
	}
	d.swapchain, err = newProgram(swapchainVertex, swapchainFragment,
		nil, []string{"uSampler"})
	if err != nil {
		d.composite.dispose()
		return nil, err
	}

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, lemon.VertexSize, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, lemon.VertexSize, 2*4)

	// Core profiles draw nothing without a bound VAO, even for the
	// attribute-less blit.
	gl.GenVertexArrays(1, &d.blitVAO)
	gl.BindVertexArray(0)

	d.log.Info("device created",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return d, nil
}

func (d *Device) Info() lemon.Info {
	return lemon.Info{Name: "opengl", MaxVertices: maxVertices}
}

func (d *Device) Size() (int, int) {
	return d.width, d.height
}

// Resize records the new size of the default framebuffer.
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

	internal, typ := textureFormat(format)
	t := &target{width: width, height: height, format: format}

	gl.GenTextures(1, &t.tex)
	gl.BindTexture(gl.TEXTURE_2D, t.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(width), int32(height), 0, gl.RGBA, typ, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.tex, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		t.release()
		return 0, fmt.Errorf("opengl: %s framebuffer incomplete (status 0x%x): %w", format, status, lemon.ErrUnsupportedFormat)
	}
	return d.targets.Insert(t), nil
}

func textureFormat(f lemon.Format) (internal int32, typ uint32) {
	switch f {
	case lemon.FormatSRGBA8:
		return gl.SRGB8_ALPHA8, gl.UNSIGNED_BYTE
	case lemon.FormatRGBA16F:
		return gl.RGBA16F, gl.HALF_FLOAT
	default:
		return gl.RGBA8, gl.UNSIGNED_BYTE
	}
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
	return t.width, t.height, nil
}

func (d *Device) Dispose(h lemon.Handle) error {
	if d.closed {
		return lemon.ErrClosed
	}
	t, ok := d.targets.Remove(h)
	if !ok {
		return lemon.ErrInvalidHandle
	}
	return t.release()
}

func (d *Device) Submit(list *lemon.CommandList) error {
	if d.closed {
		return lemon.ErrClosed
	}
	err := lemon.Execute(list, d.exec)
	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return err
}

func (d *Device) exec(cmd lemon.Command) error {
	switch c := cmd.(type) {
	case lemon.Viewport:
		d.viewWidth, d.viewHeight = c.Width, c.Height
		return nil

	case lemon.Clear:
		if err := d.bind(c.Target); err != nil {
			return err
		}
		gl.Disable(gl.FRAMEBUFFER_SRGB)
		gl.ClearColor(c.Color.R, c.Color.G, c.Color.B, c.Color.A)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		return nil

	case lemon.Draw:
		if err := d.bind(c.Target); err != nil {
			return err
		}
		if len(c.Vertices) == 0 {
			return nil
		}
		gl.Disable(gl.FRAMEBUFFER_SRGB)
		gl.Enable(gl.BLEND)
		gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

		d.composite.use()
		gl.Uniform2f(d.composite.uniform("uViewport"), float32(d.viewWidth), float32(d.viewHeight))
		gl.BindVertexArray(d.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(c.Vertices)*lemon.VertexSize, gl.Ptr(c.Vertices), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(c.Vertices)))
		return nil

	case lemon.Blit:
		if c.Src == lemon.Screen {
			return fmt.Errorf("opengl: blit from screen: %w", lemon.ErrInvalidHandle)
		}
		src, ok := d.targets.Get(c.Src)
		if !ok {
			return lemon.ErrInvalidHandle
		}
		if err := d.bind(c.Dst); err != nil {
			return err
		}
		if dst, ok := d.targets.Get(c.Dst); ok && dst.format == lemon.FormatSRGBA8 {
			gl.Enable(gl.FRAMEBUFFER_SRGB)
		} else {
			gl.Disable(gl.FRAMEBUFFER_SRGB)
		}
		gl.Disable(gl.BLEND)

		d.swapchain.use()
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, src.tex)
		gl.Uniform1i(d.swapchain.uniform("uSampler"), 0)
		gl.BindVertexArray(d.blitVAO)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return nil
	}
	return fmt.Errorf("opengl: unsupported command %T", cmd)
}

// bind makes h the draw framebuffer and sets the GL viewport to its size.
func (d *Device) bind(h lemon.Handle) error {
	if h == lemon.Screen {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(d.width), int32(d.height))
		return nil
	}
	t, ok := d.targets.Get(h)
	if !ok {
		return lemon.ErrInvalidHandle
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
	return nil
}

// Readback reads a target, or the back buffer for lemon.Screen, into an
// image with the origin at the top-left.
func (d *Device) Readback(h lemon.Handle) (*image.RGBA, error) {
	if d.closed {
		return nil, lemon.ErrClosed
	}
	w, ht, err := d.TargetSize(h)
	if err != nil {
		return nil, err
	}
	if err := d.bind(h); err != nil {
		return nil, err
	}
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	img := image.NewRGBA(image.Rect(0, 0, w, ht))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(ht), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	// GL rows start at the bottom.
	row := make([]byte, img.Stride)
	for y := 0; y < ht/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(ht-1-y)*img.Stride : (ht-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return img, nil
}

// Close releases every GL object the device created. The GL context itself
// belongs to the caller.
func (d *Device) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	err := lemon.ReleaseAll("opengl", &d.targets, (*target).release)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteVertexArrays(1, &d.blitVAO)
	d.composite.dispose()
	d.swapchain.dispose()
	if code := gl.GetError(); code != gl.NO_ERROR {
		err = multierr.Append(err, fmt.Errorf("opengl: error 0x%x during close", code))
	}
	d.log.Info("device closed")
	return err
}

var _ lemon.Device = (*Device)(nil)
