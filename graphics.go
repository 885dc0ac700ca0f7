package ramune

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/plus3/ramune/internal/logging"
	"github.com/plus3/ramune/lemon"
)

// FrameStats describes the work done for one frame.
type FrameStats struct {
	Scopes    int
	DrawCalls int
	Vertices  int
	Submits   int
}

// Graphics is the drawing surface handed out with every Draw event.
//
// Everything is drawn into an HDR composite target first. When the frame
// ends the composite is resolved into an sRGB intermediary target and then
// copied to the screen.
type Graphics struct {
	dev lemon.Device
	enc *lemon.Encoder
	log *zap.Logger

	width, height int
	composite     lemon.Handle
	intermediary  lemon.Handle

	err   error
	stats FrameStats
	last  FrameStats
}

func newGraphics(dev lemon.Device) (*Graphics, error) {
	g := &Graphics{
		dev: dev,
		enc: lemon.NewEncoder(dev.Info()),
		log: logging.Named("graphics"),
	}
	w, h := dev.Size()
	if err := g.resize(w, h); err != nil {
		return nil, err
	}
	return g, nil
}

// Size returns the size of the drawing surface in pixels.
func (g *Graphics) Size() (width, height int) {
	return g.width, g.height
}

// Stats returns the statistics of the last presented frame.
func (g *Graphics) Stats() FrameStats {
	return g.last
}

// Device returns the lemon device the graphics render with.
func (g *Graphics) Device() lemon.Device {
	return g.dev
}

// Clear fills the whole frame with c. Shapes from scopes popped earlier in
// the frame are cleared too.
func (g *Graphics) Clear(c Color) {
	g.enc.Clear(g.composite, c.lemon())
	g.enc.Clear(g.intermediary, c.lemon())
}

// Push opens a root scope with depth 0, color White and no translation.
// Its shapes reach the frame when it is popped.
func (g *Graphics) Push() *Scope {
	return newScope(g)
}

// resize recreates the offscreen targets. Zero sizes are ignored so a
// minimised window keeps its last targets.
func (g *Graphics) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if width == g.width && height == g.height && g.composite != 0 {
		return nil
	}

	composite, err := g.dev.NewTarget(width, height, lemon.FormatRGBA16F)
	if err != nil {
		return fmt.Errorf("ramune: create composite target: %w", err)
	}
	intermediary, err := g.dev.NewTarget(width, height, lemon.FormatSRGBA8)
	if err != nil {
		return multierr.Append(
			fmt.Errorf("ramune: create intermediary target: %w", err),
			g.dev.Dispose(composite),
		)
	}
	old := g.release()

	g.composite, g.intermediary = composite, intermediary
	g.width, g.height = width, height
	g.enc.Viewport(width, height)

	g.log.Debug("targets recreated",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("composite", composite),
		zap.Stringer("intermediary", intermediary),
	)
	return old
}

// release disposes both targets.
func (g *Graphics) release() error {
	var err error
	if g.composite != 0 {
		err = multierr.Append(err, g.dev.Dispose(g.composite))
	}
	if g.intermediary != 0 {
		err = multierr.Append(err, g.dev.Dispose(g.intermediary))
	}
	g.composite, g.intermediary = 0, 0
	return err
}

func (g *Graphics) beginFrame() {
	g.err = nil
	g.stats = FrameStats{}
}

// endFrame presents the frame and returns the first error of the frame.
func (g *Graphics) endFrame() error {
	g.enc.Blit(g.composite, g.intermediary)
	g.enc.Blit(g.intermediary, lemon.Screen)
	g.flush()
	g.last = g.stats
	return g.err
}

// draw encodes vertices into the composite target and submits everything
// recorded so far, keeping Clear and Draw calls in call order.
func (g *Graphics) draw(vertices []lemon.Vertex) {
	before := g.enc.Len()
	g.enc.Draw(g.composite, vertices)
	g.stats.Scopes++
	g.stats.DrawCalls += g.enc.Len() - before
	g.stats.Vertices += len(vertices)
	g.flush()
}

func (g *Graphics) flush() {
	list, err := g.enc.Finish()
	if err != nil {
		g.fail(err)
		return
	}
	if list.Len() == 0 || g.err != nil {
		return
	}
	g.stats.Submits++
	g.fail(g.dev.Submit(list))
}

// fail keeps the first error of the frame.
func (g *Graphics) fail(err error) {
	if err != nil && g.err == nil {
		g.err = err
		g.log.Error("frame failed", zap.Error(err))
	}
}
