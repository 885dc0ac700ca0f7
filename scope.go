package ramune

import (
	"math"
	"slices"

	"github.com/plus3/ramune/lemon"
)

// CircleSegments is the number of triangles DrawCircle uses.
const CircleSegments = 32

// Scope collects shapes drawn with a shared depth, color and translation.
//
// Shapes are not drawn immediately. When the root scope is popped its
// shapes, together with those of all its children, are sorted by depth
// (higher depth on top, equal depths in call order) and sent to the device
// as one vertex stream.
type Scope struct {
	g      *Graphics
	batch  *batch
	parent *Scope

	depth  float32
	color  Color
	dx, dy float32
	popped bool
}

// batch is shared by a root scope and all of its children.
type batch struct {
	shapes   []shape
	vertices []lemon.Vertex
	popped   bool
}

// shape is a run of triangles in batch.vertices.
type shape struct {
	depth        float32
	start, count int
}

func newScope(g *Graphics) *Scope {
	return &Scope{
		g:     g,
		batch: &batch{},
		color: White,
	}
}

// Push opens a child scope that starts with this scope's depth, color and
// translation.
func (s *Scope) Push() *Scope {
	s.check()
	return &Scope{
		g:      s.g,
		batch:  s.batch,
		parent: s,
		depth:  s.depth,
		color:  s.color,
		dx:     s.dx,
		dy:     s.dy,
	}
}

// Pop closes the scope. Popping a child hands its shapes to the parent;
// popping the root draws everything. Popping twice does nothing.
func (s *Scope) Pop() {
	if s.popped {
		return
	}
	s.popped = true
	if s.parent != nil {
		return
	}
	b := s.batch
	b.popped = true
	if len(b.shapes) == 0 {
		return
	}
	slices.SortStableFunc(b.shapes, func(a, c shape) int {
		switch {
		case a.depth < c.depth:
			return -1
		case a.depth > c.depth:
			return 1
		}
		return 0
	})
	out := make([]lemon.Vertex, 0, len(b.vertices))
	for _, sh := range b.shapes {
		out = append(out, b.vertices[sh.start:sh.start+sh.count]...)
	}
	b.shapes, b.vertices = nil, nil
	s.g.draw(out)
}

// SetDepth sets the depth of shapes drawn from now on.
func (s *Scope) SetDepth(depth float32) {
	s.depth = depth
}

// SetColor sets the color of shapes drawn from now on.
func (s *Scope) SetColor(c Color) {
	s.color = c
}

func (s *Scope) Depth() float32 { return s.depth }
func (s *Scope) Color() Color   { return s.color }

// Translate moves the origin of shapes drawn from now on.
func (s *Scope) Translate(dx, dy float32) {
	s.dx += dx
	s.dy += dy
}

// DrawRect draws an axis-aligned rectangle with its top-left corner at x, y.
func (s *Scope) DrawRect(x, y, width, height float32) {
	s.check()
	if width <= 0 || height <= 0 {
		return
	}
	x1, y1 := x+width, y+height
	s.add(
		x, y, x, y1, x1, y,
		x1, y, x, y1, x1, y1,
	)
}

// DrawTriangle draws a filled triangle.
func (s *Scope) DrawTriangle(x1, y1, x2, y2, x3, y3 float32) {
	s.check()
	s.add(x1, y1, x2, y2, x3, y3)
}

// DrawLine draws a segment as a quad of the given thickness.
func (s *Scope) DrawLine(x1, y1, x2, y2, thickness float32) {
	s.check()
	dx, dy := x2-x1, y2-y1
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if thickness <= 0 || length == 0 {
		return
	}
	nx, ny := -dy/length*thickness/2, dx/length*thickness/2
	s.add(
		x1+nx, y1+ny, x1-nx, y1-ny, x2+nx, y2+ny,
		x2-nx, y2-ny, x2+nx, y2+ny, x1-nx, y1-ny,
	)
}

// DrawCircle draws a filled circle as a fan of CircleSegments triangles.
func (s *Scope) DrawCircle(cx, cy, radius float32) {
	s.check()
	if radius <= 0 {
		return
	}
	coords := make([]float32, 0, CircleSegments*6)
	step := 2 * math.Pi / CircleSegments
	for i := range CircleSegments {
		a0, a1 := step*float64(i), step*float64(i+1)
		coords = append(coords,
			cx, cy,
			cx+radius*float32(math.Cos(a0)), cy+radius*float32(math.Sin(a0)),
			cx+radius*float32(math.Cos(a1)), cy+radius*float32(math.Sin(a1)),
		)
	}
	s.add(coords...)
}

// add appends one shape from x, y pairs in scope space.
func (s *Scope) add(coords ...float32) {
	b := s.batch
	start := len(b.vertices)
	c := s.color
	for i := 0; i+1 < len(coords); i += 2 {
		b.vertices = append(b.vertices, lemon.Vertex{
			X: coords[i] + s.dx, Y: coords[i+1] + s.dy,
			R: c.R, G: c.G, B: c.B, A: c.A,
		})
	}
	b.shapes = append(b.shapes, shape{depth: s.depth, start: start, count: len(b.vertices) - start})
}

func (s *Scope) check() {
	if s.popped || s.batch.popped {
		panic("ramune: draw on a popped scope")
	}
}
