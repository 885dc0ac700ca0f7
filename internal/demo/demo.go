// Package demo holds the systems shared by ramune's commands.
package demo

import (
	"math/rand/v2"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/ecs"
	"github.com/plus3/ramune/input"
	"github.com/plus3/ramune/scene"
)

// Hello draws the white square of the classic hello example.
type Hello struct{}

func (Hello) Update(*scene.Frame) {}

func (Hello) Draw(s *ramune.Scope) {
	s.SetDepth(1000)
	s.DrawRect(50, 50, 50, 50)
}

// Quitter quits the game when Escape is pressed.
type Quitter struct{}

func (Quitter) Update(f *scene.Frame) {
	if f.Context != nil && f.Context.KeyPressed(input.KeyEscape) {
		f.Context.Quit()
	}
}

// Position is the top-left corner of a box, in pixels.
type Position struct{ X, Y float32 }

// Velocity is in pixels per second.
type Velocity struct{ X, Y float32 }

// Sprite is how a box looks.
type Sprite struct {
	Size  float32
	Depth float32
	Color ramune.Color
}

// Register adds the demo components to s.
func Register(s *ecs.Storage) {
	ecs.Register[Position](s)
	ecs.Register[Velocity](s)
	ecs.Register[Sprite](s)
}

// SpawnBoxes scatters n boxes over a width×height screen.
func SpawnBoxes(s *ecs.Storage, n, width, height int, rng *rand.Rand) {
	for range n {
		size := 4 + rng.Float32()*28
		s.Spawn(
			Position{
				X: rng.Float32() * (float32(width) - size),
				Y: rng.Float32() * (float32(height) - size),
			},
			Velocity{
				X: (rng.Float32()*2 - 1) * 200,
				Y: (rng.Float32()*2 - 1) * 200,
			},
			Sprite{
				Size:  size,
				Depth: float32(rng.IntN(8)),
				Color: ramune.RGBA(rng.Float32(), rng.Float32(), rng.Float32(), 0.5+rng.Float32()/2),
			},
		)
	}
}

type box struct {
	*Position
	*Velocity
	*Sprite
}

// Bouncer moves boxes around the screen, reflecting them off its edges.
type Bouncer struct {
	Boxes ecs.Query[box]

	Width, Height float32
}

// NewBouncer returns a bouncer for a width×height screen. The screen size
// follows the game's once it runs.
func NewBouncer(width, height int) *Bouncer {
	return &Bouncer{Width: float32(width), Height: float32(height)}
}

func (b *Bouncer) Update(f *scene.Frame) {
	if f.Context != nil {
		w, h := f.Context.Size()
		b.Width, b.Height = float32(w), float32(h)
	}
	dt := f.Seconds()
	for bx := range b.Boxes.Values() {
		p, v, size := bx.Position, bx.Velocity, bx.Sprite.Size
		p.X, v.X = bounce(p.X+v.X*dt, v.X, b.Width-size)
		p.Y, v.Y = bounce(p.Y+v.Y*dt, v.Y, b.Height-size)
	}
}

// bounce reflects a position that left [0, limit].
func bounce(pos, vel, limit float32) (float32, float32) {
	switch {
	case limit <= 0:
		return 0, vel
	case pos < 0:
		return min(-pos, limit), -vel
	case pos > limit:
		return max(2*limit-pos, 0), -vel
	}
	return pos, vel
}

func (b *Bouncer) Draw(s *ramune.Scope) {
	for bx := range b.Boxes.Values() {
		s.SetDepth(bx.Sprite.Depth)
		s.SetColor(bx.Sprite.Color)
		s.DrawRect(bx.Position.X, bx.Position.Y, bx.Sprite.Size, bx.Sprite.Size)
	}
}
