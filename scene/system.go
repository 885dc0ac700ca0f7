// Package scene organises a game as an ordered list of systems over an
// entity storage.
//
// A Scene plugs into ramune.Game.Poll through Handle: every Update runs the
// systems in registration order, every Draw clears the screen and lets each
// system that is also a Renderer draw into a shared scope.
//
// Systems declare what they read as exported ecs.Query and ecs.Singleton
// fields. Register binds them to the scene's storage and the scene executes
// a system's queries right before each Update or Draw of that system.
package scene

import (
	"time"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/ecs"
)

// System is game logic run once per Update.
type System interface {
	Update(frame *Frame)
}

// Renderer is implemented by systems that draw. Each renderer draws into
// its own child scope, so depth, color and translation changes stay local.
type Renderer interface {
	Draw(s *ramune.Scope)
}

// Frame is handed to every system during one Update.
type Frame struct {
	Delta    time.Duration
	Tick     uint64
	Context  *ramune.Context
	Storage  *ecs.Storage
	Commands *Commands
}

// Seconds returns Delta in seconds, handy for velocities.
func (f *Frame) Seconds() float32 {
	return float32(f.Delta.Seconds())
}
