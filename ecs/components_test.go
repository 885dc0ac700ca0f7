package ecs_test

import "github.com/plus3/ramune/ecs"

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current, Max int
}

type Score int32

type Player struct{}

func newStorage() *ecs.Storage {
	s := ecs.NewStorage()
	ecs.Register[Position](s)
	ecs.Register[Velocity](s)
	ecs.Register[Health](s)
	ecs.Register[Score](s)
	ecs.Register[Player](s)
	return s
}
