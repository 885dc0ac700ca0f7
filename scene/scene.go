package scene

import (
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/ramune"
	"github.com/plus3/ramune/ecs"
	"github.com/plus3/ramune/internal/logging"
)

// Stats describes how systems spent their time.
type Stats struct {
	SystemCount int
	TotalRuns   int64
	Systems     []SystemStats
	// Entities is the number of live entities in the storage.
	Entities int
}

// SystemStats describes the runs of a single system.
type SystemStats struct {
	Name          string
	Runs          int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type entry struct {
	sys     System
	name    string
	queries []ecs.Executor

	runs  int64
	min   time.Duration
	max   time.Duration
	last  time.Duration
	total time.Duration
}

func (e *entry) execute() {
	for _, q := range e.queries {
		q.Execute()
	}
}

// Scene runs systems in registration order.
type Scene struct {
	// Background is the color the screen is cleared to before drawing.
	Background ramune.Color

	ctx      *ramune.Context
	storage  *ecs.Storage
	entries  []*entry
	commands Commands
	log      *zap.Logger
}

// New returns an empty scene for the game owning ctx, with a fresh
// storage.
func New(ctx *ramune.Context) *Scene {
	return NewWithStorage(ctx, ecs.NewStorage())
}

// NewWithStorage returns an empty scene over an existing storage.
func NewWithStorage(ctx *ramune.Context, storage *ecs.Storage) *Scene {
	return &Scene{
		Background: ramune.Black,
		ctx:        ctx,
		storage:    storage,
		log:        logging.Named("scene"),
	}
}

// Storage returns the entity storage systems run against.
func (s *Scene) Storage() *ecs.Storage {
	return s.storage
}

// Register appends sys and binds its Query and Singleton fields to the
// scene's storage. Systems must be comparable, usually pointers, so they
// can be removed again.
func (s *Scene) Register(sys System) {
	t := reflect.TypeOf(sys)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.entries = append(s.entries, &entry{
		sys:     sys,
		name:    t.Name(),
		queries: ecs.Bind(sys, s.storage),
		min:     time.Duration(1<<63 - 1),
	})
	s.log.Debug("system registered", zap.String("system", t.Name()))
}

// Remove drops the first registration of sys and reports whether it was
// found.
func (s *Scene) Remove(sys System) bool {
	i := slices.IndexFunc(s.entries, func(e *entry) bool { return e.sys == sys })
	if i < 0 {
		return false
	}
	s.log.Debug("system removed", zap.String("system", s.entries[i].name))
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// Systems returns the registered systems in order.
func (s *Scene) Systems() []System {
	out := make([]System, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.sys
	}
	return out
}

// Handle is a ramune poll callback.
func (s *Scene) Handle(ev ramune.Event) {
	switch e := ev.(type) {
	case ramune.Update:
		s.Once(e.Delta, e.Tick)
	case ramune.Draw:
		s.Draw(e.Graphics)
	}
}

// Once runs every system once and then applies queued commands.
func (s *Scene) Once(dt time.Duration, tick uint64) {
	frame := &Frame{
		Delta:    dt,
		Tick:     tick,
		Context:  s.ctx,
		Storage:  s.storage,
		Commands: &s.commands,
	}

	for _, e := range slices.Clone(s.entries) {
		start := time.Now()
		e.execute()
		e.sys.Update(frame)
		d := time.Since(start)

		e.runs++
		e.last = d
		e.total += d
		e.min = min(e.min, d)
		e.max = max(e.max, d)
	}

	s.commands.flush(s)
}

// Draw clears to Background and lets every Renderer draw, in registration
// order, into children of one root scope.
func (s *Scene) Draw(g *ramune.Graphics) {
	g.Clear(s.Background)
	root := g.Push()
	for _, e := range s.entries {
		r, ok := e.sys.(Renderer)
		if !ok {
			continue
		}
		e.execute()
		child := root.Push()
		r.Draw(child)
		child.Pop()
	}
	root.Pop()
}

// Stats returns timing statistics for the registered systems.
func (s *Scene) Stats() *Stats {
	stats := &Stats{
		SystemCount: len(s.entries),
		Systems:     make([]SystemStats, len(s.entries)),
		Entities:    s.storage.Len(),
	}
	for i, e := range s.entries {
		var avg time.Duration
		if e.runs > 0 {
			avg = e.total / time.Duration(e.runs)
		}
		minimum := e.min
		if e.runs == 0 {
			minimum = 0
		}
		stats.Systems[i] = SystemStats{
			Name:          e.name,
			Runs:          e.runs,
			MinDuration:   minimum,
			MaxDuration:   e.max,
			AvgDuration:   avg,
			LastDuration:  e.last,
			TotalDuration: e.total,
		}
		stats.TotalRuns += e.runs
	}
	return stats
}
