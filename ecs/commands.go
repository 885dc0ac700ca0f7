package ecs

import "reflect"

// Commands queues structural changes so systems can request them while
// iterating. Flush applies them.
type Commands struct {
	spawns  []spawnCommand
	deletes []Entity
	adds    []addCommand
	removes []removeCommand
	defers  []func()
}

type spawnCommand struct {
	components []any
	ref        *Ref
}

type addCommand struct {
	entity    Entity
	component any
}

type removeCommand struct {
	entity Entity
	typ    reflect.Type
}

// Spawn queues a new entity. The returned Ref resolves once flushed.
func (c *Commands) Spawn(components ...any) *Ref {
	ref := &Ref{}
	c.spawns = append(c.spawns, spawnCommand{components: components, ref: ref})
	return ref
}

// Delete queues the removal of e.
func (c *Commands) Delete(e Entity) {
	c.deletes = append(c.deletes, e)
}

// AddComponent queues adding component to e.
func (c *Commands) AddComponent(e Entity, component any) {
	c.adds = append(c.adds, addCommand{entity: e, component: component})
}

// RemoveComponent queues removing the component of type t from e.
func (c *Commands) RemoveComponent(e Entity, t reflect.Type) {
	c.removes = append(c.removes, removeCommand{entity: e, typ: t})
}

// Defer queues fn to run after the structural changes.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the queued commands to s in this order: deletes, component
// removals, component additions, spawns, deferred functions. An entity
// named by several commands is followed as it moves between archetypes.
// Commands for entities deleted earlier in the flush are dropped.
//
// Commands queued while flushing, for instance by a deferred function,
// stay queued for the next Flush.
func (c *Commands) Flush(s *Storage) {
	spawns, deletes, adds, removes, defers := c.spawns, c.deletes, c.adds, c.removes, c.defers
	c.spawns, c.deletes, c.adds, c.removes, c.defers = nil, nil, nil, nil, nil

	// Pin every entity named by a component change before anything moves,
	// so later commands find it wherever earlier ones put it.
	refs := make(map[Entity]*Ref, len(removes)+len(adds))
	pin := func(e Entity) {
		if _, ok := refs[e]; !ok {
			refs[e] = s.Ref(e)
		}
	}
	for _, cmd := range removes {
		pin(cmd.entity)
	}
	for _, cmd := range adds {
		pin(cmd.entity)
	}

	for _, e := range deletes {
		s.Delete(e)
	}
	for _, cmd := range removes {
		if e, ok := refs[cmd.entity].Entity(); ok {
			s.RemoveComponent(e, cmd.typ)
		}
	}
	for _, cmd := range adds {
		if e, ok := refs[cmd.entity].Entity(); ok {
			s.AddComponent(e, cmd.component)
		}
	}
	for _, cmd := range spawns {
		e := s.Spawn(cmd.components...)
		a, _ := s.lookup(e)
		a.adopt(e, cmd.ref)
	}
	for _, fn := range defers {
		fn()
	}
}
