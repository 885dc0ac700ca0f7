// Package ecs stores game entities as sets of components grouped into
// archetypes, and offers typed views, cached queries and singletons over
// them.
//
// Component types must be registered with Register before use. Structural
// changes made while iterating (spawns, deletes, added or removed
// components) should go through Commands and be flushed between systems.
package ecs

import "fmt"

// Entity identifies a live entity. The upper 32 bits hold its archetype
// and the lower 32 bits its slot. The zero Entity is never valid.
//
// Adding or removing a component moves an entity to another archetype and
// so changes its Entity. Slots are reused after Delete. Hold a Ref to
// follow an entity across both.
type Entity uint64

func newEntity(archetype, slot uint32) Entity {
	return Entity(uint64(archetype)<<32 | uint64(slot))
}

// Archetype returns the id of the archetype the entity lives in.
func (e Entity) Archetype() uint32 { return uint32(e >> 32) }

// Slot returns the entity's position within its archetype.
func (e Entity) Slot() uint32 { return uint32(e) }

func (e Entity) String() string {
	if e == 0 {
		return "entity(nil)"
	}
	return fmt.Sprintf("entity(%d:%d)", e.Archetype(), e.Slot())
}

// Ref is a stable reference to an entity. It follows the entity when it
// changes archetype and reports it gone once deleted.
type Ref struct {
	entity Entity
}

// Entity returns the current Entity and whether it is still alive. Refs
// returned by Commands.Spawn resolve once the commands are flushed.
func (r *Ref) Entity() (Entity, bool) {
	if r == nil || r.entity == 0 {
		return 0, false
	}
	return r.entity, true
}
