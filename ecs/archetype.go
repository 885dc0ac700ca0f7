package ecs

import (
	"iter"
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype stores every entity that has exactly one set of component
// types.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column

	alive []bool
	free  []uint32
	count int

	refs *intmap.Map[Entity, weak.Pointer[Ref]]
}

func newArchetype(id uint32, types []reflect.Type, columns []column) *Archetype {
	return &Archetype{
		id:      id,
		types:   types,
		columns: columns,
		refs:    intmap.New[Entity, weak.Pointer[Ref]](16),
	}
}

// ID returns the archetype's id, the upper half of its entities.
func (a *Archetype) ID() uint32 { return a.id }

// Types returns the component types, sorted.
func (a *Archetype) Types() []reflect.Type { return a.types }

// Len returns the number of live entities.
func (a *Archetype) Len() int { return a.count }

// Has reports whether the archetype stores t.
func (a *Archetype) Has(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

func (a *Archetype) index(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// Entities iterates the live entities in slot order.
func (a *Archetype) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for slot, ok := range a.alive {
			if ok && !yield(newEntity(a.id, uint32(slot))) {
				return
			}
		}
	}
}

func (a *Archetype) live(slot uint32) bool {
	return int(slot) < len(a.alive) && a.alive[slot]
}

// add stores one entity. components must hold exactly one value of each
// of the archetype's types.
func (a *Archetype) add(components []any) uint32 {
	var slot uint32
	if n := len(a.free); n > 0 {
		slot = a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[slot] = true
	} else {
		slot = uint32(len(a.alive))
		a.alive = append(a.alive, true)
	}
	for _, c := range components {
		a.columns[a.index(componentType(c))].set(slot, c)
	}
	a.count++
	return slot
}

// remove frees slot. The entity's Ref, if any, is handed back so the
// caller can move or kill it.
func (a *Archetype) remove(slot uint32) *Ref {
	for _, c := range a.columns {
		c.clear(slot)
	}
	a.alive[slot] = false
	a.free = append(a.free, slot)
	a.count--

	e := newEntity(a.id, slot)
	w, ok := a.refs.Get(e)
	if !ok {
		return nil
	}
	a.refs.Del(e)
	return w.Value()
}

// values copies the components of slot, as pointers, except skip.
func (a *Archetype) values(slot uint32, skip reflect.Type) []any {
	out := make([]any, 0, len(a.types))
	for i, t := range a.types {
		if t == skip {
			continue
		}
		out = append(out, reflect.NewAt(t, a.columns[i].ptr(slot)).Interface())
	}
	return out
}

func (a *Archetype) ref(e Entity) *Ref {
	if w, ok := a.refs.Get(e); ok {
		if r := w.Value(); r != nil {
			return r
		}
	}
	r := &Ref{entity: e}
	a.refs.Put(e, weak.Make(r))
	return r
}

func (a *Archetype) adopt(e Entity, r *Ref) {
	if r == nil {
		return
	}
	r.entity = e
	a.refs.Put(e, weak.Make(r))
}
