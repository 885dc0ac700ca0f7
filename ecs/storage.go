package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Storage owns the entities, archetypes and singletons of one world.
type Storage struct {
	archetypes []*Archetype
	ids        map[string]uint32
	columns    map[reflect.Type]func() column
	singletons map[reflect.Type]any
	count      int
}

// NewStorage returns an empty storage with no component types registered.
func NewStorage() *Storage {
	return &Storage{
		ids:        make(map[string]uint32),
		columns:    make(map[reflect.Type]func() column),
		singletons: make(map[reflect.Type]any),
	}
}

// Spawn creates an entity from component values or pointers to them. It
// panics when no component is given, a type repeats or a type is not
// registered.
func (s *Storage) Spawn(components ...any) Entity {
	if len(components) == 0 {
		panic("ecs: cannot spawn an entity without components")
	}
	types := make([]reflect.Type, len(components))
	for i, c := range components {
		types[i] = componentType(c)
	}
	a := s.archetype(types)
	slot := a.add(components)
	s.count++
	return newEntity(a.id, slot)
}

// archetype returns the archetype for types, creating it on first use.
// types is sorted in place.
func (s *Storage) archetype(types []reflect.Type) *Archetype {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
	keys := make([]string, len(types))
	for i, t := range types {
		keys[i] = typeKey(t)
		if i > 0 && keys[i] == keys[i-1] {
			panic(fmt.Sprintf("ecs: component %s given twice", t))
		}
	}
	key := strings.Join(keys, ";")
	if id, ok := s.ids[key]; ok {
		return s.archetypes[id-1]
	}

	columns := make([]column, len(types))
	for i, t := range types {
		factory, ok := s.columns[t]
		if !ok {
			panic(fmt.Sprintf("ecs: component %s not registered", t))
		}
		columns[i] = factory()
	}
	id := uint32(len(s.archetypes) + 1)
	a := newArchetype(id, slices.Clone(types), columns)
	s.archetypes = append(s.archetypes, a)
	s.ids[key] = id
	return a
}

func (s *Storage) lookup(e Entity) (*Archetype, bool) {
	id := e.Archetype()
	if id == 0 || int(id) > len(s.archetypes) {
		return nil, false
	}
	a := s.archetypes[id-1]
	return a, a.live(e.Slot())
}

// Alive reports whether e refers to a live entity.
func (s *Storage) Alive(e Entity) bool {
	_, ok := s.lookup(e)
	return ok
}

// Delete removes e and reports whether it was alive. Refs to it resolve
// to nothing afterwards.
func (s *Storage) Delete(e Entity) bool {
	a, ok := s.lookup(e)
	if !ok {
		return false
	}
	if r := a.remove(e.Slot()); r != nil {
		r.entity = 0
	}
	s.count--
	return true
}

// AddComponent gives e another component and returns the entity's new id.
// A component of a type e already has replaces the old value in place.
// It returns zero when e is not alive.
func (s *Storage) AddComponent(e Entity, component any) Entity {
	a, ok := s.lookup(e)
	if !ok {
		return 0
	}
	t := componentType(component)
	if i := a.index(t); i >= 0 {
		a.columns[i].set(e.Slot(), component)
		return e
	}

	values := append(a.values(e.Slot(), nil), component)
	return s.move(a, e, values)
}

// RemoveComponent takes the component of type t from e and returns the
// entity's new id. Removing the last component deletes the entity and
// returns zero, as does a dead e. Removing a type e lacks changes
// nothing.
func (s *Storage) RemoveComponent(e Entity, t reflect.Type) Entity {
	a, ok := s.lookup(e)
	if !ok {
		return 0
	}
	if !a.Has(t) {
		return e
	}
	if len(a.types) == 1 {
		s.Delete(e)
		return 0
	}
	return s.move(a, e, a.values(e.Slot(), t))
}

// move copies values into their archetype and frees e's old slot.
func (s *Storage) move(from *Archetype, e Entity, values []any) Entity {
	types := make([]reflect.Type, len(values))
	for i, v := range values {
		types[i] = componentType(v)
	}
	to := s.archetype(types)
	moved := newEntity(to.id, to.add(values))
	to.adopt(moved, from.remove(e.Slot()))
	return moved
}

// Component returns a pointer to e's component of type t, or nil.
func (s *Storage) Component(e Entity, t reflect.Type) any {
	a, ok := s.lookup(e)
	if !ok {
		return nil
	}
	i := a.index(t)
	if i < 0 {
		return nil
	}
	return reflect.NewAt(t, a.columns[i].ptr(e.Slot())).Interface()
}

// Get returns a pointer to e's T component, or nil.
func Get[T any](s *Storage, e Entity) *T {
	a, ok := s.lookup(e)
	if !ok {
		return nil
	}
	i := a.index(reflect.TypeFor[T]())
	if i < 0 {
		return nil
	}
	return (*T)(a.columns[i].ptr(e.Slot()))
}

// Has reports whether e is alive and has a T component.
func Has[T any](s *Storage, e Entity) bool {
	a, ok := s.lookup(e)
	return ok && a.Has(reflect.TypeFor[T]())
}

// Ref returns the stable reference for e. Repeated calls return the same
// Ref while it is reachable. A dead e yields a Ref that resolves to
// nothing.
func (s *Storage) Ref(e Entity) *Ref {
	a, ok := s.lookup(e)
	if !ok {
		return &Ref{}
	}
	return a.ref(e)
}

// Len returns the number of live entities.
func (s *Storage) Len() int { return s.count }

// Archetypes returns every archetype created so far, in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return slices.Clone(s.archetypes)
}

// SetSingleton stores v as the single value of its type and returns a
// pointer to the stored copy. Singletons need no registration.
func SetSingleton[T any](s *Storage, v T) *T {
	t := reflect.TypeFor[T]()
	if p, ok := s.singletons[t].(*T); ok {
		*p = v
		return p
	}
	p := new(T)
	*p = v
	s.singletons[t] = p
	return p
}

// GetSingleton returns the singleton of type T, or nil if none was set.
func GetSingleton[T any](s *Storage) *T {
	p, _ := s.singletons[reflect.TypeFor[T]()].(*T)
	return p
}

// Stats summarises a storage.
type Stats struct {
	Entities   int
	Archetypes []ArchetypeStats
	Singletons []string
}

// ArchetypeStats describes one archetype.
type ArchetypeStats struct {
	ID         uint32
	Components []string
	Entities   int
}

// CollectStats reports entity counts per archetype and the singleton
// types, sorted by name.
func (s *Storage) CollectStats() Stats {
	stats := Stats{
		Entities:   s.count,
		Archetypes: make([]ArchetypeStats, len(s.archetypes)),
	}
	for i, a := range s.archetypes {
		names := make([]string, len(a.types))
		for j, t := range a.types {
			names[j] = t.String()
		}
		stats.Archetypes[i] = ArchetypeStats{ID: a.id, Components: names, Entities: a.count}
	}
	for t := range s.singletons {
		stats.Singletons = append(stats.Singletons, t.String())
	}
	slices.Sort(stats.Singletons)
	return stats
}
