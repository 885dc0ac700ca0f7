package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

var entityType = reflect.TypeFor[Entity]()

// View reads entities through a struct of component pointers:
//
//	type mover struct {
//		*Position
//		Velocity *Velocity `ecs:"optional"`
//	}
//
// Every pointer field is a component the entity must have, unless tagged
// `ecs:"optional"`, in which case it is nil when missing. A field of type
// Entity receives the entity's id.
type View[T any] struct {
	storage *Storage
	fields  []viewField
	// entity is the offset of the Entity field, or -1.
	entity int
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView builds a view of T over s. It panics when T is not a struct of
// component pointers.
func NewView[T any](s *Storage) *View[T] {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic(fmt.Sprintf("ecs: view type %s is not a struct", st))
	}
	v := &View[T]{storage: s, entity: -1}
	for i := range st.NumField() {
		f := st.Field(i)
		if f.Type == entityType {
			v.entity = int(f.Offset)
			continue
		}
		if f.Type.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("ecs: view field %s.%s must be a pointer", st, f.Name))
		}
		field := viewField{typ: f.Type.Elem(), offset: f.Offset}
		switch tag := f.Tag.Get("ecs"); tag {
		case "":
		case "optional":
			field.optional = !f.Anonymous
		default:
			panic(fmt.Sprintf("ecs: view field %s.%s has unknown tag %q", st, f.Name, tag))
		}
		v.fields = append(v.fields, field)
	}
	return v
}

// matches reports whether a has every required component.
func (v *View[T]) matches(a *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !a.Has(f.typ) {
			return false
		}
	}
	return true
}

// layout returns, per field, the column index in a or -1.
func (v *View[T]) layout(a *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = a.index(f.typ)
	}
	return cols
}

func (v *View[T]) fill(dst *T, a *Archetype, cols []int, slot uint32) {
	base := unsafe.Pointer(dst)
	for i, f := range v.fields {
		field := (*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if cols[i] < 0 {
			*field = nil
			continue
		}
		*field = a.columns[cols[i]].ptr(slot)
	}
	if v.entity >= 0 {
		*(*Entity)(unsafe.Add(base, v.entity)) = newEntity(a.id, slot)
	}
}

// Get returns the view of e, or nil when e is dead or lacks a required
// component.
func (v *View[T]) Get(e Entity) *T {
	var out T
	if !v.Fill(e, &out) {
		return nil
	}
	return &out
}

// Fill writes the view of e into dst and reports whether e matched.
func (v *View[T]) Fill(e Entity, dst *T) bool {
	a, ok := v.storage.lookup(e)
	if !ok || !v.matches(a) {
		return false
	}
	v.fill(dst, a, v.layout(a), e.Slot())
	return true
}

// Iter yields every matching entity, archetype by archetype in creation
// order and by slot within each.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		for _, a := range v.storage.archetypes {
			if a.count == 0 || !v.matches(a) {
				continue
			}
			if !v.iterArchetype(a, v.layout(a), yield) {
				return
			}
		}
	}
}

func (v *View[T]) iterArchetype(a *Archetype, cols []int, yield func(Entity, T) bool) bool {
	var out T
	for slot, ok := range a.alive {
		if !ok {
			continue
		}
		v.fill(&out, a, cols, uint32(slot))
		if !yield(newEntity(a.id, uint32(slot)), out) {
			return false
		}
	}
	return true
}

// Values yields the view structs without their entities.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, val := range v.Iter() {
			if !yield(val) {
				return
			}
		}
	}
}

// Spawn creates an entity from the components data points at. Nil
// optional fields are left out; a nil required field panics.
func (v *View[T]) Spawn(data T) Entity {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		p := *(*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if p == nil {
			if !f.optional {
				panic(fmt.Sprintf("ecs: required component %s is nil", f.typ))
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, p).Interface())
	}
	return v.storage.Spawn(components...)
}
