package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

const blockSize = 64

// column holds one component type for every slot of an archetype.
// Components live in fixed blocks that never move, so pointers handed out
// stay valid until the slot is freed.
type column interface {
	set(slot uint32, v any) bool
	ptr(slot uint32) unsafe.Pointer
	clear(slot uint32)
}

type blocks[T any] struct {
	b []*[blockSize]T
}

func (c *blocks[T]) set(slot uint32, v any) bool {
	var val T
	switch v := v.(type) {
	case T:
		val = v
	case *T:
		val = *v
	default:
		return false
	}
	for int(slot/blockSize) >= len(c.b) {
		c.b = append(c.b, new([blockSize]T))
	}
	c.b[slot/blockSize][slot%blockSize] = val
	return true
}

func (c *blocks[T]) ptr(slot uint32) unsafe.Pointer {
	return unsafe.Pointer(&c.b[slot/blockSize][slot%blockSize])
}

func (c *blocks[T]) clear(slot uint32) {
	var zero T
	c.b[slot/blockSize][slot%blockSize] = zero
}

// Register makes T usable as a component in s. Registering twice is a
// no-op.
func Register[T any](s *Storage) {
	t := reflect.TypeFor[T]()
	checkComponentType(t)
	if _, ok := s.columns[t]; ok {
		return
	}
	s.columns[t] = func() column { return &blocks[T]{} }
}

func checkComponentType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic(fmt.Sprintf("ecs: %s cannot be a component", t))
	}
}

// componentType returns the type a value is stored as: the pointed-to type
// for pointers.
func componentType(v any) reflect.Type {
	t := reflect.TypeOf(v)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// typeKey orders and identifies component types. Named types include
// their package path so equally named types from different packages stay
// apart.
func typeKey(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
