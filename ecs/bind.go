package ecs

import "reflect"

// Executor is implemented by queries.
type Executor interface {
	Execute()
}

// Binder is implemented by fields that need the storage, such as Query
// and Singleton.
type Binder interface {
	Init(s *Storage)
}

// Bind initialises every exported Binder field of the struct target points
// to and returns the fields that are also Executors, in field order.
// Targets that are not struct pointers are left alone.
func Bind(target any, s *Storage) []Executor {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	v = v.Elem()

	var execs []Executor
	for i := range v.NumField() {
		field := v.Field(i)
		if !field.CanSet() || !field.CanAddr() {
			continue
		}
		ptr := field.Addr().Interface()
		b, ok := ptr.(Binder)
		if !ok {
			continue
		}
		b.Init(s)
		if e, ok := ptr.(Executor); ok {
			execs = append(execs, e)
		}
	}
	return execs
}
