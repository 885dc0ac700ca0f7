package ecs

import "iter"

// Query is a View whose matches are gathered once per Execute. Systems
// declare queries as fields; Bind initialises them and the scene executes
// them before each run.
type Query[T any] struct {
	view *View[T]

	archetypes []*Archetype
	layouts    [][]int
	// seen counts the storage archetypes already checked for a match.
	seen int

	entities []Entity
	values   []T
	valid    bool
}

// NewQuery returns a query of T over s.
func NewQuery[T any](s *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(s)
	return q
}

// Init binds the query to s and drops any cached results.
func (q *Query[T]) Init(s *Storage) {
	*q = Query[T]{view: NewView[T](s)}
}

// Execute gathers the current matches. Archetypes created since the last
// Execute are checked once and remembered.
func (q *Query[T]) Execute() {
	if q.view == nil {
		panic("ecs: Query.Execute before Init")
	}
	all := q.view.storage.archetypes
	for _, a := range all[q.seen:] {
		if q.view.matches(a) {
			q.archetypes = append(q.archetypes, a)
			q.layouts = append(q.layouts, q.view.layout(a))
		}
	}
	q.seen = len(all)

	q.entities = q.entities[:0]
	q.values = q.values[:0]
	for i, a := range q.archetypes {
		q.view.iterArchetype(a, q.layouts[i], func(e Entity, v T) bool {
			q.entities = append(q.entities, e)
			q.values = append(q.values, v)
			return true
		})
	}
	q.valid = true
}

func (q *Query[T]) check() {
	if !q.valid {
		panic("ecs: Query used before Execute")
	}
}

// Len returns the number of matches found by the last Execute.
func (q *Query[T]) Len() int {
	q.check()
	return len(q.entities)
}

// Iter yields the matches found by the last Execute.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	q.check()
	return func(yield func(Entity, T) bool) {
		for i, e := range q.entities {
			if !yield(e, q.values[i]) {
				return
			}
		}
	}
}

// Values yields the matched view structs.
func (q *Query[T]) Values() iter.Seq[T] {
	q.check()
	return func(yield func(T) bool) {
		for _, v := range q.values {
			if !yield(v) {
				return
			}
		}
	}
}

// First returns the first match, if any.
func (q *Query[T]) First() (Entity, T, bool) {
	q.check()
	if len(q.entities) == 0 {
		var zero T
		return 0, zero, false
	}
	return q.entities[0], q.values[0], true
}
