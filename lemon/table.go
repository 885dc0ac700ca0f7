package lemon

import "iter"

const tableBlockSize = 64

type tableSlot[T any] struct {
	value      T
	generation uint32
	live       bool
}

// Table owns backend objects and hands out Handles for them. Slots are
// stored in fixed-size blocks and reused after removal; each removal bumps
// the slot generation so stale handles stop resolving.
//
// The zero value is ready to use.
type Table[T any] struct {
	blocks    [][tableBlockSize]tableSlot[T]
	freeSlots []uint32
	nextIndex uint32
	count     int
}

// Insert stores v and returns its handle.
func (t *Table[T]) Insert(v T) Handle {
	var index uint32
	if n := len(t.freeSlots); n > 0 {
		index = t.freeSlots[n-1]
		t.freeSlots = t.freeSlots[:n-1]
	} else {
		index = t.nextIndex
		t.nextIndex++
		if int(index/tableBlockSize) >= len(t.blocks) {
			t.blocks = append(t.blocks, [tableBlockSize]tableSlot[T]{})
		}
	}

	slot := t.slot(index)
	if slot.generation == 0 {
		slot.generation = 1
	}
	slot.value = v
	slot.live = true
	t.count++
	return newHandle(slot.generation, index)
}

// Get returns the object for h.
func (t *Table[T]) Get(h Handle) (T, bool) {
	slot := t.lookup(h)
	if slot == nil {
		var zero T
		return zero, false
	}
	return slot.value, true
}

// Contains reports whether h names a live object.
func (t *Table[T]) Contains(h Handle) bool {
	return t.lookup(h) != nil
}

// Remove deletes the object for h and returns it.
func (t *Table[T]) Remove(h Handle) (T, bool) {
	var zero T
	slot := t.lookup(h)
	if slot == nil {
		return zero, false
	}

	v := slot.value
	slot.value = zero
	slot.live = false
	slot.generation++
	if slot.generation == 0 {
		slot.generation = 1
	}
	t.freeSlots = append(t.freeSlots, h.Index())
	t.count--
	return v, true
}

// Len returns the number of live objects.
func (t *Table[T]) Len() int {
	return t.count
}

// All iterates over live objects in slot order.
func (t *Table[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for i := uint32(0); i < t.nextIndex; i++ {
			slot := t.slot(i)
			if !slot.live {
				continue
			}
			if !yield(newHandle(slot.generation, i), slot.value) {
				return
			}
		}
	}
}

func (t *Table[T]) slot(index uint32) *tableSlot[T] {
	return &t.blocks[index/tableBlockSize][index%tableBlockSize]
}

func (t *Table[T]) lookup(h Handle) *tableSlot[T] {
	if h == 0 || h == Screen {
		return nil
	}
	index := h.Index()
	if index >= t.nextIndex {
		return nil
	}
	slot := t.slot(index)
	if !slot.live || slot.generation != h.Generation() {
		return nil
	}
	return slot
}
