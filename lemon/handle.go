package lemon

import "fmt"

// Handle names a device resource. It encodes the slot generation (upper 32
// bits) and the slot index (lower 32 bits), so a handle to a disposed
// resource never aliases a newer one in the same slot.
type Handle uint64

// Screen is the device's presentable surface. It always exists and can
// never be disposed.
const Screen Handle = 1<<64 - 1

func newHandle(generation uint32, index uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

// Generation extracts the slot generation.
func (h Handle) Generation() uint32 {
	return uint32(h >> 32)
}

// Index extracts the slot index.
func (h Handle) Index() uint32 {
	return uint32(h & 0xFFFFFFFF)
}

func (h Handle) String() string {
	switch h {
	case 0:
		return "handle(nil)"
	case Screen:
		return "screen"
	}
	return fmt.Sprintf("handle(%d#%d)", h.Index(), h.Generation())
}
