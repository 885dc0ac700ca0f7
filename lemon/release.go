package lemon

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/plus3/ramune/internal/logging"
)

// ReleaseAll empties t, calling release for each object still in it.
// Objects left in a table when its device closes were never disposed by
// their owner, so each is reported as a leak.
func ReleaseAll[T any](device string, t *Table[T], release func(T) error) error {
	if t.Len() == 0 {
		return nil
	}

	log := logging.Named("lemon")
	handles := make([]Handle, 0, t.Len())
	for h := range t.All() {
		handles = append(handles, h)
	}

	var err error
	for _, h := range handles {
		v, _ := t.Remove(h)
		err = multierr.Append(err, release(v))
	}

	log.Warn("released leaked resources",
		zap.String("device", device),
		zap.Int("count", len(handles)),
		zap.Stringers("handles", handles),
	)
	return err
}

// CheckSize validates target dimensions and format.
func CheckSize(width, height int, format Format) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	if !format.Valid() {
		return ErrUnsupportedFormat
	}
	return nil
}
