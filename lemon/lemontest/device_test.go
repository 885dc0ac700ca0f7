package lemontest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ramune/lemon"
	"github.com/plus3/ramune/lemon/lemontest"
)

func TestDeviceClosed(t *testing.T) {
	dev := lemontest.NewDevice(32, 16)
	h, err := dev.NewTarget(4, 4, lemon.FormatRGBA8)
	require.NoError(t, err)

	w, ht, err := dev.TargetSize(lemon.Screen)
	require.NoError(t, err)
	assert.Equal(t, [2]int{32, 16}, [2]int{w, ht})

	require.NoError(t, dev.Close())
	assert.True(t, dev.Closed())
	assert.Zero(t, dev.Live())

	for _, handle := range []lemon.Handle{lemon.Screen, h} {
		_, _, err := dev.TargetSize(handle)
		assert.ErrorIs(t, err, lemon.ErrClosed, handle.String())
		_, err = dev.Readback(handle)
		assert.ErrorIs(t, err, lemon.ErrClosed, handle.String())
	}
	assert.ErrorIs(t, dev.Resize(8, 8), lemon.ErrClosed)
	assert.ErrorIs(t, dev.Dispose(h), lemon.ErrClosed)
}
