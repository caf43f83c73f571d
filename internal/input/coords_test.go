// File: internal/input/coords_test.go
package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbsCoord(t *testing.T) {
	t.Run("Endpoints", func(t *testing.T) {
		// Primary monitor 1920 wide at origin 0.
		assert.Equal(t, 0, absCoord(0, 0, 1920))
		assert.Equal(t, 65535, absCoord(1919, 0, 1920))
	})

	t.Run("NegativeOrigin", func(t *testing.T) {
		// Secondary monitor left of the primary.
		assert.Equal(t, 0, absCoord(-1920, -1920, 3840))
		assert.Equal(t, 65535, absCoord(1919, -1920, 3840))
	})

	t.Run("ClampsOutOfRange", func(t *testing.T) {
		assert.Equal(t, 0, absCoord(-5000, 0, 1920))
		assert.Equal(t, 65535, absCoord(99999, 0, 1920))
	})

	t.Run("DegenerateExtent", func(t *testing.T) {
		assert.Equal(t, 0, absCoord(500, 0, 1))
		assert.Equal(t, 0, absCoord(500, 0, 0))
	})
}

func TestGridToPixel(t *testing.T) {
	const origin, extent = -1080, 3000

	t.Run("Endpoints", func(t *testing.T) {
		assert.Equal(t, origin, GridToPixel(0, origin, extent))
		assert.Equal(t, origin+extent-1, GridToPixel(1000, origin, extent))
	})

	t.Run("Monotonic", func(t *testing.T) {
		prev := GridToPixel(0, origin, extent)
		for v := 1; v <= 1000; v++ {
			px := GridToPixel(v, origin, extent)
			assert.GreaterOrEqual(t, px, prev, "not monotonic at v=%d", v)
			assert.GreaterOrEqual(t, px, origin)
			assert.LessOrEqual(t, px, origin+extent-1)
			prev = px
		}
	})

	t.Run("RawPixelPassthrough", func(t *testing.T) {
		// Values above the grid are raw pixel coordinates, still clamped.
		assert.Equal(t, 1500, GridToPixel(1500, 0, 3000))
		assert.Equal(t, 2999, GridToPixel(50000, 0, 3000))
	})

	t.Run("DegenerateExtent", func(t *testing.T) {
		assert.Equal(t, 7, GridToPixel(500, 7, 1))
	})
}
