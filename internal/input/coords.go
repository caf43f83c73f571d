// File: internal/input/coords.go
package input

import "math"

// normalizedMax is the upper bound of the absolute coordinate domain used by
// the OS for absolute pointer events.
const normalizedMax = 65535

// gridMax is the upper bound of the command coordinate grid produced by the
// model.
const gridMax = 1000

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// absCoord maps a pixel position on one axis of the virtual screen into the
// normalized [0, 65535] absolute domain. The position is clamped into the
// screen first; a degenerate axis (extent <= 1) maps to 0.
func absCoord(p, origin, extent int) int {
	if extent <= 1 {
		return 0
	}
	rel := clamp(p, origin, origin+extent-1) - origin
	a := int(math.Round(float64(rel) * normalizedMax / float64(extent-1)))
	return clamp(a, 0, normalizedMax)
}

// GridToPixel maps a command coordinate onto one axis of the screen region.
// Values in [0, 1000] span the axis proportionally, with 0 landing on the
// origin and 1000 on the last pixel; larger values are treated as raw pixel
// coordinates. The result always lies within [origin, origin+extent-1] and
// is monotonic nondecreasing in v.
func GridToPixel(v, origin, extent int) int {
	if extent <= 1 {
		return origin
	}
	last := origin + extent - 1
	if v > gridMax {
		return clamp(v, origin, last)
	}
	if v < 0 {
		v = 0
	}
	px := origin + int(math.Round(float64(v)*float64(extent-1)/gridMax))
	return clamp(px, origin, last)
}
