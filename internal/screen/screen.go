// File: internal/screen/screen.go
package screen

import "fmt"

// Region describes the bounding rectangle of all active displays. The origin
// may be negative when a monitor sits left of or above the primary one. It is
// recomputed on every capture call.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// String renders the region for logs and run artifacts.
func (r Region) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width, r.Height, r.X, r.Y)
}

// Capturer grabs the virtual desktop, downsamples it to the requested output
// resolution, and returns it encoded as a PNG byte stream together with the
// region it was captured from. A failed capture returns an error and no
// partial image.
type Capturer interface {
	Capture(targetW, targetH int) ([]byte, Region, error)
}

// swizzleBGRA converts a BGRA pixel buffer (the GDI readback layout) into
// RGBA, forcing alpha to fully opaque. GDI leaves the alpha channel undefined
// after a blit, so it cannot be trusted.
func swizzleBGRA(bgra []byte) []byte {
	rgba := make([]byte, len(bgra))
	for i := 0; i+3 < len(bgra); i += 4 {
		rgba[i] = bgra[i+2]
		rgba[i+1] = bgra[i+1]
		rgba[i+2] = bgra[i]
		rgba[i+3] = 0xFF
	}
	return rgba
}
