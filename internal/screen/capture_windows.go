// File: internal/screen/capture_windows.go
//go:build windows

package screen

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")
	shcore = windows.NewLazySystemDLL("shcore.dll")

	procGetSystemMetrics                 = user32.NewProc("GetSystemMetrics")
	procGetDC                            = user32.NewProc("GetDC")
	procReleaseDC                        = user32.NewProc("ReleaseDC")
	procSetProcessDpiAwarenessContext    = user32.NewProc("SetProcessDpiAwarenessContext")
	procSetProcessDpiAwareness           = shcore.NewProc("SetProcessDpiAwareness")
	procCreateCompatibleDC               = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC                         = gdi32.NewProc("DeleteDC")
	procCreateDIBSection                 = gdi32.NewProc("CreateDIBSection")
	procSelectObject                     = gdi32.NewProc("SelectObject")
	procDeleteObject                     = gdi32.NewProc("DeleteObject")
	procBitBlt                           = gdi32.NewProc("BitBlt")
	procStretchBlt                       = gdi32.NewProc("StretchBlt")
	procSetStretchBltMode                = gdi32.NewProc("SetStretchBltMode")
)

const (
	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79

	srcCopy    = 0x00CC0020
	captureBlt = 0x40000000
	halftone   = 4

	dpiAwarenessContextPerMonitorAwareV2 = ^uintptr(3) // (DPI_AWARENESS_CONTEXT)-4
)

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [3]uint32
}

// ConfigureDPIAwareness opts the process into per-monitor DPI awareness so
// GetSystemMetrics reports physical pixels. Best effort; older systems fall
// back to the shcore API or stay DPI-virtualized.
func ConfigureDPIAwareness(logger *zap.Logger) {
	if procSetProcessDpiAwarenessContext.Find() == nil {
		ret, _, _ := procSetProcessDpiAwarenessContext.Call(dpiAwarenessContextPerMonitorAwareV2)
		if ret != 0 {
			return
		}
	}
	if procSetProcessDpiAwareness.Find() == nil {
		procSetProcessDpiAwareness.Call(2) // PROCESS_PER_MONITOR_DPI_AWARE
		return
	}
	logger.Warn("Could not enable DPI awareness; captures may be scaled")
}

// gdiCapturer captures the virtual desktop through GDI.
type gdiCapturer struct {
	logger *zap.Logger
}

// NewCapturer returns the GDI-backed screen capturer.
func NewCapturer(logger *zap.Logger) (Capturer, error) {
	return &gdiCapturer{logger: logger.Named("screen")}, nil
}

// virtualScreen queries the bounding rectangle of all active displays.
func virtualScreen() Region {
	x, _, _ := procGetSystemMetrics.Call(smXVirtualScreen)
	y, _, _ := procGetSystemMetrics.Call(smYVirtualScreen)
	w, _, _ := procGetSystemMetrics.Call(smCXVirtualScreen)
	h, _, _ := procGetSystemMetrics.Call(smCYVirtualScreen)
	return Region{X: int(int32(x)), Y: int(int32(y)), Width: int(int32(w)), Height: int(int32(h))}
}

// Capture implements Capturer. Every DC and bitmap handle acquired here is
// released on all exit paths, including failure, so long-running loops never
// exhaust GDI handles.
func (c *gdiCapturer) Capture(targetW, targetH int) ([]byte, Region, error) {
	if targetW < 1 || targetH < 1 {
		return nil, Region{}, fmt.Errorf("invalid target resolution %dx%d", targetW, targetH)
	}

	region := virtualScreen()
	if region.Width < 1 || region.Height < 1 {
		return nil, Region{}, fmt.Errorf("degenerate virtual screen %s", region)
	}

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, Region{}, fmt.Errorf("GetDC failed for the desktop")
	}
	defer procReleaseDC.Call(0, screenDC)

	srcDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if srcDC == 0 {
		return nil, Region{}, fmt.Errorf("CreateCompatibleDC failed for source")
	}
	defer procDeleteDC.Call(srcDC)

	dstDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if dstDC == 0 {
		return nil, Region{}, fmt.Errorf("CreateCompatibleDC failed for destination")
	}
	defer procDeleteDC.Call(dstDC)

	// Source DIB at native resolution. Negative height selects a top-down
	// bitmap so scanline order matches the encoder.
	srcBmp, _, err := createDIB(screenDC, region.Width, region.Height)
	if err != nil {
		return nil, Region{}, err
	}
	defer procDeleteObject.Call(srcBmp)
	procSelectObject.Call(srcDC, srcBmp)

	ret, _, _ := procBitBlt.Call(srcDC, 0, 0,
		uintptr(region.Width), uintptr(region.Height),
		screenDC, uintptr(region.X), uintptr(region.Y),
		srcCopy|captureBlt)
	if ret == 0 {
		return nil, Region{}, fmt.Errorf("BitBlt failed for %s", region)
	}

	// Destination DIB at the output resolution, filled with a HALFTONE
	// stretch for decent downsampling quality.
	dstBmp, dstBits, err := createDIB(screenDC, targetW, targetH)
	if err != nil {
		return nil, Region{}, err
	}
	defer procDeleteObject.Call(dstBmp)
	procSelectObject.Call(dstDC, dstBmp)
	procSetStretchBltMode.Call(dstDC, halftone)

	ret, _, _ = procStretchBlt.Call(dstDC, 0, 0, uintptr(targetW), uintptr(targetH),
		srcDC, 0, 0, uintptr(region.Width), uintptr(region.Height), srcCopy)
	if ret == 0 {
		return nil, Region{}, fmt.Errorf("StretchBlt to %dx%d failed", targetW, targetH)
	}

	// Copy the BGRA pixels out before the deferred DeleteObject frees them.
	size := targetW * targetH * 4
	bgra := make([]byte, size)
	copy(bgra, unsafe.Slice((*byte)(unsafe.Pointer(dstBits)), size))

	png, err := encodePNG(swizzleBGRA(bgra), targetW, targetH)
	if err != nil {
		return nil, Region{}, fmt.Errorf("failed to encode capture: %w", err)
	}
	return png, region, nil
}

// createDIB allocates a 32-bit top-down DIB section and returns the bitmap
// handle plus a pointer to its pixel memory.
func createDIB(dc uintptr, w, h int) (uintptr, uintptr, error) {
	bmi := bitmapInfo{
		Header: bitmapInfoHeader{
			Size:     uint32(unsafe.Sizeof(bitmapInfoHeader{})),
			Width:    int32(w),
			Height:   int32(-h),
			Planes:   1,
			BitCount: 32,
		},
	}
	var bits uintptr
	bmp, _, _ := procCreateDIBSection.Call(dc,
		uintptr(unsafe.Pointer(&bmi)),
		0, // DIB_RGB_COLORS
		uintptr(unsafe.Pointer(&bits)),
		0, 0)
	if bmp == 0 || bits == 0 {
		return 0, 0, fmt.Errorf("CreateDIBSection failed for %dx%d", w, h)
	}
	return bmp, bits, nil
}
