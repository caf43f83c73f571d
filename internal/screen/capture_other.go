// File: internal/screen/capture_other.go
//go:build !windows

package screen

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// ConfigureDPIAwareness is a no-op outside Windows.
func ConfigureDPIAwareness(*zap.Logger) {}

// NewCapturer reports that screen capture is not available on this platform.
func NewCapturer(*zap.Logger) (Capturer, error) {
	return nil, fmt.Errorf("screen capture is not supported on %s", runtime.GOOS)
}
