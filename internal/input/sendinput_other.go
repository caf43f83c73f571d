// File: internal/input/sendinput_other.go
//go:build !windows

package input

import (
	"fmt"
	"runtime"
)

func newInjector() (injector, error) {
	return nil, fmt.Errorf("input synthesis is not supported on %s", runtime.GOOS)
}
