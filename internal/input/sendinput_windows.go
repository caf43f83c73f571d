// File: internal/input/sendinput_windows.go
//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseEventfMove        = 0x0001
	mouseEventfLeftDown    = 0x0002
	mouseEventfLeftUp      = 0x0004
	mouseEventfVirtualDesk = 0x4000
	mouseEventfAbsolute    = 0x8000

	keyEventfKeyUp   = 0x0002
	keyEventfUnicode = 0x0004
)

// mouseInput mirrors the win64 INPUT struct with the MOUSEINPUT union arm.
// The pad after typ keeps the union 8-byte aligned.
type mouseInput struct {
	typ       uint32
	_         uint32
	dx        int32
	dy        int32
	mouseData uint32
	flags     uint32
	time      uint32
	extraInfo uintptr
}

// keyboardInput mirrors the win64 INPUT struct with the KEYBDINPUT union arm,
// padded to the full union size.
type keyboardInput struct {
	typ       uint32
	_         uint32
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
	_         [8]byte
}

// winInjector submits synthetic events through SendInput.
type winInjector struct{}

func newInjector() (injector, error) {
	return winInjector{}, nil
}

func sendMouse(events []mouseInput) error {
	n, _, callErr := procSendInput.Call(
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		unsafe.Sizeof(mouseInput{}))
	if int(n) != len(events) {
		return fmt.Errorf("SendInput injected %d of %d mouse events: %v", n, len(events), callErr)
	}
	return nil
}

func sendKeyboard(events []keyboardInput) error {
	n, _, callErr := procSendInput.Call(
		uintptr(len(events)),
		uintptr(unsafe.Pointer(&events[0])),
		unsafe.Sizeof(keyboardInput{}))
	if int(n) != len(events) {
		return fmt.Errorf("SendInput injected %d of %d keyboard events: %v", n, len(events), callErr)
	}
	return nil
}

func (winInjector) moveAbs(ax, ay int) error {
	return sendMouse([]mouseInput{{
		typ:   inputMouse,
		dx:    int32(ax),
		dy:    int32(ay),
		flags: mouseEventfMove | mouseEventfAbsolute | mouseEventfVirtualDesk,
	}})
}

func (winInjector) click() error {
	return sendMouse([]mouseInput{
		{typ: inputMouse, flags: mouseEventfLeftDown},
		{typ: inputMouse, flags: mouseEventfLeftUp},
	})
}

func (winInjector) buttonDown() error {
	return sendMouse([]mouseInput{{typ: inputMouse, flags: mouseEventfLeftDown}})
}

func (winInjector) buttonUp() error {
	return sendMouse([]mouseInput{{typ: inputMouse, flags: mouseEventfLeftUp}})
}

func (winInjector) typeRunes(rs []rune) error {
	events := make([]keyboardInput, 0, len(rs)*2)
	for _, r := range rs {
		events = append(events,
			keyboardInput{typ: inputKeyboard, scan: uint16(r), flags: keyEventfUnicode},
			keyboardInput{typ: inputKeyboard, scan: uint16(r), flags: keyEventfUnicode | keyEventfKeyUp},
		)
	}
	return sendKeyboard(events)
}

func (winInjector) tapKey(vk uint16) error {
	return sendKeyboard([]keyboardInput{
		{typ: inputKeyboard, vk: vk},
		{typ: inputKeyboard, vk: vk, flags: keyEventfKeyUp},
	})
}
