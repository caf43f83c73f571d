// File: internal/input/input.go
// Description: Synthesizes mouse and keyboard events from normalized
// coordinates and key names. Gesture sequencing and coordinate math are
// portable; event injection goes through a small per-OS backend.
package input

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/screen"
)

// injector is the low-level event backend. Each call submits its events as
// one atomic batch so they cannot interleave with other processes' input.
type injector interface {
	moveAbs(ax, ay int) error
	click() error
	buttonDown() error
	buttonUp() error
	typeRunes(rs []rune) error
	tapKey(vk uint16) error
}

// Drag delay schedule. Empirically chosen so target UIs register the gesture
// reliably; not user-configurable.
const (
	dragPressDelay   = 20 * time.Millisecond
	dragHoldDelay    = 60 * time.Millisecond
	dragReleaseDelay = 40 * time.Millisecond
	dragSettleDelay  = 50 * time.Millisecond
)

// Synthesizer converts screen-pixel positions and key names into low-level
// pointer and keyboard events.
type Synthesizer struct {
	dev    injector
	logger *zap.Logger
	sleep  func(time.Duration)
}

// NewSynthesizer returns a Synthesizer backed by the platform event injector.
func NewSynthesizer(logger *zap.Logger) (*Synthesizer, error) {
	dev, err := newInjector()
	if err != nil {
		return nil, err
	}
	return newSynthesizer(dev, logger), nil
}

func newSynthesizer(dev injector, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{dev: dev, logger: logger.Named("input"), sleep: time.Sleep}
}

// MoveCursor clamps the point into the virtual screen rectangle and moves the
// pointer there using normalized absolute coordinates.
func (s *Synthesizer) MoveCursor(r screen.Region, px, py int) error {
	ax := absCoord(px, r.X, r.Width)
	ay := absCoord(py, r.Y, r.Height)
	if err := s.dev.moveAbs(ax, ay); err != nil {
		return fmt.Errorf("failed to move cursor to (%d,%d): %w", px, py, err)
	}
	return nil
}

// Click presses and releases the left button as a single batch. Timing
// between the move and the click is the caller's responsibility.
func (s *Synthesizer) Click() error {
	if err := s.dev.click(); err != nil {
		return fmt.Errorf("failed to click: %w", err)
	}
	return nil
}

// Drag performs a press-move-release gesture between two pixel positions
// with the fixed delay schedule.
func (s *Synthesizer) Drag(r screen.Region, x1, y1, x2, y2 int) error {
	if err := s.MoveCursor(r, x1, y1); err != nil {
		return err
	}
	s.sleep(dragPressDelay)
	if err := s.dev.buttonDown(); err != nil {
		return fmt.Errorf("failed to press button for drag: %w", err)
	}
	s.sleep(dragHoldDelay)
	if err := s.MoveCursor(r, x2, y2); err != nil {
		return err
	}
	s.sleep(dragReleaseDelay)
	if err := s.dev.buttonUp(); err != nil {
		return fmt.Errorf("failed to release button for drag: %w", err)
	}
	s.sleep(dragSettleDelay)
	return nil
}

// TypeText emits a key-down/key-up pair per character, in order, as one
// batch. Code points above U+FFFF are dropped with a warning; surrogate-pair
// composition is not implemented.
func (s *Synthesizer) TypeText(text string) error {
	runes := make([]rune, 0, len(text))
	for _, r := range text {
		if r > 0xFFFF {
			s.logger.Warn("Dropping unrepresentable code point", zap.Int32("rune", r))
			continue
		}
		runes = append(runes, r)
	}
	if len(runes) == 0 {
		return nil
	}
	if err := s.dev.typeRunes(runes); err != nil {
		return fmt.Errorf("failed to type %d characters: %w", len(runes), err)
	}
	return nil
}

// PressKey taps a named key from the fixed vocabulary. Unrecognized names
// produce a warning and no event; they are not an error.
func (s *Synthesizer) PressKey(name string) error {
	vk, ok := lookupKey(name)
	if !ok {
		s.logger.Warn("Unknown key name", zap.String("key", name))
		return nil
	}
	if err := s.dev.tapKey(vk); err != nil {
		return fmt.Errorf("failed to press key %q: %w", name, err)
	}
	return nil
}
