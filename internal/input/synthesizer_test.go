// File: internal/input/synthesizer_test.go
package input

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/screen"
)

// fakeInjector records every batch in submission order.
type fakeInjector struct {
	ops  []string
	fail error
}

func (f *fakeInjector) record(op string) error {
	if f.fail != nil {
		return f.fail
	}
	f.ops = append(f.ops, op)
	return nil
}

func (f *fakeInjector) moveAbs(ax, ay int) error { return f.record(fmt.Sprintf("move(%d,%d)", ax, ay)) }
func (f *fakeInjector) click() error             { return f.record("click") }
func (f *fakeInjector) buttonDown() error        { return f.record("down") }
func (f *fakeInjector) buttonUp() error          { return f.record("up") }
func (f *fakeInjector) typeRunes(rs []rune) error {
	return f.record(fmt.Sprintf("type(%s)", string(rs)))
}
func (f *fakeInjector) tapKey(vk uint16) error { return f.record(fmt.Sprintf("key(0x%02X)", vk)) }

func newTestSynthesizer() (*Synthesizer, *fakeInjector) {
	dev := &fakeInjector{}
	s := newSynthesizer(dev, zap.NewNop())
	s.sleep = func(time.Duration) {}
	return s, dev
}

func TestSynthesizer_MoveCursor(t *testing.T) {
	s, dev := newTestSynthesizer()
	r := screen.Region{X: 0, Y: 0, Width: 1920, Height: 1080}

	require.NoError(t, s.MoveCursor(r, 1919, 0))
	assert.Equal(t, []string{"move(65535,0)"}, dev.ops)
}

func TestSynthesizer_DragOrdering(t *testing.T) {
	s, dev := newTestSynthesizer()
	r := screen.Region{X: 0, Y: 0, Width: 1001, Height: 1001}

	require.NoError(t, s.Drag(r, 0, 0, 1000, 1000))

	// Move-to-start, press, move-to-end, release, strictly in order.
	assert.Equal(t, []string{
		"move(0,0)",
		"down",
		"move(65535,65535)",
		"up",
	}, dev.ops)
}

func TestSynthesizer_DragSleepSchedule(t *testing.T) {
	dev := &fakeInjector{}
	s := newSynthesizer(dev, zap.NewNop())

	var waits []time.Duration
	s.sleep = func(d time.Duration) { waits = append(waits, d) }

	require.NoError(t, s.Drag(screen.Region{Width: 100, Height: 100}, 0, 0, 50, 50))
	assert.Equal(t, []time.Duration{
		20 * time.Millisecond,
		60 * time.Millisecond,
		40 * time.Millisecond,
		50 * time.Millisecond,
	}, waits)
}

func TestSynthesizer_TypeText(t *testing.T) {
	t.Run("SingleBatch", func(t *testing.T) {
		s, dev := newTestSynthesizer()
		require.NoError(t, s.TypeText("hello"))
		assert.Equal(t, []string{"type(hello)"}, dev.ops)
	})

	t.Run("Empty", func(t *testing.T) {
		s, dev := newTestSynthesizer()
		require.NoError(t, s.TypeText(""))
		assert.Empty(t, dev.ops)
	})

	t.Run("DropsAstralCodePoints", func(t *testing.T) {
		s, dev := newTestSynthesizer()
		require.NoError(t, s.TypeText("a\U0001F600b"))
		assert.Equal(t, []string{"type(ab)"}, dev.ops)
	})
}

func TestSynthesizer_PressKey(t *testing.T) {
	t.Run("KnownKey", func(t *testing.T) {
		s, dev := newTestSynthesizer()
		require.NoError(t, s.PressKey("enter"))
		assert.Equal(t, []string{"key(0x0D)"}, dev.ops)
	})

	t.Run("Aliases", func(t *testing.T) {
		s, dev := newTestSynthesizer()
		require.NoError(t, s.PressKey("esc"))
		require.NoError(t, s.PressKey("escape"))
		assert.Equal(t, []string{"key(0x1B)", "key(0x1B)"}, dev.ops)
	})

	t.Run("UnknownKeyIsNonFatal", func(t *testing.T) {
		s, dev := newTestSynthesizer()
		require.NoError(t, s.PressKey("hyperspace"))
		assert.Empty(t, dev.ops)
	})
}

func TestSynthesizer_InjectorFailure(t *testing.T) {
	s, dev := newTestSynthesizer()
	dev.fail = errors.New("queue full")

	assert.Error(t, s.Click())
	assert.Error(t, s.TypeText("x"))
	assert.Error(t, s.PressKey("enter"))
}
