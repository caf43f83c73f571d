// File: internal/agent/mocks_test.go
package agent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/goleak"

	"github.com/wgabrys88/franz/internal/screen"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeReply struct {
	text string
	err  error
}

type modelCall struct {
	system string
	user   string
	images int
}

// fakeModel plays back scripted replies and invokes onExhausted once the
// script runs out, letting a test end the loop deterministically.
type fakeModel struct {
	replies     []fakeReply
	calls       []modelCall
	onExhausted func()
}

func (m *fakeModel) Complete(_ context.Context, system, user string, images [][]byte) (string, error) {
	m.calls = append(m.calls, modelCall{system: system, user: user, images: len(images)})
	if len(m.replies) == 0 {
		if m.onExhausted != nil {
			m.onExhausted()
		}
		return "", errors.New("no scripted reply")
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply.text, reply.err
}

type fakeCapturer struct {
	png    []byte
	region screen.Region
	errs   []error
	calls  int
}

func (c *fakeCapturer) Capture(_, _ int) ([]byte, screen.Region, error) {
	c.calls++
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		if err != nil {
			return nil, screen.Region{}, err
		}
	}
	return c.png, c.region, nil
}

// fakeDriver records each gesture as a short op string.
type fakeDriver struct {
	ops []string
	err error
}

func (d *fakeDriver) MoveCursor(_ screen.Region, px, py int) error {
	d.ops = append(d.ops, fmt.Sprintf("move(%d,%d)", px, py))
	return d.err
}

func (d *fakeDriver) Click() error {
	d.ops = append(d.ops, "click")
	return d.err
}

func (d *fakeDriver) Drag(_ screen.Region, x1, y1, x2, y2 int) error {
	d.ops = append(d.ops, fmt.Sprintf("drag(%d,%d)->(%d,%d)", x1, y1, x2, y2))
	return d.err
}

func (d *fakeDriver) TypeText(text string) error {
	d.ops = append(d.ops, "type("+text+")")
	return d.err
}

func (d *fakeDriver) PressKey(name string) error {
	d.ops = append(d.ops, "key("+name+")")
	return d.err
}
