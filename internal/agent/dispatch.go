// File: internal/agent/dispatch.go
package agent

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/input"
	"github.com/wgabrys88/franz/internal/protocol"
	"github.com/wgabrys88/franz/internal/screen"
)

// Post-command settle delays. The target UI needs a moment to react before
// the next event lands.
const (
	clickApproachDelay = 20 * time.Millisecond
	clickSettleDelay   = 50 * time.Millisecond
	typeSettleDelay    = 40 * time.Millisecond
	keySettleDelay     = 50 * time.Millisecond
)

// maxWait caps a single WAIT so one command cannot stall the loop.
const maxWait = 10 * time.Second

// dispatch executes the parsed commands in order against the virtual screen
// captured this cycle. A failing command is recorded and skipped; the rest of
// the batch still runs. The returned results feed the reflection prompt.
func (a *Agent) dispatch(commands []protocol.Command, region screen.Region) []string {
	var results []string
	for _, cmd := range commands {
		a.logger.Info("Executing command", zap.Stringer("command", cmd))
		if result, err := a.execute(cmd, region); err != nil {
			a.logger.Warn("Command failed", zap.Stringer("command", cmd), zap.Error(err))
			results = append(results, fmt.Sprintf("ERROR %s: %v", cmd, err))
		} else if result != "" {
			results = append(results, result)
		}
	}
	return results
}

func (a *Agent) execute(cmd protocol.Command, region screen.Region) (string, error) {
	switch c := cmd.(type) {
	case protocol.Click:
		px := input.GridToPixel(c.X, region.X, region.Width)
		py := input.GridToPixel(c.Y, region.Y, region.Height)
		if err := a.driver.MoveCursor(region, px, py); err != nil {
			return "", err
		}
		a.sleep(clickApproachDelay)
		if err := a.driver.Click(); err != nil {
			return "", err
		}
		a.sleep(clickSettleDelay)
		return "", nil

	case protocol.Drag:
		x1 := input.GridToPixel(c.X1, region.X, region.Width)
		y1 := input.GridToPixel(c.Y1, region.Y, region.Height)
		x2 := input.GridToPixel(c.X2, region.X, region.Width)
		y2 := input.GridToPixel(c.Y2, region.Y, region.Height)
		return "", a.driver.Drag(region, x1, y1, x2, y2)

	case protocol.TypeText:
		if err := a.driver.TypeText(c.Text); err != nil {
			return "", err
		}
		a.sleep(typeSettleDelay)
		return "", nil

	case protocol.KeyPress:
		if err := a.driver.PressKey(c.Name); err != nil {
			return "", err
		}
		a.sleep(keySettleDelay)
		return "", nil

	case protocol.Calculate:
		result, newCtx := a.eval.Execute(c.Code, a.calcCtx)
		a.calcCtx = newCtx
		return fmt.Sprintf("PYTHON: %s → %s", c.Code, result), nil

	case protocol.Wait:
		d := time.Duration(c.Millis) * time.Millisecond
		if d < 0 {
			d = 0
		}
		if d > maxWait {
			d = maxWait
		}
		a.sleep(d)
		return "", nil

	default:
		return "", fmt.Errorf("unhandled command %T", cmd)
	}
}
