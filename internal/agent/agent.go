// File: internal/agent/agent.go
// Description: The orchestrator loop. Each cycle captures the screen, asks
// the model for a plan, executes the parsed commands, captures again, and
// asks the model to rewrite the single narrative observation that is the
// agent's only memory between cycles.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/config"
	"github.com/wgabrys88/franz/internal/protocol"
	"github.com/wgabrys88/franz/internal/sandbox"
	"github.com/wgabrys88/franz/internal/screen"
)

// Completer produces one model completion for a prompt pair plus PNG
// attachments.
type Completer interface {
	Complete(ctx context.Context, system, user string, images [][]byte) (string, error)
}

// Driver synthesizes input events against the captured virtual screen.
type Driver interface {
	MoveCursor(r screen.Region, px, py int) error
	Click() error
	Drag(r screen.Region, x1, y1, x2, y2 int) error
	TypeText(text string) error
	PressKey(name string) error
}

// Agent runs the perceive-plan-act-reflect loop until the context is
// cancelled or the STOP sentinel appears in the run directory.
type Agent struct {
	cfg     *config.Config
	capture screen.Capturer
	driver  Driver
	model   Completer
	eval    *sandbox.Evaluator
	runlog  *RunLog
	logger  *zap.Logger
	sleep   func(time.Duration)

	observation string
	calcCtx     sandbox.Context
}

// New wires an Agent from its collaborators. All of them are required.
func New(cfg *config.Config, capture screen.Capturer, driver Driver, model Completer, eval *sandbox.Evaluator, runlog *RunLog, logger *zap.Logger) (*Agent, error) {
	if cfg == nil {
		return nil, errors.New("agent requires a config")
	}
	if capture == nil {
		return nil, errors.New("agent requires a screen capturer")
	}
	if driver == nil {
		return nil, errors.New("agent requires an input driver")
	}
	if model == nil {
		return nil, errors.New("agent requires a model client")
	}
	if eval == nil {
		return nil, errors.New("agent requires a sandbox evaluator")
	}
	if runlog == nil {
		return nil, errors.New("agent requires a run log")
	}
	return &Agent{
		cfg:         cfg,
		capture:     capture,
		driver:      driver,
		model:       model,
		eval:        eval,
		runlog:      runlog,
		logger:      logger.Named("agent"),
		sleep:       time.Sleep,
		observation: initialObservation,
		calcCtx:     sandbox.Context{},
	}, nil
}

// Run executes cycles until ctx is cancelled or StopRequested. A failed
// capture or plan call pauses and restarts the cycle; it never ends the run.
func (a *Agent) Run(ctx context.Context) error {
	a.logger.Info("Agent starting",
		zap.String("run_dir", a.runlog.Dir()),
		zap.String("observation", a.observation))
	a.runlog.Append(fmt.Sprintf("START: %s\n\n", a.observation))

	step := 0
	for {
		if err := ctx.Err(); err != nil {
			a.logger.Info("Agent stopping", zap.Error(err))
			return nil
		}
		if a.runlog.StopRequested() {
			a.logger.Info("Stop sentinel found, agent stopping")
			return nil
		}
		step++

		pngCurrent, region, err := a.capture.Capture(a.cfg.Capture.Width, a.cfg.Capture.Height)
		if err != nil {
			a.logger.Error("Capture failed", zap.Int("step", step), zap.Error(err))
			a.sleep(a.cfg.Agent.RetryPause)
			continue
		}
		a.runlog.SaveCapture(step, "current", pngCurrent)

		a.logger.Info("Cycle starting",
			zap.Int("step", step),
			zap.String("observation", a.observation),
			zap.Strings("variables", a.calcCtx.Keys()))
		a.runlog.Append(fmt.Sprintf("STEP %d\nOBSERVATION: %s\nPYTHON CONTEXT: %v\n\n",
			step, a.observation, a.calcCtx.Keys()))

		planText, err := a.model.Complete(ctx, planPrompt, a.planRequest(), [][]byte{pngCurrent})
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			a.logger.Error("Plan call failed", zap.Int("step", step), zap.Error(err))
			a.sleep(a.cfg.Agent.RetryPause)
			continue
		}
		a.runlog.Append(fmt.Sprintf("PLAN:\n%s\n\n", planText))

		commands := protocol.Parse(planText)
		if len(commands) == 0 {
			// An unparseable plan degrades to a short pause, never a crash.
			commands = []protocol.Command{protocol.Wait{Millis: 2000}}
		}
		a.runlog.Append("COMMANDS:\n" + renderCommands(commands, "  ") + "\n")

		results := a.dispatch(commands, region)

		pngAfter, _, err := a.capture.Capture(a.cfg.Capture.Width, a.cfg.Capture.Height)
		if err != nil {
			a.logger.Error("Post-action capture failed", zap.Int("step", step), zap.Error(err))
			a.sleep(a.cfg.Agent.RetryPause)
			continue
		}
		a.runlog.SaveCapture(step, "after", pngAfter)

		reflectText, err := a.model.Complete(ctx, reflectPrompt, a.reflectRequest(commands, results), [][]byte{pngAfter})
		if err != nil {
			a.logger.Error("Reflect call failed", zap.Int("step", step), zap.Error(err))
			a.observation = fmt.Sprintf("%s [Step %d technical error]", a.observation, step)
		} else {
			a.observation = strings.TrimSpace(reflectText)
		}

		a.logger.Info("Cycle complete", zap.Int("step", step), zap.String("observation", a.observation))
		a.runlog.Append(fmt.Sprintf("NEW OBSERVATION:\n%s\n\n", a.observation))
		a.runlog.WriteObservation(a.observation)

		a.sleep(a.cfg.Agent.CycleDelay)
	}
}

func (a *Agent) planRequest() string {
	return fmt.Sprintf("Current observation:\n%s\n\nAvailable Python variables: %v\n\n"+
		"Look at the screen. Execute visible tasks one step at a time. "+
		"Use PYTHON_EXECUTE for calculations. "+
		"If no task present, output: WAIT 1000",
		a.observation, a.calcCtx.Keys())
}

func (a *Agent) reflectRequest(commands []protocol.Command, results []string) string {
	resultsText := "No execution results"
	if len(results) > 0 {
		resultsText = strings.Join(results, "\n")
	}
	return fmt.Sprintf("Previous observation:\n%s\n\nCommands executed:\n%s\n\n"+
		"Execution results:\n%s\n\nPython variables available: %v\n\n"+
		"Look at current screen and write new observation:",
		a.observation, renderCommands(commands, ""), resultsText, a.calcCtx.Keys())
}

func renderCommands(commands []protocol.Command, indent string) string {
	lines := make([]string, len(commands))
	for i, cmd := range commands {
		lines[i] = indent + cmd.String()
	}
	return strings.Join(lines, "\n")
}
