// File: internal/agent/runlog.go
// Description: Per-run artifact directory. Every run gets a timestamped
// directory holding the screenshots, the append-only transcript, the latest
// observation, and the STOP sentinel file an operator creates to end the run.
package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	transcriptName  = "log.txt"
	observationName = "observation.txt"
	stopName        = "STOP"
)

// RunLog writes run artifacts. All writes are best-effort: a full disk must
// not stop the agent, so failures are logged and swallowed.
type RunLog struct {
	dir    string
	logger *zap.Logger
}

// NewRunLog creates <runsDir>/<timestamp> and returns a RunLog rooted there.
func NewRunLog(runsDir string, logger *zap.Logger) (*RunLog, error) {
	dir := filepath.Join(runsDir, time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory %s: %w", dir, err)
	}
	return &RunLog{dir: dir, logger: logger.Named("runlog")}, nil
}

// Dir returns the run directory path.
func (r *RunLog) Dir() string {
	return r.dir
}

// StopRequested reports whether the operator has created the STOP sentinel.
func (r *RunLog) StopRequested() bool {
	_, err := os.Stat(filepath.Join(r.dir, stopName))
	return err == nil
}

// SaveCapture stores one screenshot as <step>_<stage>.png, e.g.
// 0001_current.png or 0001_after.png.
func (r *RunLog) SaveCapture(step int, stage string, png []byte) {
	name := fmt.Sprintf("%04d_%s.png", step, stage)
	if err := os.WriteFile(filepath.Join(r.dir, name), png, 0o644); err != nil {
		r.logger.Warn("Failed to save capture", zap.String("file", name), zap.Error(err))
	}
}

// Append adds text to the run transcript.
func (r *RunLog) Append(text string) {
	f, err := os.OpenFile(filepath.Join(r.dir, transcriptName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		r.logger.Warn("Failed to open transcript", zap.Error(err))
		return
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		r.logger.Warn("Failed to append to transcript", zap.Error(err))
	}
}

// WriteObservation replaces observation.txt with the latest observation.
func (r *RunLog) WriteObservation(observation string) {
	if err := os.WriteFile(filepath.Join(r.dir, observationName), []byte(observation), 0o644); err != nil {
		r.logger.Warn("Failed to write observation", zap.Error(err))
	}
}
