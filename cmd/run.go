// File: cmd/run.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/agent"
	"github.com/wgabrys88/franz/internal/config"
	"github.com/wgabrys88/franz/internal/input"
	"github.com/wgabrys88/franz/internal/observability"
	"github.com/wgabrys88/franz/internal/sandbox"
	"github.com/wgabrys88/franz/internal/screen"
	"github.com/wgabrys88/franz/internal/vlm"
)

// newRunCmd creates and configures the `run` command.
func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Starts the observe-plan-act loop against the local desktop",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags so they override the config file and environment
			// with the right precedence.
			if err := viper.BindPFlag("model.endpoint", cmd.Flags().Lookup("endpoint")); err != nil {
				return err
			}
			if err := viper.BindPFlag("model.name", cmd.Flags().Lookup("model")); err != nil {
				return err
			}
			return viper.BindPFlag("agent.runs_dir", cmd.Flags().Lookup("runs-dir"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Tag every log line of this run with one ID.
			runID := uuid.New().String()
			logger := observability.GetLogger().With(zap.String("runID", runID))

			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return fmt.Errorf("failed to finalize config: %w", err)
			}

			// Stop cleanly on Ctrl-C or SIGTERM; the loop also honors the
			// STOP sentinel in the run directory.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			screen.ConfigureDPIAwareness(logger)

			capturer, err := screen.NewCapturer(logger)
			if err != nil {
				return fmt.Errorf("failed to initialize screen capture: %w", err)
			}
			synthesizer, err := input.NewSynthesizer(logger)
			if err != nil {
				return fmt.Errorf("failed to initialize input synthesis: %w", err)
			}

			runlog, err := agent.NewRunLog(cfg.Agent.RunsDir, logger)
			if err != nil {
				return err
			}

			model := vlm.NewClient(cfg.Model, logger)
			eval := sandbox.NewEvaluator(logger)

			a, err := agent.New(cfg, capturer, synthesizer, model, eval, runlog, logger)
			if err != nil {
				return err
			}

			logger.Info("Starting run",
				zap.String("run_dir", runlog.Dir()),
				zap.String("endpoint", cfg.Model.Endpoint),
				zap.String("model", cfg.Model.Name))

			if err := a.Run(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Warn("Run aborted by signal")
					return nil
				}
				return fmt.Errorf("run %s failed: %w", runID, err)
			}
			logger.Info("Run finished")
			return nil
		},
	}

	runCmd.Flags().String("endpoint", "", "chat-completions endpoint URL (overrides config)")
	runCmd.Flags().String("model", "", "model name sent with each request (overrides config)")
	runCmd.Flags().String("runs-dir", "", "parent directory for run artifacts (overrides config)")
	return runCmd
}
