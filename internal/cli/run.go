package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/blogapp/e2e/internal/config"
	"github.com/blogapp/e2e/internal/fixtures"
	"github.com/blogapp/e2e/internal/scenario"
	"go.uber.org/zap"
)

// RunDependencies holds all dependencies needed for a suite run
type RunDependencies struct {
	App       *config.AppConfig
	Browser   scenario.Browser
	Fixtures  fixtures.Client
	Scenarios []scenario.Scenario
	Logger    *zap.Logger
	Out       io.Writer
}

// FailedError is returned when at least one scenario did not pass
type FailedError struct {
	Failed  int
	Skipped int
	Total   int
}

func (e *FailedError) Error() string {
	if e.Skipped > 0 {
		return fmt.Sprintf("%d of %d scenarios failed, %d skipped", e.Failed, e.Total, e.Skipped)
	}
	return fmt.Sprintf("%d of %d scenarios failed", e.Failed, e.Total)
}

// RunSuite runs the scenarios, writes the summary to deps.Out and returns a
// *FailedError unless every scenario passed
func RunSuite(ctx context.Context, deps RunDependencies) (*scenario.Report, error) {
	if len(deps.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios selected")
	}

	runner := scenario.NewRunner(deps.Browser, deps.Fixtures, deps.App.UIBaseURL, deps.Logger)
	report := runner.Run(ctx, deps.Scenarios)

	if err := report.WriteSummary(deps.Out); err != nil {
		return report, fmt.Errorf("failed to write summary: %w", err)
	}

	if !report.OK() {
		return report, &FailedError{Failed: report.Failed(), Skipped: report.Skipped(), Total: len(report.Results)}
	}
	return report, nil
}

// WithShutdownSignals returns a context that is cancelled on the first shutdown signal.
// If shutdown is nil, a new channel is created and registered with signal.Notify.
// The running step still completes; the remaining ones are skipped.
func WithShutdownSignals(parent context.Context, shutdown chan os.Signal, logger *zap.Logger) (context.Context, context.CancelFunc) {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	}

	ctx, cancel := context.WithCancel(parent)
	go func() {
		defer signal.Stop(shutdown)
		select {
		case sig := <-shutdown:
			logger.Warn("received signal, stopping after the current step", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
