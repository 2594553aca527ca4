package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blogapp/e2e/internal/fixtures"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner executes scenarios one after another against freshly reset state
type Runner struct {
	browser  Browser
	fixtures fixtures.Client
	baseURL  string
	logger   *zap.Logger
	now      func() time.Time
}

// NewRunner creates a runner opening pages from browser and resetting state through fx
func NewRunner(browser Browser, fx fixtures.Client, baseURL string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		browser:  browser,
		fixtures: fx,
		baseURL:  baseURL,
		logger:   logger.Named("runner"),
		now:      time.Now,
	}
}

// Run executes every scenario in order. A failing scenario does not stop the
// others; a cancelled context marks the remaining scenarios as skipped.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) *Report {
	report := &Report{RunID: uuid.New().String(), StartedAt: r.now()}
	logger := r.logger.With(zap.String("run_id", report.RunID))
	logger.Info("run started", zap.Int("scenarios", len(scenarios)))

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, Result{
				Group:    sc.Group,
				Scenario: sc.Name,
				Status:   StatusSkipped,
				Err:      err,
			})
			continue
		}
		report.Results = append(report.Results, r.runOne(ctx, sc, logger))
	}

	report.Duration = r.now().Sub(report.StartedAt)
	logger.Info("run finished",
		zap.Int("passed", report.Passed()),
		zap.Int("failed", report.Failed()),
		zap.Int("skipped", report.Skipped()),
		zap.Duration("duration", report.Duration),
	)
	return report
}

// RunOne executes a single scenario
func (r *Runner) RunOne(ctx context.Context, sc Scenario) Result {
	return r.runOne(ctx, sc, r.logger)
}

func (r *Runner) runOne(ctx context.Context, sc Scenario, logger *zap.Logger) Result {
	logger = logger.With(zap.String("scenario", sc.ID()))
	logger.Debug("scenario started")

	start := r.now()
	err := r.execute(ctx, sc, logger)
	result := Result{
		Group:    sc.Group,
		Scenario: sc.Name,
		Status:   StatusPassed,
		Err:      err,
		Duration: r.now().Sub(start),
	}

	switch {
	case err == nil:
		logger.Info("scenario passed", zap.Duration("duration", result.Duration))
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		result.Status = StatusSkipped
		logger.Warn("scenario interrupted", zap.Error(err))
	default:
		result.Status = StatusFailed
		logger.Error("scenario failed",
			zap.String("kind", FailureKind(err)),
			zap.Duration("duration", result.Duration),
			zap.Error(err),
		)
	}
	return result
}

// execute performs the scenario's setup and steps on a fresh page
func (r *Runner) execute(ctx context.Context, sc Scenario, logger *zap.Logger) error {
	if err := r.fixtures.Reset(ctx); err != nil {
		return &SetupError{Stage: StageReset, Err: err}
	}
	for _, user := range sc.Users {
		if err := r.fixtures.CreateUser(ctx, user); err != nil {
			return &SetupError{Stage: StageCreateUser, Err: fmt.Errorf("%s: %w", user.Username, err)}
		}
	}

	page, err := r.browser.NewPage()
	if err != nil {
		return &SetupError{Stage: StageOpenPage, Err: err}
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.Warn("failed to close page", zap.Error(err))
		}
	}()

	session := &Session{Page: page, BaseURL: r.baseURL}

	if err := Goto("/").Run(ctx, session); err != nil {
		return &SetupError{Stage: StageNavigate, Err: err}
	}

	if sc.LoginAs != nil {
		login := Group("log in as "+sc.LoginAs.Username,
			LogIn(*sc.LoginAs),
			ExpectVisible(Text(sc.LoginAs.LoggedInBanner())),
		)
		if err := login.Run(ctx, session); err != nil {
			return &SetupError{Stage: StageLogin, Err: err}
		}
	}

	for i, step := range sc.Steps {
		logger.Debug("step", zap.Int("index", i), zap.Stringer("step", step))
		if err := step.Run(ctx, session); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
	}
	return nil
}
