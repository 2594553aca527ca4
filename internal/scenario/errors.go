package scenario

import (
	"errors"
	"fmt"
)

// Setup stages
const (
	StageReset      = "reset"
	StageCreateUser = "create-user"
	StageOpenPage   = "open-page"
	StageNavigate   = "navigate"
	StageLogin      = "login"
)

// SetupError reports a failure before the scenario's own steps ran
type SetupError struct {
	Stage string
	Err   error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup failed at %s: %v", e.Stage, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// LocatorError reports an element that never became actionable within the timeout
type LocatorError struct {
	Locator Locator
	Action  string
	Err     error
}

func (e *LocatorError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Action, e.Locator, e.Err)
}

func (e *LocatorError) Unwrap() error { return e.Err }

// AssertionError reports an expected UI state that was not observed within the timeout
type AssertionError struct {
	Locator  Locator
	Expected string
	Actual   string
	Err      error
}

func (e *AssertionError) Error() string {
	msg := fmt.Sprintf("expected %s to be %s", e.Locator, e.Expected)
	if e.Actual != "" {
		msg += fmt.Sprintf(", got %s", e.Actual)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *AssertionError) Unwrap() error { return e.Err }

// Mismatch is returned by a Page when an expectation was evaluated and did not
// hold. Actual describes what was observed instead.
type Mismatch struct {
	Actual string
	Err    error
}

func (e *Mismatch) Error() string {
	if e.Err == nil {
		return "observed " + e.Actual
	}
	return fmt.Sprintf("observed %s: %v", e.Actual, e.Err)
}

func (e *Mismatch) Unwrap() error { return e.Err }

// IsSetupError reports whether err is or wraps a *SetupError
func IsSetupError(err error) bool {
	var target *SetupError
	return errors.As(err, &target)
}

// IsLocatorError reports whether err is or wraps a *LocatorError
func IsLocatorError(err error) bool {
	var target *LocatorError
	return errors.As(err, &target)
}

// IsAssertionError reports whether err is or wraps an *AssertionError
func IsAssertionError(err error) bool {
	var target *AssertionError
	return errors.As(err, &target)
}

// FailureKind names the category of a scenario failure
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsSetupError(err):
		return "setup"
	case IsLocatorError(err):
		return "locator"
	case IsAssertionError(err):
		return "assertion"
	default:
		return "error"
	}
}
