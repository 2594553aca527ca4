package scenario

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Status is the outcome of a scenario
type Status string

// Scenario outcomes
const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one scenario
type Result struct {
	Group    string
	Scenario string
	Status   Status
	Err      error
	Duration time.Duration
}

// ID returns the "Group/Name" identifier of the scenario
func (r Result) ID() string {
	return Scenario{Group: r.Group, Name: r.Scenario}.ID()
}

// Report collects the results of one run
type Report struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Results   []Result
}

// Passed returns the number of passed scenarios
func (r *Report) Passed() int { return r.count(StatusPassed) }

// Failed returns the number of failed scenarios
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Skipped returns the number of skipped scenarios
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// OK reports whether every scenario passed
func (r *Report) OK() bool {
	return r.Passed() == len(r.Results)
}

func (r *Report) count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	skipLabel = color.New(color.FgYellow).SprintFunc()
)

// WriteSummary prints one line per scenario followed by the totals
func (r *Report) WriteSummary(w io.Writer) error {
	for _, res := range r.Results {
		var label string
		switch res.Status {
		case StatusPassed:
			label = passLabel("PASS")
		case StatusFailed:
			label = failLabel("FAIL")
		default:
			label = skipLabel("SKIP")
		}
		if _, err := fmt.Fprintf(w, "%s  %s (%s)\n", label, res.ID(), res.Duration.Round(time.Millisecond)); err != nil {
			return err
		}
		if res.Status == StatusFailed && res.Err != nil {
			if _, err := fmt.Fprintf(w, "      %s: %v\n", FailureKind(res.Err), res.Err); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n%d passed, %d failed, %d skipped in %s (run %s)\n",
		r.Passed(), r.Failed(), r.Skipped(), r.Duration.Round(time.Millisecond), r.RunID)
	return err
}
