package claimprogress

import (
	"time"

	"backend/insurance-platform/app/database/constant/claim"
)

// Estimate describes when a claim is expected to be, or was, resolved.
// EstimatedDays and EstimatedDate are only set while the claim is in progress,
// CompletedDate only once it reached a terminal status.
type Estimate struct {
	Completed     bool       `json:"completed"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	EstimatedDays *int       `json:"estimated_days,omitempty"`
	EstimatedDate *time.Time `json:"estimated_date,omitempty"`
	Message       string     `json:"message"`
}

// TrackedStep is a timeline step together with its display state.
type TrackedStep struct {
	Step
	State StepState `json:"state"`
}

// Progress bundles everything needed to render a claim's progress.
type Progress struct {
	Steps       []TrackedStep `json:"steps"`
	CurrentStep int           `json:"current_step"`
	TotalSteps  int           `json:"total_steps"`
	Percentage  float64       `json:"percentage"`
	Estimate    Estimate      `json:"estimate"`
}

// EstimateCompletion computes the completion estimate of c as seen on the given day.
//
// Terminal claims report their resolution date: the approval date, else the rejection
// date, else the filed date. Claims still in progress get the share of the type's
// typical processing time that corresponds to the steps after the current one,
// rounded up and never less than one day. The filed date does not shorten the
// estimate; only status and the current day matter.
func EstimateCompletion(c Claim, today time.Time) Estimate {
	if c.Status.IsTerminal() {
		return terminalEstimate(c)
	}

	total := len(Timeline(c.Type))
	current := CurrentStep(c.Status, total)
	remainingSteps := total - current - 1

	days := ceilDiv(remainingSteps*TypicalDays(c.Type), total)
	if days < 1 {
		days = 1
	}
	estimated := truncateToDay(today).AddDate(0, 0, days)

	return Estimate{
		Completed:     false,
		EstimatedDays: &days,
		EstimatedDate: &estimated,
		Message:       ExpectedCompletionMessage(days),
	}
}

func terminalEstimate(c Claim) Estimate {
	completed := c.FiledDate
	switch {
	case c.ApprovedDate != nil:
		completed = *c.ApprovedDate
	case c.RejectedDate != nil:
		completed = *c.RejectedDate
	}

	msg := msgSettled
	if c.Status == claim.Rejected {
		msg = msgRejected
	}

	return Estimate{
		Completed:     true,
		CompletedDate: &completed,
		Message:       printer.Sprintf(msg),
	}
}

// ExpectedCompletionMessage renders the in-progress message for the given number of days.
func ExpectedCompletionMessage(days int) string {
	return printer.Sprintf(msgExpectedCompletion, days)
}

// Track computes the full progress view of c as seen on the given day.
func Track(c Claim, today time.Time) Progress {
	steps := Timeline(c.Type)
	states := StepStates(c)

	tracked := make([]TrackedStep, len(steps))
	for i, step := range steps {
		tracked[i] = TrackedStep{Step: step, State: states[i]}
	}

	return Progress{
		Steps:       tracked,
		CurrentStep: CurrentStep(c.Status, len(steps)),
		TotalSteps:  len(steps),
		Percentage:  ProgressPercentage(c),
		Estimate:    EstimateCompletion(c, today),
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
