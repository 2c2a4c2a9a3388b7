package claimprogress

import (
	"time"

	"backend/insurance-platform/app/database/constant/claim"
)

// Claim is the part of a claim record the progress view is computed from.
type Claim struct {
	Type         claim.Type
	Status       claim.Status
	FiledDate    time.Time
	ApprovedDate *time.Time
	RejectedDate *time.Time
}

// StepState is the display state of a single timeline step.
type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepPending   StepState = "pending"
	StepCancelled StepState = "cancelled"
)

// CurrentStep maps a status onto an index of a timeline with stepCount steps.
// Processing and rejected claims are placed at fixed fractions of the timeline
// (60% and 50%) since the actual sub-state is not tracked. Unknown statuses
// are treated like pending. The result is always within [0, stepCount).
func CurrentStep(status claim.Status, stepCount int) int {
	if stepCount <= 0 {
		return 0
	}

	var idx int
	switch status {
	case claim.Pending:
		idx = 0
	case claim.Processing:
		idx = stepCount * 6 / 10
	case claim.Approved:
		idx = stepCount - 1
	case claim.Rejected:
		idx = stepCount * 5 / 10
	default:
		idx = 0
	}

	if idx >= stepCount {
		idx = stepCount - 1
	}
	return idx
}

// CurrentStepIndex resolves the current step of c on its own timeline.
func CurrentStepIndex(c Claim) int {
	return CurrentStep(c.Status, len(Timeline(c.Type)))
}

// StepStates returns the display state of every step of the claim's timeline.
func StepStates(c Claim) []StepState {
	n := len(Timeline(c.Type))
	current := CurrentStep(c.Status, n)

	states := make([]StepState, n)
	for i := range states {
		switch {
		case c.Status == claim.Rejected && i > current:
			states[i] = StepCancelled
		case i < current:
			states[i] = StepCompleted
		case i == current:
			states[i] = StepCurrent
		default:
			states[i] = StepPending
		}
	}
	return states
}

// ProgressPercentage is the share of the timeline behind the claim, in [0, 100].
func ProgressPercentage(c Claim) float64 {
	n := len(Timeline(c.Type))
	if n == 0 {
		return 0
	}
	current := CurrentStep(c.Status, n)

	switch c.Status {
	case claim.Approved:
		return 100
	case claim.Rejected:
		return float64(current) / float64(n) * 100
	default:
		return float64(current+1) / float64(n) * 100
	}
}
