package claimprogress_test

import (
	"testing"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/pkg/claimprogress"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []claim.Status{claim.Pending, claim.Processing, claim.Approved, claim.Rejected}

func TestCurrentStep(t *testing.T) {
	tests := []struct {
		name      string
		status    claim.Status
		stepCount int
		want      int
	}{
		{name: "pending starts at first step", status: claim.Pending, stepCount: 5, want: 0},
		{name: "processing sits at 60 percent", status: claim.Processing, stepCount: 5, want: 3},
		{name: "approved is last step", status: claim.Approved, stepCount: 5, want: 4},
		{name: "rejected stalls halfway", status: claim.Rejected, stepCount: 5, want: 2},
		{name: "unknown status behaves like pending", status: "on_hold", stepCount: 5, want: 0},
		{name: "processing on ten steps", status: claim.Processing, stepCount: 10, want: 6},
		{name: "rejected on three steps", status: claim.Rejected, stepCount: 3, want: 1},
		{name: "single step timeline approved", status: claim.Approved, stepCount: 1, want: 0},
		{name: "single step timeline processing", status: claim.Processing, stepCount: 1, want: 0},
		{name: "empty timeline", status: claim.Approved, stepCount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, claimprogress.CurrentStep(tt.status, tt.stepCount))
		})
	}
}

func TestCurrentStepAlwaysInRange(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for _, status := range allStatuses {
			idx := claimprogress.CurrentStep(status, n)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, n, "status %s with %d steps", status, n)
		}
	}
}

func TestCurrentStepIndexPerType(t *testing.T) {
	for _, typ := range append(claimprogress.TimelineTypes(), claim.Other) {
		n := len(claimprogress.Timeline(typ))
		assert.Equal(t, 0, claimprogress.CurrentStepIndex(claimprogress.Claim{Type: typ, Status: claim.Pending}))
		assert.Equal(t, n-1, claimprogress.CurrentStepIndex(claimprogress.Claim{Type: typ, Status: claim.Approved}))
	}
}

func TestStepStates(t *testing.T) {
	const (
		done      = claimprogress.StepCompleted
		current   = claimprogress.StepCurrent
		pending   = claimprogress.StepPending
		cancelled = claimprogress.StepCancelled
	)

	tests := []struct {
		name   string
		status claim.Status
		want   []claimprogress.StepState
	}{
		{name: "pending", status: claim.Pending, want: []claimprogress.StepState{current, pending, pending, pending, pending}},
		{name: "processing", status: claim.Processing, want: []claimprogress.StepState{done, done, done, current, pending}},
		{name: "approved", status: claim.Approved, want: []claimprogress.StepState{done, done, done, done, current}},
		{name: "rejected", status: claim.Rejected, want: []claimprogress.StepState{done, done, current, cancelled, cancelled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := claimprogress.StepStates(claimprogress.Claim{Type: claim.Accident, Status: tt.status})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		status claim.Status
		want   float64
	}{
		{status: claim.Pending, want: 20},
		{status: claim.Processing, want: 80},
		{status: claim.Approved, want: 100},
		{status: claim.Rejected, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			got := claimprogress.ProgressPercentage(claimprogress.Claim{Type: claim.Medical, Status: tt.status})
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}
