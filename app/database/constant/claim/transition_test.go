package claim_test

import (
	"testing"

	"backend/insurance-platform/app/database/constant/claim"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name string
		from claim.Status
		to   claim.Status
		want bool
	}{
		{name: "pending to processing", from: claim.Pending, to: claim.Processing, want: true},
		{name: "pending to rejected", from: claim.Pending, to: claim.Rejected, want: true},
		{name: "processing to approved", from: claim.Processing, to: claim.Approved, want: true},
		{name: "processing to rejected", from: claim.Processing, to: claim.Rejected, want: true},
		{name: "pending to approved skips review", from: claim.Pending, to: claim.Approved, want: false},
		{name: "approved is terminal", from: claim.Approved, to: claim.Processing, want: false},
		{name: "rejected is terminal", from: claim.Rejected, to: claim.Pending, want: false},
		{name: "same status", from: claim.Processing, to: claim.Processing, want: false},
		{name: "unknown source", from: claim.Status("archived"), to: claim.Processing, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, claim.ValidTransition(tt.from, tt.to))
		})
	}
}

func TestNextStatusesReturnsCopy(t *testing.T) {
	next := claim.NextStatuses(claim.Pending)
	assert.Equal(t, []claim.Status{claim.Processing, claim.Rejected}, next)

	next[0] = claim.Approved
	assert.Equal(t, []claim.Status{claim.Processing, claim.Rejected}, claim.NextStatuses(claim.Pending))
	assert.Empty(t, claim.NextStatuses(claim.Approved))
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range claim.Types {
		assert.True(t, typ.IsValid(), typ)
	}
	assert.False(t, claim.Type("flood").IsValid())
	assert.False(t, claim.Type("").IsValid())
}

func TestStatusScan(t *testing.T) {
	var s claim.Status
	assert.NoError(t, s.Scan("approved"))
	assert.Equal(t, claim.Approved, s)
	assert.NoError(t, s.Scan([]byte("rejected")))
	assert.Equal(t, claim.Rejected, s)
	assert.Error(t, s.Scan(42))
	assert.True(t, claim.Approved.IsTerminal())
	assert.False(t, claim.Processing.IsTerminal())
}
