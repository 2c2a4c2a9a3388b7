package job

// EventType names a claim-management event delivered over SQS.
type EventType string

const (
	ClaimReviewStarted EventType = "claim.review_started"
	ClaimSettled       EventType = "claim.settled"
)

func (e EventType) String() string {
	return string(e)
}

func (e EventType) ToJobType() Type {
	switch e {
	case ClaimReviewStarted:
		return ReviewClaim
	case ClaimSettled:
		return SettleClaim
	default:
		return ""
	}
}

func (e EventType) ToPriority() Priority {
	switch e {
	case ClaimSettled:
		return PriorityHigh
	case ClaimReviewStarted:
		return PriorityNormal
	default:
		return PriorityLow
	}
}
