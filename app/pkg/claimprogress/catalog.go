// Package claimprogress derives the progress view of a claim from its type and status:
// the ordered timeline of steps, the step the claim currently sits on and an estimate of
// when it will be resolved. Everything here is a pure function over read-only tables.
package claimprogress

import (
	"backend/insurance-platform/app/database/constant/claim"
)

// Step is one stage of a claim timeline.
type Step struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// fallbackType is used for claim types without a dedicated timeline.
const fallbackType = claim.Medical

var timelines = map[claim.Type][]Step{
	claim.Medical: {
		{Key: "submitted", Label: "Claim Submitted", Description: "Your claim has been received and registered"},
		{Key: "document_review", Label: "Document Review", Description: "Medical bills and reports are being verified"},
		{Key: "medical_assessment", Label: "Medical Assessment", Description: "A medical officer is assessing the treatment details"},
		{Key: "approval", Label: "Approval", Description: "The claim amount is being approved"},
		{Key: "settlement", Label: "Settlement", Description: "The approved amount is being transferred"},
	},
	claim.Accident: {
		{Key: "submitted", Label: "Claim Submitted", Description: "Your claim has been received and registered"},
		{Key: "incident_verification", Label: "Incident Verification", Description: "The accident report and photos are being verified"},
		{Key: "damage_assessment", Label: "Damage Assessment", Description: "A surveyor is assessing the damage"},
		{Key: "approval", Label: "Approval", Description: "The repair estimate is being approved"},
		{Key: "settlement", Label: "Settlement", Description: "The approved amount is being transferred"},
	},
	claim.Baggage: {
		{Key: "submitted", Label: "Claim Submitted", Description: "Your claim has been received and registered"},
		{Key: "airline_verification", Label: "Airline Verification", Description: "The property irregularity report is being confirmed with the airline"},
		{Key: "loss_assessment", Label: "Loss Assessment", Description: "The value of the lost or delayed baggage is being assessed"},
		{Key: "approval", Label: "Approval", Description: "The claim amount is being approved"},
		{Key: "settlement", Label: "Settlement", Description: "The approved amount is being transferred"},
	},
	claim.Theft: {
		{Key: "submitted", Label: "Claim Submitted", Description: "Your claim has been received and registered"},
		{Key: "police_report_review", Label: "Police Report Review", Description: "The police report is being reviewed"},
		{Key: "investigation", Label: "Investigation", Description: "An investigator is looking into the circumstances of the theft"},
		{Key: "approval", Label: "Approval", Description: "The claim amount is being approved"},
		{Key: "settlement", Label: "Settlement", Description: "The approved amount is being transferred"},
	},
}

// typicalDays is the usual end-to-end processing time per claim type.
var typicalDays = map[claim.Type]int{
	claim.Medical:  7,
	claim.Accident: 14,
	claim.Baggage:  10,
	claim.Theft:    21,
}

const defaultTypicalDays = 7

// Timeline returns the ordered steps for a claim type. Types without a dedicated
// timeline, including "other" and the empty string, get the medical timeline.
// The returned slice is a copy and may be modified by the caller.
func Timeline(t claim.Type) []Step {
	steps, ok := timelines[t]
	if !ok {
		steps = timelines[fallbackType]
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

// TimelineTypes lists the claim types that have a dedicated timeline.
func TimelineTypes() []claim.Type {
	return []claim.Type{claim.Medical, claim.Accident, claim.Baggage, claim.Theft}
}

// TypicalDays returns the usual total processing time for a claim type.
func TypicalDays(t claim.Type) int {
	if days, ok := typicalDays[t]; ok {
		return days
	}
	return defaultTypicalDays
}
