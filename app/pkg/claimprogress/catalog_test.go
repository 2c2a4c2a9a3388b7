package claimprogress_test

import (
	"testing"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/pkg/claimprogress"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTimeline(t *testing.T) {
	tests := []struct {
		name     string
		typ      claim.Type
		wantKeys []string
	}{
		{
			name:     "medical",
			typ:      claim.Medical,
			wantKeys: []string{"submitted", "document_review", "medical_assessment", "approval", "settlement"},
		},
		{
			name:     "accident",
			typ:      claim.Accident,
			wantKeys: []string{"submitted", "incident_verification", "damage_assessment", "approval", "settlement"},
		},
		{
			name:     "baggage",
			typ:      claim.Baggage,
			wantKeys: []string{"submitted", "airline_verification", "loss_assessment", "approval", "settlement"},
		},
		{
			name:     "theft",
			typ:      claim.Theft,
			wantKeys: []string{"submitted", "police_report_review", "investigation", "approval", "settlement"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := claimprogress.Timeline(tt.typ)

			keys := make([]string, len(steps))
			for i, s := range steps {
				keys[i] = s.Key
				assert.NotEmpty(t, s.Label)
				assert.NotEmpty(t, s.Description)
			}
			if diff := cmp.Diff(tt.wantKeys, keys); diff != "" {
				t.Errorf("Timeline(%q) keys mismatch (-want +got):\n%s", tt.typ, diff)
			}
		})
	}
}

func TestTimelineFallsBackToMedical(t *testing.T) {
	medical := claimprogress.Timeline(claim.Medical)

	for _, typ := range []claim.Type{claim.Other, "", "unknown-type", "MEDICAL"} {
		if diff := cmp.Diff(medical, claimprogress.Timeline(typ)); diff != "" {
			t.Errorf("Timeline(%q) differs from medical (-want +got):\n%s", typ, diff)
		}
	}
}

func TestTimelineReturnsCopy(t *testing.T) {
	steps := claimprogress.Timeline(claim.Theft)
	steps[0].Label = "changed"

	again := claimprogress.Timeline(claim.Theft)
	assert.Len(t, again, 5)
	assert.Equal(t, "Claim Submitted", again[0].Label)
	assert.Equal(t, "police_report_review", again[1].Key)
}

func TestTimelineKeysUnique(t *testing.T) {
	for _, typ := range claimprogress.TimelineTypes() {
		seen := map[string]bool{}
		for _, s := range claimprogress.Timeline(typ) {
			assert.False(t, seen[s.Key], "duplicate key %q in %s timeline", s.Key, typ)
			seen[s.Key] = true
		}
	}
}

func TestTypicalDays(t *testing.T) {
	assert.Equal(t, 7, claimprogress.TypicalDays(claim.Medical))
	assert.Equal(t, 14, claimprogress.TypicalDays(claim.Accident))
	assert.Equal(t, 10, claimprogress.TypicalDays(claim.Baggage))
	assert.Equal(t, 21, claimprogress.TypicalDays(claim.Theft))
	assert.Equal(t, 7, claimprogress.TypicalDays(claim.Other))
	assert.Equal(t, 7, claimprogress.TypicalDays("flood"))
}
