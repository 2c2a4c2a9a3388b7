package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/pkg/claimprogress"
	"backend/insurance-platform/app/pkg/sqs"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTimelineCommand(t *testing.T) {
	out, err := run(t, "timeline", "accident")
	require.NoError(t, err)

	for _, step := range claimprogress.Timeline(claim.Accident) {
		assert.Contains(t, out, step.Label)
	}
	assert.NotContains(t, out, string(claim.Medical))

	out, err = run(t, "timeline", "-o", "json")
	require.NoError(t, err)

	var views []timelineView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	assert.Len(t, views, len(claimprogress.TimelineTypes()))
}

func TestEstimateCommand(t *testing.T) {
	today := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	expected := claimprogress.Track(claimprogress.Claim{
		Type:      claim.Theft,
		Status:    claim.Processing,
		FiledDate: today,
	}, today)

	out, err := run(t, "estimate", "--type", "theft", "--status", "processing", "--today", "2024-03-01")
	require.NoError(t, err)
	assert.Contains(t, out, expected.Estimate.Message)
	assert.Equal(t, len(expected.Steps), strings.Count(out, "\n")-3)

	out, err = run(t, "estimate", "--status", "approved", "--resolved", "2024-02-10", "-o", "yaml")
	require.NoError(t, err)

	var progress map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &progress))
	assert.EqualValues(t, 100, progress["percentage"])
}

func TestEstimateCommandRejectsBadInput(t *testing.T) {
	_, err := run(t, "estimate", "--status", "archived")
	assert.Error(t, err)

	_, err = run(t, "estimate", "--today", "01/03/2024")
	assert.Error(t, err)

	_, err = run(t, "timeline", "-o", "xml")
	assert.Error(t, err)
}

func TestPublishMessage(t *testing.T) {
	opts := &publishOptions{status: "approved", amount: "1250.50"}

	body, err := opts.message("settled", "claim-7")
	require.NoError(t, err)

	msg, err := sqs.ParseMessage(string(body))
	require.NoError(t, err)
	assert.JSONEq(t, `{"claim_id":"claim-7","status":"approved","settlement_amount":"1250.5"}`, string(msg.Payload))

	_, err = (&publishOptions{status: "processing"}).message("settled", "claim-7")
	assert.Error(t, err)

	_, err = opts.message("archived", "claim-7")
	assert.Error(t, err)

	_, err = opts.message("review_started", "")
	assert.ErrorIs(t, err, sqs.ErrInvalidMessage)
}
