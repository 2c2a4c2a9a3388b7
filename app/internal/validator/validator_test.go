package validator_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/internal/validator"
)

type tagged struct {
	Tags []string `json:"tags" validate:"notblank"`
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	var httpErr *echo.HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusBadRequest, httpErr.Code)

	body, ok := httpErr.Message.(response.GeneralResponse[any])
	require.True(t, ok)
	out := make(map[string]string, len(body.ErrorDetails))
	for _, d := range body.ErrorDetails {
		out[d.Field] = d.Message
	}
	return out
}

func TestCreateClaimRequest(t *testing.T) {
	v := validator.NewValidators(runtime.Resource{})
	today := time.Now().UTC().Format(request.DateLayout)

	valid := request.CreateClaimRequest{
		PolicyID:     "1",
		Type:         claim.Medical,
		Description:  "Hospitalised for two nights after a fall",
		Amount:       decimal.NewFromInt(100),
		IncidentDate: today,
	}
	assert.NoError(t, v.Validate(valid))

	invalid := valid
	invalid.PolicyID = "   "
	invalid.Type = "flood"
	invalid.Amount = decimal.Zero
	invalid.IncidentDate = time.Now().UTC().AddDate(0, 0, 3).Format(request.DateLayout)

	got := details(t, v.Validate(invalid))
	assert.Equal(t, "must not be blank", got["policy_id"])
	assert.Equal(t, "must be one of: medical, accident, theft, baggage, other", got["type"])
	assert.Equal(t, "must be greater than 0", got["amount"])
	assert.Contains(t, got["incident_date"], "not in the future")
}

func TestNotBlankSlice(t *testing.T) {
	v := validator.NewValidators(runtime.Resource{})

	assert.NoError(t, v.Validate(tagged{Tags: []string{"cashless", "opd"}}))
	assert.NoError(t, v.Validate(tagged{}))

	got := details(t, v.Validate(tagged{Tags: []string{"cashless", " "}}))
	assert.Equal(t, "must not be blank", got["tags"])
}
