package integration

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/pkg/claimprogress"
	testutil "backend/insurance-platform/app/test/util"
)

func (s *RouterSuite) TestListClaimsIsUserScoped() {
	res, code, err := testutil.RequestHTTP[response.GeneralResponse[response.PaginationResponse[response.ClaimResponse]]](
		s.e, http.MethodGet, "/api/v1/claims", s.headers("user1"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.EqualValues(3, res.Data.Paging.Total)
	for _, c := range res.Data.Data {
		s.a.Equal("user1", c.UserID)
	}

	res, code, err = testutil.RequestHTTP[response.GeneralResponse[response.PaginationResponse[response.ClaimResponse]]](
		s.e, http.MethodGet, "/api/v1/claims?status=rejected", s.headers("user2"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.r.Len(res.Data.Data, 1)
	s.a.Equal("4", res.Data.Data[0].ID)

	code = testutil.Status(s.e, http.MethodGet, "/api/v1/claims?status=archived", s.headers("user1"))
	s.a.Equal(http.StatusBadRequest, code)
}

func (s *RouterSuite) TestClaimProgress() {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	expected := claimprogress.Track(claimprogress.Claim{
		Type:      claim.Medical,
		Status:    claim.Processing,
		FiledDate: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
	}, today)

	for range 2 {
		res, code, err := testutil.RequestHTTP[response.GeneralResponse[response.ProgressResponse]](
			s.e, http.MethodGet, "/api/v1/claims/1/progress?today=2024-06-10", s.headers("user1"), nil)
		s.r.NoError(err)
		s.r.Equal(http.StatusOK, code)

		s.a.Equal(expected.CurrentStep, res.Data.CurrentStep)
		s.a.Equal(expected.TotalSteps, res.Data.TotalSteps)
		s.a.InDelta(expected.Percentage, res.Data.Percentage, 0.001)
		s.a.Equal(expected.Estimate.Message, res.Data.Estimate.Message)
		s.a.Equal(expected.Estimate.EstimatedDays, res.Data.Estimate.EstimatedDays)
		s.r.Len(res.Data.Steps, expected.TotalSteps)
		s.a.Equal(claimprogress.StepCurrent, res.Data.Steps[expected.CurrentStep].State)
	}
	s.a.NotEmpty(s.resource.Miniredis.Keys(), "in-progress views are cached")
}

func (s *RouterSuite) TestSettledClaimProgress() {
	res, code, err := testutil.RequestHTTP[response.GeneralResponse[response.ProgressResponse]](
		s.e, http.MethodGet, "/api/v1/claims/4/progress", s.headers("user2"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)

	s.a.True(res.Data.Estimate.Completed)
	s.r.NotNil(res.Data.Estimate.CompletedDate)
	s.a.Equal("2024-03-30", *res.Data.Estimate.CompletedDate)
	s.a.Nil(res.Data.Estimate.EstimatedDays)
	s.a.Contains(res.Data.Steps, response.ProgressStepResponse{
		Index:       len(res.Data.Steps) - 1,
		Key:         "settlement",
		Label:       "Settlement",
		Description: "The approved amount is being transferred",
		State:       claimprogress.StepCancelled,
	})

	code = testutil.Status(s.e, http.MethodGet, "/api/v1/claims/missing/progress", s.headers("user1"))
	s.a.Equal(http.StatusNotFound, code)

	code = testutil.Status(s.e, http.MethodGet, "/api/v1/claims/1/progress?today=10-06-2024", s.headers("user1"))
	s.a.Equal(http.StatusBadRequest, code)
}

func (s *RouterSuite) TestClaimTimelines() {
	res, code, err := testutil.RequestHTTP[response.GeneralResponse[[]response.TimelineResponse]](
		s.e, http.MethodGet, "/api/v1/claim-timelines", s.headers("user1"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.Len(res.Data, len(claimprogress.TimelineTypes()))

	other, code, err := testutil.RequestHTTP[response.GeneralResponse[response.TimelineResponse]](
		s.e, http.MethodGet, "/api/v1/claim-timelines/other", s.headers("user1"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.Equal(claimprogress.Timeline(claim.Medical), other.Data.Steps)
}

func (s *RouterSuite) TestFileAndSettleClaim() {
	incident := s.now.AddDate(0, 0, -3).Format(request.DateLayout)
	created, code, err := testutil.RequestHTTP[response.GeneralResponse[response.ClaimResponse]](
		s.e, http.MethodPost, "/api/v1/claims", s.headers("user1"), request.CreateClaimRequest{
			PolicyID:     "2",
			Type:         claim.Accident,
			Description:  "Side mirror broken by a passing truck on the highway",
			Amount:       decimal.NewFromInt(12000),
			IncidentDate: incident,
		})
	s.r.NoError(err)
	s.r.Equal(http.StatusCreated, code)
	s.a.Equal(claim.Pending, created.Data.Status)
	s.a.Equal(s.now.Format(request.DateLayout), created.Data.FiledDate)

	statusURL := fmt.Sprintf("/api/v1/claims/%s/status", created.Data.ID)
	approve := request.UpdateClaimStatusRequest{Status: claim.Approved}

	_, code, _ = testutil.RequestHTTP[response.GeneralResponse[any]](s.e, http.MethodPatch, statusURL, nil, approve)
	s.a.Equal(http.StatusUnauthorized, code)

	_, code, _ = testutil.RequestHTTP[response.GeneralResponse[any]](s.e, http.MethodPatch, statusURL, s.adminHeaders(), approve)
	s.a.Equal(http.StatusBadRequest, code, "pending claims cannot be approved directly")

	_, code, err = testutil.RequestHTTP[response.GeneralResponse[response.ClaimResponse]](
		s.e, http.MethodPatch, statusURL, s.adminHeaders(), request.UpdateClaimStatusRequest{Status: claim.Processing})
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)

	approved, code, err := testutil.RequestHTTP[response.GeneralResponse[response.ClaimResponse]](
		s.e, http.MethodPatch, statusURL, s.adminHeaders(), approve)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.Equal(claim.Approved, approved.Data.Status)
	s.r.NotNil(approved.Data.SettlementAmount)
	s.a.True(decimal.NewFromInt(12000).Equal(*approved.Data.SettlementAmount))

	notifications, err := s.repositories.JobRepository.GetJobsByStatus(s.ctx, job.Pending, 10)
	s.r.NoError(err)
	s.a.Len(notifications, 2)
	for _, n := range notifications {
		s.a.Equal(job.NotifyClaimStatus, n.Type)
	}
}

func (s *RouterSuite) TestCreateClaimValidation() {
	base := request.CreateClaimRequest{
		PolicyID:     "1",
		Type:         claim.Medical,
		Description:  "Emergency admission after a fracture while cycling",
		Amount:       decimal.NewFromInt(5000),
		IncidentDate: s.now.Format(request.DateLayout),
	}

	future := base
	future.IncidentDate = s.now.AddDate(0, 0, 2).Format(request.DateLayout)
	unknownPolicy := base
	unknownPolicy.PolicyID = "missing"
	shortDescription := base
	shortDescription.Description = "too short"

	for name, tc := range map[string]struct {
		req  request.CreateClaimRequest
		code int
	}{
		"future incident":   {req: future, code: http.StatusBadRequest},
		"unknown policy":    {req: unknownPolicy, code: http.StatusNotFound},
		"short description": {req: shortDescription, code: http.StatusBadRequest},
	} {
		s.Run(name, func() {
			_, code, _ := testutil.RequestHTTP[response.GeneralResponse[any]](
				s.e, http.MethodPost, "/api/v1/claims", s.headers("user1"), tc.req)
			s.a.Equal(tc.code, code)
		})
	}
}
