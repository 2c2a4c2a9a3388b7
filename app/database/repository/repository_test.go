package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/database/constant/job"
	"backend/insurance-platform/app/database/constant/payment"
	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/database/entity"
	"backend/insurance-platform/app/database/repository"
	util "backend/insurance-platform/app/database/repository/query_utils"
	testutil "backend/insurance-platform/app/test/util"
	pagingUtil "backend/insurance-platform/app/pkg/util/paging"
	ptrutil "backend/insurance-platform/app/pkg/util"
)

type RepositorySuite struct {
	suite.Suite
	r    *require.Assertions
	a    *assert.Assertions
	ctx  context.Context
	now  time.Time
	res  *testutil.TestResource
	repo *repository.Repositories
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.r = s.Require()
	s.a = s.Assert()
	s.ctx = context.Background()
	s.now = time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	s.res = testutil.NewTestResource(s.T())
	s.res.Seed(s.T(), s.now)
	s.repo = repository.NewRepositories(s.res.Resource)
}

func (s *RepositorySuite) TestClaimFindManyFiltersAndCounts() {
	claims, total, err := s.repo.ClaimRepository.FindMany(s.ctx, repository.ClaimFilter{UserID: "user1"}, pagingUtil.Page{})
	s.r.NoError(err)
	s.a.Equal(3, total)
	s.r.Len(claims, 3)
	// newest filing first
	s.a.Equal("3", claims[0].ID)

	claims, total, err = s.repo.ClaimRepository.FindMany(s.ctx, repository.ClaimFilter{
		UserID: "user1",
		Status: claim.Approved,
	}, pagingUtil.Page{})
	s.r.NoError(err)
	s.a.Equal(1, total)
	s.r.Len(claims, 1)
	s.a.Equal(claim.Accident, claims[0].Type)
	s.a.True(claims[0].SettlementAmount.Valid)
	s.a.True(decimal.NewFromInt(30000).Equal(claims[0].SettlementAmount.Decimal))
}

func (s *RepositorySuite) TestClaimUpdateStatusIsConditional() {
	c, err := s.repo.ClaimRepository.FindByID(s.ctx, "3")
	s.r.NoError(err)
	s.r.Equal(claim.Pending, c.Status)

	c.Status = claim.Processing
	s.r.NoError(s.repo.ClaimRepository.UpdateStatus(s.ctx, c, claim.Pending))

	// the stored status is no longer pending
	c.Status = claim.Rejected
	err = s.repo.ClaimRepository.UpdateStatus(s.ctx, c, claim.Pending)
	s.r.ErrorIs(err, sql.ErrNoRows)

	stored, err := s.repo.ClaimRepository.FindByID(s.ctx, "3")
	s.r.NoError(err)
	s.a.Equal(claim.Processing, stored.Status)
}

func (s *RepositorySuite) TestClaimSoftDelete() {
	s.r.NoError(s.repo.ClaimRepository.DeleteByID(s.ctx, "1"))

	_, err := s.repo.ClaimRepository.FindByID(s.ctx, "1")
	s.r.ErrorIs(err, sql.ErrNoRows)

	err = s.repo.ClaimRepository.DeleteByID(s.ctx, "1")
	s.r.ErrorIs(err, sql.ErrNoRows)

	claims, err := s.repo.ClaimRepository.FindByPolicyID(s.ctx, "1")
	s.r.NoError(err)
	s.a.Empty(claims)
}

func (s *RepositorySuite) TestPolicyExistsAndFilterByType() {
	ok, err := s.repo.PolicyRepository.Exists(s.ctx, "1")
	s.r.NoError(err)
	s.a.True(ok)

	ok, err = s.repo.PolicyRepository.Exists(s.ctx, "missing")
	s.r.NoError(err)
	s.a.False(ok)

	policies, total, err := s.repo.PolicyRepository.FindMany(s.ctx, repository.PolicyFilter{
		UserID: "user1",
		Type:   policy.Auto,
	}, pagingUtil.Page{})
	s.r.NoError(err)
	s.a.Equal(1, total)
	s.r.Len(policies, 1)
	s.a.Equal("POL-2024-002", policies[0].PolicyNumber)
	s.a.Equal(entity.StringList{"Zero depreciation cover", "24x7 roadside assistance"}, policies[0].Benefits)
}

func (s *RepositorySuite) TestProductFindByIDsSkipsUnknown() {
	products, err := s.repo.ProductRepository.FindByIDs(s.ctx, []string{"3", "1", "42"})
	s.r.NoError(err)
	s.r.Len(products, 2)
	s.a.Equal("1", products[0].ID)
	s.a.Equal("3", products[1].ID)
}

func (s *RepositorySuite) TestPaymentHistoryIsNewestFirst() {
	payments, err := s.repo.PaymentRepository.FindHistory(s.ctx, "user1")
	s.r.NoError(err)
	s.r.Len(payments, 3)
	s.a.Equal("pay_3", payments[0].ID)
	s.a.Equal(payment.Failed, payments[0].Status)
	s.a.Equal("pay_1", payments[2].ID)
}

func (s *RepositorySuite) TestPaymentMethodDefaultIsExclusive() {
	method, err := s.repo.PaymentMethodRepository.Insert(s.ctx, &entity.PaymentMethod{
		ID:        "pm_3",
		UserID:    "user1",
		Type:      payment.NetBanking,
		Provider:  ptrutil.Ptr("HDFC Bank"),
		IsDefault: true,
	})
	s.r.NoError(err)
	s.a.True(method.IsDefault)

	methods, err := s.repo.PaymentMethodRepository.FindByUserID(s.ctx, "user1")
	s.r.NoError(err)
	s.r.Len(methods, 3)
	defaults := 0
	for _, m := range methods {
		if m.IsDefault {
			defaults++
			s.a.Equal("pm_3", m.ID)
		}
	}
	s.a.Equal(1, defaults)

	_, err = s.repo.PaymentMethodRepository.FindByID(s.ctx, "user2", "pm_3")
	s.r.ErrorIs(err, sql.ErrNoRows)
}

func (s *RepositorySuite) TestUpcomingPaymentsWindowAndReminders() {
	due, err := s.repo.UpcomingPaymentRepository.FindDueBetween(s.ctx, "user1", s.now, s.now.AddDate(0, 0, 30))
	s.r.NoError(err)
	s.r.Len(due, 2)
	s.a.Equal("up_1", due[0].ID)
	s.a.Equal("up_2", due[1].ID)

	pending, err := s.repo.UpcomingPaymentRepository.FindUnremindedDueBefore(s.ctx, s.now.AddDate(0, 0, 14), 10)
	s.r.NoError(err)
	s.r.Len(pending, 2)

	ids := []string{pending[0].ID, pending[1].ID}
	n, err := s.repo.UpcomingPaymentRepository.MarkReminded(s.ctx, ids, s.now)
	s.r.NoError(err)
	s.a.EqualValues(2, n)

	n, err = s.repo.UpcomingPaymentRepository.MarkReminded(s.ctx, ids, s.now)
	s.r.NoError(err)
	s.a.EqualValues(0, n)

	pending, err = s.repo.UpcomingPaymentRepository.FindUnremindedDueBefore(s.ctx, s.now.AddDate(0, 0, 14), 10)
	s.r.NoError(err)
	s.a.Empty(pending)
}

func (s *RepositorySuite) TestUserEmailIsUnique() {
	_, err := s.repo.UserRepository.Insert(s.ctx, &entity.User{
		ID:    "user3",
		Name:  "Duplicate",
		Email: "priya.sharma@example.com",
	})
	s.r.Error(err)
	s.a.True(util.IsUniqueViolation(err))

	users, total, err := s.repo.UserRepository.FindMany(s.ctx, pagingUtil.Page{})
	s.r.NoError(err)
	s.a.Equal(2, total)
	s.a.Len(users, 2)
}

func (s *RepositorySuite) TestJobLifecycle() {
	externalID := "msg-1"
	j := &entity.Job{
		ID:          "job-1",
		Type:        job.ReviewClaim,
		Priority:    job.PriorityNormal,
		Payload:     entity.JobPayload{"claim_id": "3"},
		MaxAttempts: 3,
		ExternalID:  &externalID,
		Status:      job.Pending,
		CreatedAt:   s.now,
	}
	s.r.NoError(s.repo.JobRepository.Create(s.ctx, j))

	found, err := s.repo.JobRepository.GetByExternalID(s.ctx, externalID)
	s.r.NoError(err)
	s.a.Equal("job-1", found.ID)
	s.a.Equal("3", found.Payload["claim_id"])

	retryAt := s.now.Add(time.Minute)
	s.r.NoError(s.repo.JobRepository.UpdateJobToRetrying(s.ctx, j.ID, "boom", retryAt))

	jobs, err := s.repo.JobRepository.GetRetryableJobs(s.ctx, s.now, 10)
	s.r.NoError(err)
	s.a.Empty(jobs)

	jobs, err = s.repo.JobRepository.GetRetryableJobs(s.ctx, retryAt.Add(time.Second), 10)
	s.r.NoError(err)
	s.r.Len(jobs, 1)
	s.a.Equal(1, jobs[0].Attempts)
	s.a.Equal("boom", jobs[0].Error)

	s.r.NoError(s.repo.JobRepository.UpdateJobToCompleted(s.ctx, j.ID, retryAt))
	counts, err := s.repo.JobRepository.CountByStatus(s.ctx)
	s.r.NoError(err)
	s.a.Equal(1, counts[job.Completed])
}
