package integration

import (
	"net/http"

	"github.com/shopspring/decimal"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/payment"
	"backend/insurance-platform/app/database/constant/policy"
	"backend/insurance-platform/app/manager"
	testutil "backend/insurance-platform/app/test/util"
)

func (s *RouterSuite) TestCalculatePremium() {
	res, code, err := testutil.RequestHTTP[response.GeneralResponse[response.PremiumResponse]](
		s.e, http.MethodPost, "/api/v1/quotes/calculate", s.headers("user1"), request.CalculatePremiumRequest{
			PolicyType:     policy.Health,
			Age:            35,
			CoverageAmount: decimal.NewFromInt(500000),
			Duration:       12,
		})
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.True(decimal.NewFromInt(30000).Equal(res.Data.Premium), res.Data.Premium.String())

	_, code, _ = testutil.RequestHTTP[response.GeneralResponse[any]](
		s.e, http.MethodPost, "/api/v1/quotes/calculate", s.headers("user1"), request.CalculatePremiumRequest{PolicyType: "pet"})
	s.a.Equal(http.StatusBadRequest, code)
}

func (s *RouterSuite) TestSaveQuote() {
	created, code, err := testutil.RequestHTTP[response.GeneralResponse[response.QuoteResponse]](
		s.e, http.MethodPost, "/api/v1/quotes", s.headers("user2"), request.CreateQuoteRequest{
			CalculatePremiumRequest: request.CalculatePremiumRequest{PolicyType: policy.Travel, Age: 60},
		})
	s.r.NoError(err)
	s.r.Equal(http.StatusCreated, code)
	s.a.Equal("user2", created.Data.UserID)
	s.a.True(decimal.NewFromInt(750).Equal(created.Data.Premium), created.Data.Premium.String())

	list, code, err := testutil.RequestHTTP[response.GeneralResponse[response.PaginationResponse[response.QuoteResponse]]](
		s.e, http.MethodGet, "/api/v1/quotes", s.headers("user2"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.r.Len(list.Data.Data, 1)
	s.a.Equal(created.Data.ID, list.Data.Data[0].ID)
}

func (s *RouterSuite) TestComparisonLimit() {
	add := func(productID string) int {
		_, code, _ := testutil.RequestHTTP[response.GeneralResponse[response.ComparisonResponse]](
			s.e, http.MethodPost, "/api/v1/comparison", s.headers("user1"), request.AddToComparisonRequest{ProductID: productID})
		return code
	}

	for _, id := range []string{"1", "2", "3"} {
		s.r.Equal(http.StatusOK, add(id))
	}
	s.a.Equal(http.StatusOK, add("2"), "adding a listed product is a no-op")
	s.a.Equal(http.StatusBadRequest, add("4"))
	s.a.Equal(http.StatusNotFound, add("missing"))

	res, code, err := testutil.RequestHTTP[response.GeneralResponse[response.ComparisonResponse]](
		s.e, http.MethodGet, "/api/v1/comparison", s.headers("user1"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.Equal([]string{"1", "2", "3"}, res.Data.ProductIDs)
	s.a.Equal(manager.MaxComparedProducts, res.Data.Max)

	res, code, err = testutil.RequestHTTP[response.GeneralResponse[response.ComparisonResponse]](
		s.e, http.MethodDelete, "/api/v1/comparison/2", s.headers("user1"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.Equal([]string{"1", "3"}, res.Data.ProductIDs)

	other, _, err := testutil.RequestHTTP[response.GeneralResponse[response.ComparisonResponse]](
		s.e, http.MethodGet, "/api/v1/comparison", s.headers("user2"), nil)
	s.r.NoError(err)
	s.a.Empty(other.Data.ProductIDs)
}

func (s *RouterSuite) TestPayments() {
	history, code, err := testutil.RequestHTTP[response.GeneralResponse[[]response.PaymentResponse]](
		s.e, http.MethodGet, "/api/v1/payments/history", s.headers("user1"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.Len(history.Data, 3)

	upcoming, code, err := testutil.RequestHTTP[response.GeneralResponse[[]response.UpcomingPaymentResponse]](
		s.e, http.MethodGet, "/api/v1/payments/upcoming", s.headers("user1"), nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.r.Len(upcoming.Data, 2)
	s.a.Equal("up_1", upcoming.Data[0].ID)
	s.a.Equal("up_2", upcoming.Data[1].ID)

	paid, code, err := testutil.RequestHTTP[response.GeneralResponse[response.PaymentResponse]](
		s.e, http.MethodPost, "/api/v1/payments", s.headers("user1"), request.ProcessPaymentRequest{
			PolicyID: "1",
			Amount:   decimal.NewFromInt(8999),
			Method:   "card",
		})
	s.r.NoError(err)
	s.r.Equal(http.StatusCreated, code)
	s.a.Equal(payment.Completed, paid.Data.Status)
	s.a.NotEmpty(paid.Data.TransactionID)
}

func (s *RouterSuite) TestPaymentMethodRequiresTypeFields() {
	_, code, _ := testutil.RequestHTTP[response.GeneralResponse[any]](
		s.e, http.MethodPost, "/api/v1/payments/methods", s.headers("user1"), request.PaymentMethodRequest{Type: payment.Card})
	s.a.Equal(http.StatusBadRequest, code)

	upi := "someone@okicici"
	created, code, err := testutil.RequestHTTP[response.GeneralResponse[response.PaymentMethodResponse]](
		s.e, http.MethodPost, "/api/v1/payments/methods", s.headers("user1"), request.PaymentMethodRequest{Type: payment.UPI, UPIID: &upi})
	s.r.NoError(err)
	s.r.Equal(http.StatusCreated, code)

	methods, _, err := testutil.RequestHTTP[response.GeneralResponse[[]response.PaymentMethodResponse]](
		s.e, http.MethodGet, "/api/v1/payments/methods", s.headers("user1"), nil)
	s.r.NoError(err)
	s.a.Len(methods.Data, 3)

	code = testutil.Status(s.e, http.MethodDelete, "/api/v1/payments/methods/"+created.Data.ID, s.headers("user2"))
	s.a.Equal(http.StatusNotFound, code)
}

func (s *RouterSuite) TestCurrentUser() {
	me, code, err := testutil.RequestHTTP[response.GeneralResponse[response.UserResponse]](
		s.e, http.MethodGet, "/api/v1/users/me", nil, nil)
	s.r.NoError(err)
	s.r.Equal(http.StatusOK, code)
	s.a.Equal("user1", me.Data.ID)

	code = testutil.Status(s.e, http.MethodGet, "/api/v1/users/me", s.headers("nobody"))
	s.a.Equal(http.StatusNotFound, code)
}
