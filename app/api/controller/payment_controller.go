package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
)

type PaymentController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewPaymentController(managers *manager.Managers, res runtime.Resource) *PaymentController {
	return &PaymentController{
		res:      res,
		managers: managers,
	}
}

// History godoc
//
//	@Summary	Payment history
//	@Tags		payments
//	@Produce	json
//	@Param		X-User-ID	header		string	false	"Current user"
//	@Success	200			{object}	response.GeneralResponse[[]response.PaymentResponse]
//	@Router		/api/v1/payments/history [get]
func (c *PaymentController) History(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	res, err := c.managers.PaymentManager.History(ec.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Upcoming godoc
//
//	@Summary		Upcoming payments
//	@Description	Premiums due within the next 30 days, soonest first
//	@Tags			payments
//	@Produce		json
//	@Param			X-User-ID	header		string	false	"Current user"
//	@Success		200			{object}	response.GeneralResponse[[]response.UpcomingPaymentResponse]
//	@Router			/api/v1/payments/upcoming [get]
func (c *PaymentController) Upcoming(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	res, err := c.managers.PaymentManager.Upcoming(ec.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Process godoc
//
//	@Summary	Pay a premium
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		X-User-ID	header		string							false	"Current user"
//	@Param		request		body		request.ProcessPaymentRequest	true	"Payment"
//	@Success	201			{object}	response.GeneralResponse[response.PaymentResponse]
//	@Failure	400
//	@Failure	404
//	@Router		/api/v1/payments [post]
func (c *PaymentController) Process(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.ProcessPaymentRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.PaymentManager.ProcessPayment(ec.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusCreated, response.ToSuccessResponse(res))
}

// Methods godoc
//
//	@Summary	Saved payment methods
//	@Tags		payments
//	@Produce	json
//	@Param		X-User-ID	header		string	false	"Current user"
//	@Success	200			{object}	response.GeneralResponse[[]response.PaymentMethodResponse]
//	@Router		/api/v1/payments/methods [get]
func (c *PaymentController) Methods(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	res, err := c.managers.PaymentManager.Methods(ec.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// AddMethod godoc
//
//	@Summary		Save a payment method
//	@Description	Cards need last4, expiry and cardholder name; UPI needs upi_id; net banking needs provider
//	@Tags			payments
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string							false	"Current user"
//	@Param			request		body		request.PaymentMethodRequest	true	"Payment method"
//	@Success		201			{object}	response.GeneralResponse[response.PaymentMethodResponse]
//	@Failure		400
//	@Router			/api/v1/payments/methods [post]
func (c *PaymentController) AddMethod(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.PaymentMethodRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.PaymentManager.AddMethod(ec.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusCreated, response.ToSuccessResponse(res))
}

// UpdateMethod godoc
//
//	@Summary	Update a payment method
//	@Tags		payments
//	@Accept		json
//	@Produce	json
//	@Param		X-User-ID	header		string							false	"Current user"
//	@Param		id			path		string							true	"Payment method ID"
//	@Param		request		body		request.PaymentMethodRequest	true	"Payment method"
//	@Success	200			{object}	response.GeneralResponse[response.PaymentMethodResponse]
//	@Failure	400
//	@Failure	404
//	@Router		/api/v1/payments/methods/{id} [put]
func (c *PaymentController) UpdateMethod(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.PaymentMethodRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.PaymentManager.UpdateMethod(ec.Request().Context(), userID, ec.Param("id"), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// DeleteMethod godoc
//
//	@Summary	Delete a payment method
//	@Tags		payments
//	@Param		X-User-ID	header	string	false	"Current user"
//	@Param		id			path	string	true	"Payment method ID"
//	@Success	204
//	@Failure	404
//	@Router		/api/v1/payments/methods/{id} [delete]
func (c *PaymentController) DeleteMethod(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	if err := c.managers.PaymentManager.DeleteMethod(ec.Request().Context(), userID, ec.Param("id")); err != nil {
		return err
	}
	return ec.NoContent(http.StatusNoContent)
}
