package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
)

type QuoteController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewQuoteController(managers *manager.Managers, res runtime.Resource) *QuoteController {
	return &QuoteController{
		res:      res,
		managers: managers,
	}
}

// Calculate godoc
//
//	@Summary		Calculate a premium
//	@Description	Prices a policy without storing a quote. Rate limited per client IP.
//	@Tags			quotes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.CalculatePremiumRequest	true	"Pricing input"
//	@Success		200		{object}	response.GeneralResponse[response.PremiumResponse]
//	@Failure		400
//	@Failure		429
//	@Router			/api/v1/quotes/calculate [post]
func (c *QuoteController) Calculate(ec echo.Context) error {
	var req request.CalculatePremiumRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(c.managers.QuoteManager.Calculate(req)))
}

// List godoc
//
//	@Summary	List quotes
//	@Tags		quotes
//	@Produce	json
//	@Param		X-User-ID	header		string	false	"Current user"
//	@Param		page		query		int		false	"Page"
//	@Param		size		query		int		false	"Page size"
//	@Success	200			{object}	response.GeneralResponse[response.PaginationResponse[response.QuoteResponse]]
//	@Router		/api/v1/quotes [get]
func (c *QuoteController) List(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.ListQuotesRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.QuoteManager.List(ec.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Get godoc
//
//	@Summary	Get quote
//	@Tags		quotes
//	@Produce	json
//	@Param		id	path		string	true	"Quote ID"
//	@Success	200	{object}	response.GeneralResponse[response.QuoteResponse]
//	@Failure	404
//	@Router		/api/v1/quotes/{id} [get]
func (c *QuoteController) Get(ec echo.Context) error {
	res, err := c.managers.QuoteManager.GetByID(ec.Request().Context(), ec.Param("id"))
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Create godoc
//
//	@Summary	Save a quote
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Param		X-User-ID	header		string						false	"Current user"
//	@Param		request		body		request.CreateQuoteRequest	true	"Quote input"
//	@Success	201			{object}	response.GeneralResponse[response.QuoteResponse]
//	@Failure	400
//	@Router		/api/v1/quotes [post]
func (c *QuoteController) Create(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.CreateQuoteRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.QuoteManager.Create(ec.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusCreated, response.ToSuccessResponse(res))
}

// Update godoc
//
//	@Summary	Reprice a quote
//	@Tags		quotes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Quote ID"
//	@Param		request	body		request.UpdateQuoteRequest	true	"Quote input"
//	@Success	200		{object}	response.GeneralResponse[response.QuoteResponse]
//	@Failure	400
//	@Failure	404
//	@Router		/api/v1/quotes/{id} [put]
func (c *QuoteController) Update(ec echo.Context) error {
	var req request.UpdateQuoteRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.QuoteManager.Update(ec.Request().Context(), ec.Param("id"), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Delete godoc
//
//	@Summary	Delete a quote
//	@Tags		quotes
//	@Param		id	path	string	true	"Quote ID"
//	@Success	204
//	@Failure	404
//	@Router		/api/v1/quotes/{id} [delete]
func (c *QuoteController) Delete(ec echo.Context) error {
	if err := c.managers.QuoteManager.Delete(ec.Request().Context(), ec.Param("id")); err != nil {
		return err
	}
	return ec.NoContent(http.StatusNoContent)
}
