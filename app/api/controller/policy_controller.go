package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
)

type PolicyController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewPolicyController(managers *manager.Managers, res runtime.Resource) *PolicyController {
	return &PolicyController{
		res:      res,
		managers: managers,
	}
}

// List godoc
//
//	@Summary	List policies
//	@Tags		policies
//	@Produce	json
//	@Param		X-User-ID	header		string	false	"Current user"
//	@Param		type		query		string	false	"Policy type"	Enums(health, auto, travel, life, home)
//	@Param		status		query		string	false	"Policy status"	Enums(active, expired, cancelled)
//	@Param		page		query		int		false	"Page"
//	@Param		size		query		int		false	"Page size"
//	@Success	200			{object}	response.GeneralResponse[response.PaginationResponse[response.PolicyResponse]]
//	@Router		/api/v1/policies [get]
func (c *PolicyController) List(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.ListPoliciesRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.PolicyManager.List(ec.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Get godoc
//
//	@Summary	Get policy
//	@Tags		policies
//	@Produce	json
//	@Param		id	path		string	true	"Policy ID"
//	@Success	200	{object}	response.GeneralResponse[response.PolicyResponse]
//	@Failure	404
//	@Router		/api/v1/policies/{id} [get]
func (c *PolicyController) Get(ec echo.Context) error {
	res, err := c.managers.PolicyManager.GetByID(ec.Request().Context(), ec.Param("id"))
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Create godoc
//
//	@Summary		Purchase a policy
//	@Description	Creates an active policy starting today with a generated policy number
//	@Tags			policies
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string						false	"Current user"
//	@Param			request		body		request.CreatePolicyRequest	true	"Policy"
//	@Success		201			{object}	response.GeneralResponse[response.PolicyResponse]
//	@Failure		400
//	@Failure		404
//	@Router			/api/v1/policies [post]
func (c *PolicyController) Create(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.CreatePolicyRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.PolicyManager.Create(ec.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusCreated, response.ToSuccessResponse(res))
}

// Update godoc
//
//	@Summary	Update a policy
//	@Tags		policies
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Policy ID"
//	@Param		request	body		request.UpdatePolicyRequest	true	"Fields to change"
//	@Success	200		{object}	response.GeneralResponse[response.PolicyResponse]
//	@Failure	400
//	@Failure	404
//	@Router		/api/v1/policies/{id} [put]
func (c *PolicyController) Update(ec echo.Context) error {
	var req request.UpdatePolicyRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.PolicyManager.Update(ec.Request().Context(), ec.Param("id"), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Delete godoc
//
//	@Summary	Delete a policy
//	@Tags		policies
//	@Param		id	path	string	true	"Policy ID"
//	@Success	204
//	@Failure	404
//	@Router		/api/v1/policies/{id} [delete]
func (c *PolicyController) Delete(ec echo.Context) error {
	if err := c.managers.PolicyManager.Delete(ec.Request().Context(), ec.Param("id")); err != nil {
		return err
	}
	return ec.NoContent(http.StatusNoContent)
}
