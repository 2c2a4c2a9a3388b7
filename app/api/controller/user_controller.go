package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
)

type UserController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewUserController(managers *manager.Managers, res runtime.Resource) *UserController {
	return &UserController{
		res:      res,
		managers: managers,
	}
}

// List godoc
//
//	@Summary	List users
//	@Tags		users
//	@Produce	json
//	@Param		page	query		int	false	"Page"
//	@Param		size	query		int	false	"Page size"
//	@Success	200		{object}	response.GeneralResponse[response.PaginationResponse[response.UserResponse]]
//	@Router		/api/v1/users [get]
func (c *UserController) List(ec echo.Context) error {
	var req request.ListUsersRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.UserManager.List(ec.Request().Context(), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Me godoc
//
//	@Summary		Current user
//	@Description	The user named by X-User-ID, or the configured default user
//	@Tags			users
//	@Produce		json
//	@Param			X-User-ID	header		string	false	"Current user"
//	@Success		200			{object}	response.GeneralResponse[response.UserResponse]
//	@Failure		404
//	@Router			/api/v1/users/me [get]
func (c *UserController) Me(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	res, err := c.managers.UserManager.GetByID(ec.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Get godoc
//
//	@Summary	Get user
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	response.GeneralResponse[response.UserResponse]
//	@Failure	404
//	@Router		/api/v1/users/{id} [get]
func (c *UserController) Get(ec echo.Context) error {
	res, err := c.managers.UserManager.GetByID(ec.Request().Context(), ec.Param("id"))
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Create godoc
//
//	@Summary	Create user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.CreateUserRequest	true	"User"
//	@Success	201		{object}	response.GeneralResponse[response.UserResponse]
//	@Failure	400
//	@Failure	409
//	@Router		/api/v1/users [post]
func (c *UserController) Create(ec echo.Context) error {
	var req request.CreateUserRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.UserManager.Create(ec.Request().Context(), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusCreated, response.ToSuccessResponse(res))
}

// Update godoc
//
//	@Summary	Update user
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"User ID"
//	@Param		request	body		request.UpdateUserRequest	true	"Fields to change"
//	@Success	200		{object}	response.GeneralResponse[response.UserResponse]
//	@Failure	400
//	@Failure	404
//	@Failure	409
//	@Router		/api/v1/users/{id} [put]
func (c *UserController) Update(ec echo.Context) error {
	var req request.UpdateUserRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.UserManager.Update(ec.Request().Context(), ec.Param("id"), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Delete godoc
//
//	@Summary	Delete user
//	@Tags		users
//	@Param		id	path	string	true	"User ID"
//	@Success	204
//	@Failure	404
//	@Router		/api/v1/users/{id} [delete]
func (c *UserController) Delete(ec echo.Context) error {
	if err := c.managers.UserManager.Delete(ec.Request().Context(), ec.Param("id")); err != nil {
		return err
	}
	return ec.NoContent(http.StatusNoContent)
}
