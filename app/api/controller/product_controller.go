package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
)

type ProductController struct {
	res      runtime.Resource
	managers *manager.Managers
}

func NewProductController(managers *manager.Managers, res runtime.Resource) *ProductController {
	return &ProductController{
		res:      res,
		managers: managers,
	}
}

// List godoc
//
//	@Summary	Product catalog
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	response.GeneralResponse[[]response.ProductResponse]
//	@Router		/api/v1/products [get]
func (c *ProductController) List(ec echo.Context) error {
	res, err := c.managers.ProductManager.List(ec.Request().Context())
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Get godoc
//
//	@Summary	Get product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	response.GeneralResponse[response.ProductResponse]
//	@Failure	404
//	@Router		/api/v1/products/{id} [get]
func (c *ProductController) Get(ec echo.Context) error {
	res, err := c.managers.ProductManager.GetByID(ec.Request().Context(), ec.Param("id"))
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// GetComparison godoc
//
//	@Summary	Comparison list
//	@Tags		comparison
//	@Produce	json
//	@Param		X-User-ID	header		string	false	"Current user"
//	@Success	200			{object}	response.GeneralResponse[response.ComparisonResponse]
//	@Router		/api/v1/comparison [get]
func (c *ProductController) GetComparison(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	res, err := c.managers.ComparisonManager.Get(ec.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// AddToComparison godoc
//
//	@Summary		Add a product to compare
//	@Description	At most three products can be compared. Adding a listed product changes nothing.
//	@Tags			comparison
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string							false	"Current user"
//	@Param			request		body		request.AddToComparisonRequest	true	"Product"
//	@Success		200			{object}	response.GeneralResponse[response.ComparisonResponse]
//	@Failure		400
//	@Failure		404
//	@Router			/api/v1/comparison [post]
func (c *ProductController) AddToComparison(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.AddToComparisonRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.ComparisonManager.Add(ec.Request().Context(), userID, req.ProductID)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// RemoveFromComparison godoc
//
//	@Summary	Remove a product from the comparison
//	@Tags		comparison
//	@Produce	json
//	@Param		X-User-ID	header		string	false	"Current user"
//	@Param		id			path		string	true	"Product ID"
//	@Success	200			{object}	response.GeneralResponse[response.ComparisonResponse]
//	@Router		/api/v1/comparison/{id} [delete]
func (c *ProductController) RemoveFromComparison(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	res, err := c.managers.ComparisonManager.Remove(ec.Request().Context(), userID, ec.Param("id"))
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// ClearComparison godoc
//
//	@Summary	Clear the comparison
//	@Tags		comparison
//	@Param		X-User-ID	header	string	false	"Current user"
//	@Success	204
//	@Router		/api/v1/comparison [delete]
func (c *ProductController) ClearComparison(ec echo.Context) error {
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	if err := c.managers.ComparisonManager.Clear(ec.Request().Context(), userID); err != nil {
		return err
	}
	return ec.NoContent(http.StatusNoContent)
}
