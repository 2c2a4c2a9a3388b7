package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/client/request"
	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/database/constant/claim"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/manager"
)

type ClaimController struct {
	res      runtime.Resource
	managers *manager.Managers
	now      func() time.Time
}

func NewClaimController(managers *manager.Managers, res runtime.Resource) *ClaimController {
	return &ClaimController{
		res:      res,
		managers: managers,
		now:      time.Now,
	}
}

// List godoc
//
//	@Summary		List claims
//	@Description	Claims of the current user, newest filing first
//	@Tags			claims
//	@Produce		json
//	@Param			X-User-ID	header		string	false	"Current user"
//	@Param			policy_id	query		string	false	"Policy filter"
//	@Param			status		query		string	false	"Status filter"	Enums(pending, processing, approved, rejected)
//	@Param			type		query		string	false	"Type filter"	Enums(medical, accident, theft, baggage, other)
//	@Param			page		query		int		false	"Page"
//	@Param			size		query		int		false	"Page size"
//	@Success		200			{object}	response.GeneralResponse[response.PaginationResponse[response.ClaimResponse]]
//	@Failure		400
//	@Failure		500
//	@Router			/api/v1/claims [get]
func (c *ClaimController) List(ec echo.Context) error {
	ctx := ec.Request().Context()
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.ListClaimsRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.ClaimManager.List(ctx, userID, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Get godoc
//
//	@Summary	Get claim
//	@Tags		claims
//	@Produce	json
//	@Param		id	path		string	true	"Claim ID"
//	@Success	200	{object}	response.GeneralResponse[response.ClaimResponse]
//	@Failure	404
//	@Router		/api/v1/claims/{id} [get]
func (c *ClaimController) Get(ec echo.Context) error {
	res, err := c.managers.ClaimManager.GetByID(ec.Request().Context(), ec.Param("id"))
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// ListByPolicy godoc
//
//	@Summary	List claims of a policy
//	@Tags		claims
//	@Produce	json
//	@Param		id	path		string	true	"Policy ID"
//	@Success	200	{object}	response.GeneralResponse[[]response.ClaimResponse]
//	@Failure	404
//	@Router		/api/v1/policies/{id}/claims [get]
func (c *ClaimController) ListByPolicy(ec echo.Context) error {
	res, err := c.managers.ClaimManager.GetByPolicyID(ec.Request().Context(), ec.Param("id"))
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Create godoc
//
//	@Summary		File a claim
//	@Description	Files a pending claim against an existing policy
//	@Tags			claims
//	@Accept			json
//	@Produce		json
//	@Param			X-User-ID	header		string						false	"Current user"
//	@Param			request		body		request.CreateClaimRequest	true	"Claim"
//	@Success		201			{object}	response.GeneralResponse[response.ClaimResponse]
//	@Failure		400
//	@Failure		404
//	@Failure		500
//	@Router			/api/v1/claims [post]
func (c *ClaimController) Create(ec echo.Context) error {
	ctx := ec.Request().Context()
	userID, err := currentUserID(ec)
	if err != nil {
		return err
	}

	var req request.CreateClaimRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.ClaimManager.Create(ctx, userID, req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusCreated, response.ToSuccessResponse(res))
}

// Update godoc
//
//	@Summary	Update a claim
//	@Tags		claims
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Claim ID"
//	@Param		request	body		request.UpdateClaimRequest	true	"Fields to change"
//	@Success	200		{object}	response.GeneralResponse[response.ClaimResponse]
//	@Failure	400
//	@Failure	404
//	@Router		/api/v1/claims/{id} [put]
func (c *ClaimController) Update(ec echo.Context) error {
	var req request.UpdateClaimRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.ClaimManager.Update(ec.Request().Context(), ec.Param("id"), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Delete godoc
//
//	@Summary	Delete a claim
//	@Tags		claims
//	@Param		id	path	string	true	"Claim ID"
//	@Success	204
//	@Failure	404
//	@Router		/api/v1/claims/{id} [delete]
func (c *ClaimController) Delete(ec echo.Context) error {
	if err := c.managers.ClaimManager.Delete(ec.Request().Context(), ec.Param("id")); err != nil {
		return err
	}
	return ec.NoContent(http.StatusNoContent)
}

// UpdateStatus godoc
//
//	@Summary		Change claim status
//	@Description	Claim-management action. Allowed moves are pending to processing or rejected, and processing to approved or rejected.
//	@Tags			claims
//	@Accept			json
//	@Produce		json
//	@Security		ApiKeyAuth
//	@Param			id		path		string								true	"Claim ID"
//	@Param			request	body		request.UpdateClaimStatusRequest	true	"Target status"
//	@Success		200		{object}	response.GeneralResponse[response.ClaimResponse]
//	@Failure		400
//	@Failure		401
//	@Failure		404
//	@Failure		409
//	@Router			/api/v1/claims/{id}/status [patch]
func (c *ClaimController) UpdateStatus(ec echo.Context) error {
	var req request.UpdateClaimStatusRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	res, err := c.managers.ClaimManager.TransitionStatus(ec.Request().Context(), ec.Param("id"), req)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// Progress godoc
//
//	@Summary		Track claim progress
//	@Description	Timeline steps with their state, the current step, percentage done and the completion estimate
//	@Tags			claims
//	@Produce		json
//	@Param			id		path		string	true	"Claim ID"
//	@Param			today	query		string	false	"Reference day (YYYY-MM-DD), defaults to today"
//	@Success		200		{object}	response.GeneralResponse[response.ProgressResponse]
//	@Failure		400
//	@Failure		404
//	@Router			/api/v1/claims/{id}/progress [get]
func (c *ClaimController) Progress(ec echo.Context) error {
	var req request.ClaimProgressRequest
	if err := bindAndValidate(ec, &req); err != nil {
		return err
	}

	today := c.now().UTC()
	if req.Today != "" {
		parsed, err := time.Parse(request.DateLayout, req.Today)
		if err != nil {
			return exception.NewBadRequestError(err, int(exception.ErrorCodeInvalidParameter), "today must use YYYY-MM-DD")
		}
		today = parsed
	}

	res, err := c.managers.ClaimManager.GetProgress(ec.Request().Context(), ec.Param("id"), today)
	if err != nil {
		return err
	}
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(res))
}

// ListTimelines godoc
//
//	@Summary	Claim timelines
//	@Tags		claims
//	@Produce	json
//	@Success	200	{object}	response.GeneralResponse[[]response.TimelineResponse]
//	@Router		/api/v1/claim-timelines [get]
func (c *ClaimController) ListTimelines(ec echo.Context) error {
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(c.managers.ClaimManager.ListTimelines()))
}

// GetTimeline godoc
//
//	@Summary		Claim timeline
//	@Description	Unknown types get the medical timeline
//	@Tags			claims
//	@Produce		json
//	@Param			type	path		string	true	"Claim type"
//	@Success		200		{object}	response.GeneralResponse[response.TimelineResponse]
//	@Router			/api/v1/claim-timelines/{type} [get]
func (c *ClaimController) GetTimeline(ec echo.Context) error {
	timeline := c.managers.ClaimManager.GetTimeline(claim.Type(ec.Param("type")))
	return ec.JSON(http.StatusOK, response.ToSuccessResponse(timeline))
}
