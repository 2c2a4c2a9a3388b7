package controller

import (
	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/api/middleware"
)

// bindAndValidate binds the request into payload. Binding failures become a
// 400 with ErrorCodeFailedBindingData, validation failures keep the details
// produced by the validator.
func bindAndValidate(ec echo.Context, payload any) error {
	if err := ec.Bind(payload); err != nil {
		return exception.NewBadRequestError(err, int(exception.ErrorCodeFailedBindingData), exception.ErrFailedBindingData.Error())
	}
	return ec.Validate(payload)
}

func currentUserID(ec echo.Context) (string, error) {
	userID, ok := middleware.GetCurrentUserID(ec)
	if !ok {
		return "", exception.NewUnauthorizedError(nil, int(exception.ErrorCodeMissingUserContext), exception.ErrMissingUserContext.Error())
	}
	return userID, nil
}
