package exception

import (
	"database/sql"
	"errors"
	"net/http"

	"backend/insurance-platform/app/api/client/response"

	"github.com/labstack/echo/v4"
)

type ErrorModel response.GeneralResponse[any]

// NewError turns err into the echo.HTTPError the controllers return. The body
// is an ErrorModel carrying appCode, message and the optional data[0]. An err
// that already is an echo.HTTPError is reused, so its internal cause survives;
// any other err becomes the internal cause.
func NewError(err error, httpCode int, appCode int, message string, data ...any) *echo.HTTPError {
	var httpError *echo.HTTPError
	if !errors.As(err, &httpError) {
		httpError = echo.NewHTTPError(httpCode)
		if err != nil {
			httpError = httpError.WithInternal(err)
		}
	}
	httpError.Code = httpCode

	if message == "" {
		message = http.StatusText(httpCode)
	}
	body := &ErrorModel{Code: appCode, Message: message}
	if len(data) > 0 {
		body.Data = data[0]
	}
	httpError.Message = body
	return httpError
}

func NewInternalServerError(err error, appCode int, message string, data ...any) error {
	return NewError(err, http.StatusInternalServerError, appCode, message, data...)
}

func NewBadRequestError(err error, appCode int, message string, data ...any) error {
	return NewError(err, http.StatusBadRequest, appCode, message, data...)
}

func NewUnauthorizedError(err error, appCode int, message string, data ...any) error {
	return NewError(err, http.StatusUnauthorized, appCode, message, data...)
}

func NewNotFoundError(err error, appCode int, message string, data ...any) error {
	return NewError(err, http.StatusNotFound, appCode, message, data...)
}

func NewConflictError(err error, appCode int, message string, data ...any) error {
	return NewError(err, http.StatusConflict, appCode, message, data...)
}

// NotFoundOrInternal maps sql.ErrNoRows to a 404 carrying notFound and
// anything else to a 500.
func NotFoundOrInternal(err error, notFound error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return NewNotFoundError(err, int(ErrorCodeEntityNotFound), notFound.Error())
	}
	return NewInternalServerError(err, int(ErrorCodeInternalServer), ErrInternalServer.Error())
}
