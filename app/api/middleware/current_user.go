package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"backend/insurance-platform/app/api/client/response"
	"backend/insurance-platform/app/internal/runtime"
)

// HeaderUserAuthentication resolves the portal user from X-User-ID. There are
// no end-user credentials; requests without the header act for the
// configured default user.
type HeaderUserAuthentication struct {
	defaultUserID string
}

func NewHeaderUserAuthentication(res runtime.Resource) HeaderUserAuthentication {
	return HeaderUserAuthentication{defaultUserID: res.Config.AppConfig.DefaultUserID}
}

func (h *HeaderUserAuthentication) GetName() string {
	return authMethodHeader
}

func (h *HeaderUserAuthentication) CanHandle(c echo.Context) bool {
	return h.userID(c) != ""
}

func (h *HeaderUserAuthentication) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result, err := h.Authenticate(c)
			if err != nil || !result.Success {
				return h.CreateErrorResponse(http.StatusUnauthorized, errMsgMissingUser)
			}
			h.SetUserContext(c, result)
			return next(c)
		}
	}
}

func (h *HeaderUserAuthentication) Authenticate(c echo.Context) (*AuthenticationResult, error) {
	userID := h.userID(c)
	if userID == "" {
		return &AuthenticationResult{Success: false, Method: authMethodHeader}, nil
	}
	return &AuthenticationResult{
		Success: true,
		UserID:  &userID,
		Method:  authMethodHeader,
	}, nil
}

func (h *HeaderUserAuthentication) SetUserContext(c echo.Context, result *AuthenticationResult) {
	setUserContext(c, result)
}

func (h *HeaderUserAuthentication) CreateErrorResponse(statusCode int, message string) *echo.HTTPError {
	return echo.NewHTTPError(statusCode, response.ToErrorResponse(statusCode, message))
}

func (h *HeaderUserAuthentication) userID(c echo.Context) string {
	if id := strings.TrimSpace(c.Request().Header.Get(UserIDHeader)); id != "" {
		return id
	}
	return h.defaultUserID
}

// GetCurrentUserID returns the user resolved by HeaderUserAuthentication.
func GetCurrentUserID(c echo.Context) (string, bool) {
	id, ok := c.Get(contextUserID).(string)
	return id, ok && id != ""
}
