// Package middleware identifies callers of the HTTP API.
//
// Two mechanisms are supported:
// - X-User-ID header naming the portal user, falling back to the configured default user
// - API keys in X-API-Key for claim-management actions performed by other services
package middleware

import (
	"github.com/labstack/echo/v4"
)

const (
	// Context keys
	contextUserID      = "user_id"
	contextAuthMethod  = "auth_method"
	contextServiceName = "service_name"

	// Authentication methods
	authMethodAPIKey = "api_key"
	authMethodHeader = "user_header"

	apiKeyHeader = "X-API-Key"
	UserIDHeader = "X-User-ID"

	// Service name recorded for requests authenticated by an API key
	claimServiceName = "claim-management"

	// Error messages
	errMsgAuthRequired    = "Authentication required"
	errMsgInvalidAPIKey   = "Invalid API key"
	errMsgMissingUser     = "Missing user context"
	errMsgRateLimitExceed = "Too many requests, please retry later"
)

// AuthenticationResult represents the result of an authentication attempt
type AuthenticationResult struct {
	Success     bool    // Whether authentication was successful
	UserID      *string // Portal user the request acts for
	Method      string  // Authentication method used
	ServiceName *string // Service name (for API key auth)
}

type Authentication interface {
	// GetName returns the name of this authentication handler
	GetName() string
	// CanHandle returns true if this handler can handle the request
	CanHandle(ec echo.Context) bool
	// RequireAuth rejects requests this handler cannot authenticate
	RequireAuth() echo.MiddlewareFunc
	// Authenticate performs authentication and returns the result
	Authenticate(ec echo.Context) (*AuthenticationResult, error)
	// SetUserContext sets the context values from an authentication result
	SetUserContext(c echo.Context, result *AuthenticationResult)
	// CreateErrorResponse creates a standardized error response
	CreateErrorResponse(statusCode int, message string) *echo.HTTPError
}

func setUserContext(c echo.Context, result *AuthenticationResult) {
	if result.UserID != nil {
		c.Set(contextUserID, *result.UserID)
	}
	c.Set(contextAuthMethod, result.Method)
	if result.ServiceName != nil {
		c.Set(contextServiceName, *result.ServiceName)
	}
}

// GetAuthenticationMethod returns the method that authenticated the request, if any.
func GetAuthenticationMethod(c echo.Context) (string, bool) {
	method, ok := c.Get(contextAuthMethod).(string)
	return method, ok
}

// GetServiceName returns the calling service for API key requests.
func GetServiceName(c echo.Context) (string, bool) {
	name, ok := c.Get(contextServiceName).(string)
	return name, ok
}
