package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"backend/insurance-platform/app/api/client/exception"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/pkg/bcrypt"
)

// ApiKeyAuthentication guards claim-management actions. Configured keys are
// only kept as bcrypt hashes once the middleware is built.
type ApiKeyAuthentication struct {
	res    runtime.Resource
	hasher bcrypt.Hasher
	hashes []string
}

func NewApiKeyAuthentication(res runtime.Resource, hasher bcrypt.Hasher) ApiKeyAuthentication {
	ak := ApiKeyAuthentication{
		res:    res,
		hasher: hasher,
	}

	for _, key := range strings.Split(res.Config.ApiKeyConfig.Keys, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		hash, err := hasher.Hash(key)
		if err != nil {
			res.Logger.Error("Failed to hash API key", zap.Error(err))
			continue
		}
		ak.hashes = append(ak.hashes, hash)
	}
	if len(ak.hashes) == 0 {
		res.Logger.Warn("No API keys configured, claim-management endpoints will reject every request")
	}

	return ak
}

func (ak *ApiKeyAuthentication) GetName() string {
	return authMethodAPIKey
}

func (ak *ApiKeyAuthentication) CanHandle(c echo.Context) bool {
	return c.Request().Header.Get(apiKeyHeader) != ""
}

func (ak *ApiKeyAuthentication) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ak.CanHandle(c) {
				return ak.CreateErrorResponse(http.StatusUnauthorized, errMsgAuthRequired)
			}

			result, err := ak.Authenticate(c)
			if err != nil {
				ak.res.Logger.Debug("API Key Authentication failed",
					zap.String("handler", ak.GetName()),
					zap.String("error", err.Error()))
				return ak.CreateErrorResponse(http.StatusUnauthorized, errMsgInvalidAPIKey)
			}

			if !result.Success {
				return ak.CreateErrorResponse(http.StatusUnauthorized, errMsgInvalidAPIKey)
			}

			ak.SetUserContext(c, result)
			return next(c)
		}
	}
}

func (ak *ApiKeyAuthentication) Authenticate(c echo.Context) (*AuthenticationResult, error) {
	apiKey := c.Request().Header.Get(apiKeyHeader)
	if apiKey == "" {
		return nil, errors.New(errMsgInvalidAPIKey)
	}

	for _, hash := range ak.hashes {
		ok, err := ak.hasher.Matches(apiKey, hash)
		if err != nil {
			return nil, err
		}
		if ok {
			serviceName := claimServiceName
			return &AuthenticationResult{
				Success:     true,
				Method:      authMethodAPIKey,
				ServiceName: &serviceName,
			}, nil
		}
	}

	return nil, errors.New(errMsgInvalidAPIKey)
}

func (ak *ApiKeyAuthentication) SetUserContext(c echo.Context, result *AuthenticationResult) {
	setUserContext(c, result)
}

func (ak *ApiKeyAuthentication) CreateErrorResponse(statusCode int, message string) *echo.HTTPError {
	return exception.NewError(nil, statusCode, int(exception.ErrorCodeUnauthorized), message)
}

// IsServiceAccount checks if the current request is from a service account
func (ak *ApiKeyAuthentication) IsServiceAccount(c echo.Context) bool {
	method, ok := GetAuthenticationMethod(c)
	return ok && method == authMethodAPIKey
}
