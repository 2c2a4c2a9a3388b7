package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"backend/insurance-platform/app/api/controller"
	"backend/insurance-platform/app/api/middleware"
	"backend/insurance-platform/app/database/repository"
	"backend/insurance-platform/app/internal/runtime"
	"backend/insurance-platform/app/internal/validator"
	ctxutil "backend/insurance-platform/app/pkg/util/context"
	echoUtil "backend/insurance-platform/app/pkg/util/echo"
	_ "backend/insurance-platform/docs"
)

const (
	// Base paths
	apiV1BasePath = "/api/v1"
	swaggerPath   = "/swagger/*"
	healthPath    = "/health"

	// Route prefixes
	claimsPrefix         = "/claims"
	claimTimelinesPrefix = "/claim-timelines"
	policiesPrefix       = "/policies"
	quotesPrefix         = "/quotes"
	productsPrefix       = "/products"
	comparisonPrefix     = "/comparison"
	paymentsPrefix       = "/payments"
	usersPrefix          = "/users"

	quoteCalculationLimit = "quote_calculation"
)

type Router struct {
	*echo.Echo
	res          runtime.Resource
	vals         *validator.Validators
	middleware   *middleware.Middleware
	controllers  *controller.Controllers
	repositories *repository.Repositories
}

// NewRouter @title Insurance Platform
// @description Products, quotes, policies, payments and claim tracking for the insurance portal
// @version 1.0
// @host localhost:8081
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func NewRouter(
	res runtime.Resource,
	vals *validator.Validators,
	middleware *middleware.Middleware,
	controllers *controller.Controllers,
	repositories *repository.Repositories,
) *Router {
	if controllers == nil {
		panic("controllers cannot be nil")
	}
	if vals == nil {
		panic("validators cannot be nil")
	}

	r := &Router{
		Echo:         echo.New(),
		res:          res,
		vals:         vals,
		middleware:   middleware,
		controllers:  controllers,
		repositories: repositories,
	}

	r.setupEcho()
	r.setupMiddlewares()
	r.setupSwagger()
	r.setupHealthRoutes()
	r.setupRoutes()

	return r
}

func (r *Router) setupEcho() {
	r.Echo.HidePort = true
	r.Echo.HideBanner = true
	r.Echo.Validator = r.vals
}

func (r *Router) setupMiddlewares() {
	r.Echo.Use(echoMiddleware.Recover())
	r.Echo.Use(echoMiddleware.RequestID())
	r.Echo.Use(echoUtil.SetupRequestContextMiddleware())
	r.Echo.Use(echoUtil.SetupCORSMiddleware(r.res))
	r.Echo.Use(echoUtil.SetupLoggerMiddleware(r.res))
}

func (r *Router) setupSwagger() {
	env := ctxutil.GetAppModeFromEnv()
	if env == ctxutil.AppModeDev || env == ctxutil.AppModeLocal {
		r.Echo.Debug = true
		r.Echo.GET(swaggerPath, echoSwagger.WrapHandler)
	}
}

func (r *Router) setupHealthRoutes() {
	r.Echo.GET(healthPath, r.controllers.HealthController.HealthCheck)
}

func (r *Router) setupRoutes() {
	apiGroup := r.Echo.Group(apiV1BasePath, r.middleware.RequireUser())

	r.setupClaimRoutes(apiGroup)
	r.setupPolicyRoutes(apiGroup)
	r.setupQuoteRoutes(apiGroup)
	r.setupProductRoutes(apiGroup)
	r.setupPaymentRoutes(apiGroup)
	r.setupUserRoutes(apiGroup)
}

func (r *Router) setupClaimRoutes(apiGroup *echo.Group) {
	claims := r.controllers.ClaimController

	claimGroup := apiGroup.Group(claimsPrefix)
	claimGroup.GET("", claims.List)
	claimGroup.POST("", claims.Create)
	claimGroup.GET("/:id", claims.Get)
	claimGroup.PUT("/:id", claims.Update)
	claimGroup.DELETE("/:id", claims.Delete)
	claimGroup.GET("/:id/progress", claims.Progress)
	claimGroup.PATCH("/:id/status", claims.UpdateStatus, r.middleware.RequireApiKey())

	timelineGroup := apiGroup.Group(claimTimelinesPrefix)
	timelineGroup.GET("", claims.ListTimelines)
	timelineGroup.GET("/:type", claims.GetTimeline)
}

func (r *Router) setupPolicyRoutes(apiGroup *echo.Group) {
	policies := r.controllers.PolicyController

	policyGroup := apiGroup.Group(policiesPrefix)
	policyGroup.GET("", policies.List)
	policyGroup.POST("", policies.Create)
	policyGroup.GET("/:id", policies.Get)
	policyGroup.PUT("/:id", policies.Update)
	policyGroup.DELETE("/:id", policies.Delete)
	policyGroup.GET("/:id/claims", r.controllers.ClaimController.ListByPolicy)
}

func (r *Router) setupQuoteRoutes(apiGroup *echo.Group) {
	quotes := r.controllers.QuoteController
	limit := r.res.Config.RateLimitConfig.QuoteCalculationsPerMinute

	quoteGroup := apiGroup.Group(quotesPrefix)
	quoteGroup.POST("/calculate", quotes.Calculate, r.middleware.RateLimit.PerMinute(quoteCalculationLimit, limit))
	quoteGroup.GET("", quotes.List)
	quoteGroup.POST("", quotes.Create)
	quoteGroup.GET("/:id", quotes.Get)
	quoteGroup.PUT("/:id", quotes.Update)
	quoteGroup.DELETE("/:id", quotes.Delete)
}

func (r *Router) setupProductRoutes(apiGroup *echo.Group) {
	products := r.controllers.ProductController

	productGroup := apiGroup.Group(productsPrefix)
	productGroup.GET("", products.List)
	productGroup.GET("/:id", products.Get)

	comparisonGroup := apiGroup.Group(comparisonPrefix)
	comparisonGroup.GET("", products.GetComparison)
	comparisonGroup.POST("", products.AddToComparison)
	comparisonGroup.DELETE("", products.ClearComparison)
	comparisonGroup.DELETE("/:id", products.RemoveFromComparison)
}

func (r *Router) setupPaymentRoutes(apiGroup *echo.Group) {
	payments := r.controllers.PaymentController

	paymentGroup := apiGroup.Group(paymentsPrefix)
	paymentGroup.POST("", payments.Process)
	paymentGroup.GET("/history", payments.History)
	paymentGroup.GET("/upcoming", payments.Upcoming)
	paymentGroup.GET("/methods", payments.Methods)
	paymentGroup.POST("/methods", payments.AddMethod)
	paymentGroup.PUT("/methods/:id", payments.UpdateMethod)
	paymentGroup.DELETE("/methods/:id", payments.DeleteMethod)
}

func (r *Router) setupUserRoutes(apiGroup *echo.Group) {
	users := r.controllers.UserController

	userGroup := apiGroup.Group(usersPrefix)
	userGroup.GET("", users.List)
	userGroup.POST("", users.Create)
	userGroup.GET("/me", users.Me)
	userGroup.GET("/:id", users.Get)
	userGroup.PUT("/:id", users.Update)
	userGroup.DELETE("/:id", users.Delete)
}
