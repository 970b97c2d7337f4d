// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "volentia/internal/core/context"
	"volentia/internal/domain/accesscode"
	"volentia/internal/domain/accessrequest"
	"volentia/internal/domain/auth"
	"volentia/internal/domain/booking"
	"volentia/internal/domain/catalogs/association"
	"volentia/internal/domain/catalogs/category"
	"volentia/internal/domain/catalogs/city"
	"volentia/internal/domain/catalogs/company"
	"volentia/internal/domain/catalogs/experience"
	"volentia/internal/domain/reports"
	"volentia/internal/infrastructure/http/v1/handlers"
	"volentia/internal/infrastructure/http/v1/middleware"
	"volentia/internal/infrastructure/storage/object"
	"volentia/internal/infrastructure/storage/postgres"
	"volentia/internal/infrastructure/storage/postgres/tablestore"
	"volentia/pkg/logger"
)

// RouterConfig holds the wired services the router needs.
type RouterConfig struct {
	Pool   *postgres.Pool
	Logger *logger.Logger

	JWTValidator middleware.JWTValidator

	AuthService          *auth.Service
	CategoryService      *category.Service
	CityService          *city.Service
	CompanyService       *company.Service
	AssociationService   *association.Service
	ExperienceService    *experience.Service
	BookingService       *booking.Service
	AccessCodeService    *accesscode.Service
	AccessRequestService *accessrequest.Service
	ReportsService       *reports.Service

	TableStore    *tablestore.Store
	ObjectStorage *object.Storage
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Browser console entry points, guarded by redirects instead of 401s.
	RegisterConsoleGates(router, cfg.JWTValidator)

	baseHandler := handlers.NewBaseHandler()

	api := router.Group("/api/v1")
	{
		registerPublicRoutes(api, baseHandler, cfg)
		registerAuthRoutes(api, baseHandler, cfg)

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerUserRoutes(protected, baseHandler, cfg)
		registerAssociationRoutes(protected, baseHandler, cfg)
		registerHRRoutes(protected, baseHandler, cfg)
		registerAdminRoutes(protected, baseHandler, cfg)
	}

	return router
}

// registerPublicRoutes registers the unauthenticated surface: the
// experience catalog, reference data, the signup code check and the
// access-request form.
func registerPublicRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	catalogHandler := handlers.NewCatalogHandler(base, cfg.CategoryService, cfg.CityService, cfg.AssociationService)
	catalogHandler.RegisterRoutes(rg)

	experienceHandler := handlers.NewExperienceHandler(base, cfg.ExperienceService, cfg.ObjectStorage)
	public := rg.Group("/experiences")
	public.Use(middleware.OptionalAuth(cfg.JWTValidator))
	experienceHandler.RegisterPublicRoutes(public)

	codeHandler := handlers.NewAccessCodeHandler(base, cfg.AccessCodeService)
	rg.GET("/access-codes/:code/check", codeHandler.Check)

	requestHandler := handlers.NewAccessRequestHandler(base, cfg.AccessRequestService)
	rg.POST("/access-requests", requestHandler.Submit)
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)

	public := rg.Group("/auth")
	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(public, protected)
}

// registerUserRoutes registers the signed-in user's surface: profile
// and bookings. Any role may book experiences.
func registerUserRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	profileHandler := handlers.NewProfileHandler(base, cfg.AuthService, cfg.ObjectStorage)
	profileHandler.RegisterRoutes(rg.Group("/profile"))

	bookingHandler := handlers.NewBookingHandler(base, cfg.BookingService)
	bookingHandler.RegisterUserRoutes(rg)
}

// registerAssociationRoutes registers the association console.
func registerAssociationRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	console := rg.Group("/association")
	console.Use(middleware.RequireRole(appctx.RoleAssociationAdmin, appctx.RoleSuperAdmin))

	associationHandler := handlers.NewAssociationHandler(base, cfg.AssociationService, cfg.ObjectStorage)
	associationHandler.RegisterRoutes(console)

	experienceHandler := handlers.NewExperienceHandler(base, cfg.ExperienceService, cfg.ObjectStorage)
	experienceHandler.RegisterConsoleRoutes(console.Group("/experiences"))

	bookingHandler := handlers.NewBookingHandler(base, cfg.BookingService)
	bookingHandler.RegisterConsoleRoutes(console)

	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	console.GET("/reports/activity", reportsHandler.GetActivity)
}

// registerHRRoutes registers the HR console.
func registerHRRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	console := rg.Group("/hr")
	console.Use(middleware.RequireRole(appctx.RoleHRAdmin, appctx.RoleSuperAdmin))

	companyHandler := handlers.NewCompanyHandler(base, cfg.CompanyService, cfg.AuthService, cfg.ObjectStorage)
	companyHandler.RegisterRoutes(console)

	codeHandler := handlers.NewAccessCodeHandler(base, cfg.AccessCodeService)
	codeHandler.RegisterAdminRoutes(console.Group("/access-codes"))

	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	console.GET("/reports/participation", reportsHandler.GetParticipation)
	console.GET("/reports/categories", reportsHandler.GetCategoryBreakdown)
}

// registerAdminRoutes registers the super-admin console: the
// controller-backed table views plus access-code and access-request
// management.
func registerAdminRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	console := rg.Group("/admin")
	console.Use(middleware.RequireRole(appctx.RoleSuperAdmin))

	consoleHandler := handlers.NewConsoleHandler(base, cfg.TableStore, handlers.DefaultConsoleTables())
	consoleHandler.RegisterRoutes(console.Group("/console"))

	codeHandler := handlers.NewAccessCodeHandler(base, cfg.AccessCodeService)
	codeHandler.RegisterAdminRoutes(console.Group("/access-codes"))

	requestHandler := handlers.NewAccessRequestHandler(base, cfg.AccessRequestService)
	console.GET("/access-requests", requestHandler.List)
}
