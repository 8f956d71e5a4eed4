package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/niteshkumar/dealdesk-api/internal/config"
	domainRepo "github.com/niteshkumar/dealdesk-api/internal/domain/repository"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/handler"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/middleware"
	"github.com/niteshkumar/dealdesk-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Lead      *handler.LeadHandler
	Pricing   *handler.PricingHandler
	Scope     *handler.ScopeHandler
	Proforma  *handler.ProformaHandler
	Agreement *handler.AgreementHandler
	Payment   *handler.PaymentHandler
	Kickoff   *handler.KickoffHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)

	registerLeadRoutes(protected, h)
	registerPricingRoutes(protected, h)
	registerScopeRoutes(protected, h)
	registerProformaRoutes(protected, h)
	registerAgreementRoutes(protected, h, deps)
	registerKickoffRoutes(protected, h, deps)
}

func registerLeadRoutes(protected *gin.RouterGroup, h *Handlers) {
	leads := protected.Group("/leads")
	leads.Use(middleware.RequirePermission("manage-leads"))
	{
		leads.GET("", h.Lead.List)
		leads.POST("", h.Lead.Create)
		leads.GET("/:id", h.Lead.Get)
		leads.GET("/:id/pipeline", h.Lead.Pipeline)
		leads.GET("/:id/pricing-plans", h.Pricing.ListByLead)
		leads.GET("/:id/proforma-invoices", h.Proforma.ListByLead)
		leads.GET("/:id/projects", h.Lead.Projects)
	}
}

func registerPricingRoutes(protected *gin.RouterGroup, h *Handlers) {
	plans := protected.Group("/pricing-plans")
	plans.Use(middleware.RequirePermission("manage-pricing"))
	{
		plans.POST("", h.Pricing.Create)
		plans.GET("/:id", h.Pricing.Get)
		plans.PATCH("/:id/duration", h.Pricing.UpdateDuration)
		plans.GET("/:id/scope", h.Scope.GetByPlan)
	}
}

func registerScopeRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Catalog is readable by anyone authenticated; creation requires the
	// scope permission.
	protected.GET("/scope-items", h.Scope.Catalog)

	scopes := protected.Group("/scopes-of-work")
	scopes.Use(middleware.RequirePermission("manage-scopes"))
	{
		scopes.POST("", h.Scope.Create)
	}
}

func registerProformaRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/proforma-invoices")
	invoices.Use(middleware.RequirePermission("manage-proformas"))
	{
		invoices.POST("", h.Proforma.Create)
		invoices.GET("/:id", h.Proforma.Get)
		invoices.POST("/:id/finalize", h.Proforma.Finalize)
		invoices.GET("/:id/document", h.Proforma.Document)
	}
}

func registerAgreementRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	agreements := protected.Group("/agreements")
	agreements.Use(middleware.RequirePermission("manage-agreements"))
	{
		agreements.POST("", h.Agreement.Create)
		agreements.GET("/:id", h.Agreement.Get)
		agreements.POST("/:id/send", h.Agreement.Send)
		agreements.POST("/:id/sign", h.Agreement.Sign)
		agreements.POST("/:id/milestones", h.Agreement.AddMilestone)
		agreements.DELETE("/:id/milestones/:milestoneId", h.Agreement.RemoveMilestone)
		agreements.GET("/:id/document", h.Agreement.Document)
		agreements.GET("/:id/kickoff-requests", h.Kickoff.ListByAgreement)
	}

	// Payments hang off the agreement and require their own permission.
	// Recording money movement is replay-protected.
	payments := protected.Group("/agreements/:id/payments")
	payments.Use(middleware.RequirePermission("manage-payments"))
	{
		payments.GET("", h.Payment.List)
		payments.GET("/totals", h.Payment.Totals)
		payments.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Record)
	}
}

func registerKickoffRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/consultants", h.Kickoff.Consultants)
	protected.GET("/projects/:id", middleware.RequirePermission("view-projects"), h.Kickoff.GetProject)

	// Both sides of the handoff can read a request
	protected.GET("/kickoff-requests/:id", h.Kickoff.Get)

	// Sales side of the handoff
	kickoffs := protected.Group("/kickoff-requests")
	kickoffs.Use(middleware.RequirePermission("manage-kickoffs"))
	{
		kickoffs.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Kickoff.Create)
		kickoffs.POST("/:id/resubmit", h.Kickoff.Resubmit)
		kickoffs.PATCH("/:id/expected-start-date", h.Kickoff.UpdateExpectedDate)
	}

	// Delivery side of the handoff
	review := protected.Group("/kickoff-requests")
	review.Use(middleware.RequirePermission("review-kickoffs"))
	{
		review.POST("/:id/accept", h.Kickoff.Accept)
		review.POST("/:id/reject", h.Kickoff.Reject)
		review.POST("/:id/return", h.Kickoff.Return)
	}
}
