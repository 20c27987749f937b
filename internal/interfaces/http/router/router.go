package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ruralsoc/backend/internal/infrastructure/auth"
	"github.com/ruralsoc/backend/internal/infrastructure/config"
	"github.com/ruralsoc/backend/internal/infrastructure/logger"
	"github.com/ruralsoc/backend/internal/interfaces/http/handler"
	"github.com/ruralsoc/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles all HTTP handlers wired into the router
type Handlers struct {
	Auth       *handler.AuthHandler
	Member     *handler.MemberHandler
	Chapter    *handler.ChapterHandler
	Shop       *handler.ShopHandler
	Access     *handler.AccessHandler
	Dues       *handler.DuesHandler
	Webhook    *handler.WebhookHandler
	Engagement *handler.EngagementHandler
}

// Dependencies holds everything the router needs besides handlers
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	Profiles   middleware.ProfileLoader
}

// New builds the gin engine with all middleware and routes
func New(deps Dependencies, h Handlers) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = deps.Config.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = deps.Config.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = deps.Config.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))

	if deps.Config.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			deps.Config.HTTP.RateLimitRequests,
			deps.Config.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService: deps.JWTService,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/webhooks/payments",
			"/api/v1/payments/webhook",
		},
	}))

	// Public within the API group (skipped by the JWT middleware)
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}
	api.POST("/webhooks/payments", h.Webhook.HandlePaymentNotification)
	// Alias kept for processor accounts configured with the older
	// notification path
	api.POST("/payments/webhook", h.Webhook.HandlePaymentNotification)

	// Authenticated member surface
	api.GET("/members/me", h.Member.GetMe)
	api.PATCH("/members/me", h.Member.UpdateMe)
	api.GET("/access/validate/:id", h.Access.Validate)

	dues := api.Group("/dues")
	{
		dues.POST("/intent", h.Dues.CreateIntent)
		dues.GET("", h.Dues.ListMine)
	}
	api.POST("/payments/preference", h.Dues.CreateIntent)

	// Benefit surfaces require an active, non-delinquent membership
	benefits := api.Group("")
	benefits.Use(middleware.RequireActiveMember(deps.Profiles))
	{
		benefits.GET("/promotions", h.Engagement.ListPromotions)
		benefits.GET("/events", h.Engagement.ListEvents)
	}

	api.GET("/shops", h.Shop.List)
	api.GET("/shops/:id", h.Shop.Get)
	api.GET("/shops/:id/promotions", h.Engagement.ListShopPromotions)
	api.GET("/chapters", h.Chapter.List)
	api.GET("/chapters/:id", h.Chapter.Get)

	// Administrative surface
	admin := api.Group("")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/members", h.Member.List)
		admin.POST("/members", h.Member.Create)
		admin.GET("/members/:id", h.Member.Get)
		admin.PUT("/members/:id", h.Member.Update)
		admin.POST("/members/:id/approve", h.Member.Approve)
		admin.POST("/members/:id/disable", h.Member.Disable)

		admin.POST("/chapters", h.Chapter.Create)
		admin.PUT("/chapters/:id/quota", h.Chapter.SetQuota)
		admin.GET("/chapters/:id/quota", h.Chapter.GetQuota)

		admin.POST("/shops", h.Shop.Create)
		admin.PATCH("/shops/:id", h.Shop.Update)
		admin.DELETE("/shops/:id", h.Shop.Delete)
		admin.POST("/shops/:id/disable", h.Shop.Disable)
		admin.POST("/shops/:id/upgrade", h.Shop.Upgrade)

		admin.POST("/promotions", h.Engagement.CreatePromotion)
		admin.PUT("/promotions/:id", h.Engagement.UpdatePromotion)
		admin.POST("/promotions/:id/deactivate", h.Engagement.DeactivatePromotion)
		admin.DELETE("/promotions/:id", h.Engagement.DeletePromotion)
		admin.POST("/events", h.Engagement.CreateEvent)
		admin.PUT("/events/:id", h.Engagement.UpdateEvent)
		admin.DELETE("/events/:id", h.Engagement.DeleteEvent)

		admin.POST("/dues/delinquency-sweep", h.Dues.RunDelinquencySweep)
	}

	return engine
}
