package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/course-marketplace/internal/config"
	"github.com/stemsi/course-marketplace/internal/handler"
	"github.com/stemsi/course-marketplace/internal/middleware"
	"github.com/stemsi/course-marketplace/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	AdminAuth *handler.AuthHandler
	UserAuth  *handler.AuthHandler
	Course    *handler.CourseHandler
	Purchase  *handler.PurchaseHandler
	Health    *handler.HealthHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// authLimiter may be nil, which leaves signup and signin unthrottled.
func SetupRouter(
	auth middleware.TokenValidator,
	handlers *Handlers,
	authLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ClientIP keys the auth rate limiter, so forwarded headers count only from known proxies.
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("Invalid TRUSTED_PROXIES, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.Health.Health)

	api := router.Group("/api/v1")
	api.GET("/hello", handlers.Health.Hello)

	authThrottle := func(c *gin.Context) { c.Next() }
	if authLimiter != nil {
		authThrottle = authLimiter.Middleware()
	}

	// ─── 1. User Group ─────────────────────────────────────────────────
	user := api.Group("/user", middleware.NoStore())
	{
		user.POST("/signup", authThrottle, handlers.UserAuth.Signup)
		user.POST("/signin", authThrottle, handlers.UserAuth.Signin)
		user.GET("/purchases", middleware.RequireUserJWT(auth), handlers.Purchase.List)
	}

	// ─── 2. Admin Group ────────────────────────────────────────────────
	admin := api.Group("/admin", middleware.NoStore())
	{
		admin.POST("/signup", authThrottle, handlers.AdminAuth.Signup)
		admin.POST("/signin", authThrottle, handlers.AdminAuth.Signin)

		course := admin.Group("/course", middleware.RequireAdminJWT(auth))
		{
			course.POST("", handlers.Course.Create)
			course.PUT("/:id", handlers.Course.Update)
			course.GET("/courses", handlers.Course.ListMine)
		}
	}

	// ─── 3. Catalog Group ──────────────────────────────────────────────
	courses := api.Group("/courses")
	{
		if ttl := int(cfg.CatalogCacheTTL / time.Second); ttl > 0 {
			courses.GET("", middleware.CacheControl(ttl), handlers.Course.ListAll)
		} else {
			courses.GET("", handlers.Course.ListAll)
		}
		courses.POST("/purchase/:course_id", middleware.NoStore(), middleware.RequireUserJWT(auth), handlers.Purchase.Purchase)
	}

	return router
}
