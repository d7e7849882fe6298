// Package mockapi is a gin implementation of the admin backend contract the
// client consumes: login, role resolution and the signup approval flow. It
// exists for local development and end-to-end tests; nothing in it is
// production backend logic.
package mockapi

import (
	"rewearadmin/internal/metrics"
	v1 "rewearadmin/pkg/api/v1"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type RouterConfig struct {
	LoginRatePerSec   int
	AllowedWebOrigins []string
}

func RegisterRoutes(h *Handler, auth *AuthService, rdb *redis.Client, cfg RouterConfig) *gin.Engine {
	r := gin.New()

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedWebOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedWebOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")

	r.Use(
		cors.New(corsCfg),
		RequestID(),
		GinZapLogger(),
		GinZapRecovery(),
		HTTPMetrics(),
	)
	r.SetTrustedProxies(nil)

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1/admin/auth")
	{
		api.POST("/login", LoginRateLimit(rdb, cfg.LoginRatePerSec), h.Login)
		api.POST("/refresh", h.Refresh)
		// Signup requests are submitted pre-authentication.
		api.POST("/signup-requests", h.CreateSignupRequest)
	}

	protected := r.Group("/api/v1/admin/auth")
	protected.Use(JWTMiddleware(auth))
	{
		protected.GET("/my-role", h.MyRole)

		review := protected.Group("/signup-requests")
		review.Use(RequireRoles(v1.RoleSuperAdmin))
		{
			review.GET("", h.ListSignupRequests)
			review.POST("/:id/approve", h.ApproveSignupRequest)
			review.POST("/:id/reject", h.RejectSignupRequest)
		}
	}

	return r
}
