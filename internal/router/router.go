package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/calovate/backend/internal/api"
	"github.com/calovate/backend/internal/middleware"
	"github.com/calovate/backend/internal/service"
)

// SetupRouter configures the application routes. rateLimiter may be nil, in
// which case mutating routes run unthrottled.
func SetupRouter(
	authHandler *api.AuthHandler,
	entryHandler *api.EntryHandler,
	dashboardHandler *api.DashboardHandler,
	authService *service.AuthService,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	limit := func(c *gin.Context) { c.Next() }
	if rateLimiter != nil {
		limit = rateLimiter.RateLimitMiddleware()
	}

	authHandler.RegisterRoutes(v1, protected)
	entryHandler.RegisterRoutes(protected, limit)
	dashboardHandler.RegisterRoutes(protected)

	return router
}
