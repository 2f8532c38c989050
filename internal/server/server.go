package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calovate/backend/config"
	"github.com/calovate/backend/internal/api"
	"github.com/calovate/backend/internal/database"
	"github.com/calovate/backend/internal/middleware"
	"github.com/calovate/backend/internal/router"
	"github.com/calovate/backend/internal/service"
	"github.com/calovate/backend/internal/store"
)

// Server wires the configured persistence collaborators, services and
// handlers into an HTTP server.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New builds the server for the configured deployment.
func New(cfg *config.Config) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	var entryStore service.EntryStore = store.NewGormEntryStore(db)
	userStore := store.NewGormUserStore(db)

	var rateLimiter *middleware.RateLimiter
	if cfg.DBDriver == config.DriverPostgres {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     60,
			KeyPrefix: "calovate:ratelimit",
		})
		if cfg.CacheMode == config.CacheAside {
			entryStore = store.NewCachedEntryStore(entryStore, redisClient, 5*time.Minute)
		}
	} else {
		// The local-file deployment runs without redis.
		log.Printf("sqlite deployment: rate limiting and entry cache disabled")
	}

	authService := service.NewAuthService(userStore, cfg.JWTSecret)
	sessions := service.NewSessionManager(entryStore)

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewEntryHandler(authService, sessions),
		api.NewDashboardHandler(authService, sessions),
		authService,
		rateLimiter,
	)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
