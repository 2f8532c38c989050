package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/calovate/backend/internal/api"
	"github.com/calovate/backend/internal/database"
	"github.com/calovate/backend/internal/middleware"
	"github.com/calovate/backend/internal/service"
	"github.com/calovate/backend/internal/store"
)

func setupPostgres(t *testing.T) *gorm.DB {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable",
		host, mappedPort.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupRedis(t *testing.T) *redis.Client {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate redis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get redis host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("failed to get redis port: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, mappedPort.Port()),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	return client
}

func setupRouter(t *testing.T, db *gorm.DB, redisClient *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)

	var entryStore service.EntryStore = store.NewGormEntryStore(db)
	entryStore = store.NewCachedEntryStore(entryStore, redisClient, time.Minute)

	authService := service.NewAuthService(store.NewGormUserStore(db), "test-secret")
	sessions := service.NewSessionManager(entryStore)
	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     100,
		KeyPrefix: "calovate:ratelimit",
	})

	router := gin.New()
	router.Use(gin.Recovery())
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	api.NewAuthHandler(authService).RegisterRoutes(v1, protected)
	api.NewEntryHandler(authService, sessions).RegisterRoutes(protected, rateLimiter.RateLimitMiddleware())
	api.NewDashboardHandler(authService, sessions).RegisterRoutes(protected)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestFullFlowAgainstPostgresWithCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupPostgres(t)
	redisClient := setupRedis(t)
	router := setupRouter(t, db, redisClient)

	// Register and capture the session token.
	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", gin.H{
		"name": "Demo User", "email": "demo@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	// Log two meals.
	for _, e := range []gin.H{
		{"name": "Oatmeal with Berries", "calories": 350, "protein": 12, "carbs": 60, "sugar": 15, "fat": 6},
		{"name": "Grilled Chicken Salad", "calories": 420, "protein": 35, "carbs": 20, "sugar": 5, "fat": 22},
	} {
		w := doJSON(t, router, "POST", "/api/v1/entries", reg.Token, e)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
	}

	// Refresh through the cache-aside path and check the mirror.
	w = doJSON(t, router, "GET", "/api/v1/entries?refresh=true", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Entries []json.RawMessage `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Entries, 2)

	// The list is now cached for the user.
	keys, err := redisClient.Keys(context.Background(), "calovate:entries:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	// Today's dashboard reflects both meals against default goals.
	w = doJSON(t, router, "GET", "/api/v1/dashboard/today", reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var today struct {
		Totals struct {
			Calories float64 `json:"calories"`
		} `json:"totals"`
		Progress map[string]struct {
			Percent int `json:"percent"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &today))
	assert.Equal(t, 770.0, today.Totals.Calories)
	assert.Equal(t, 39, today.Progress["calories"].Percent)

	// Mutations invalidate the cached list.
	w = doJSON(t, router, "POST", "/api/v1/entries", reg.Token, gin.H{
		"name": "Protein Smoothie", "calories": 280, "protein": 25, "carbs": 35, "sugar": 20, "fat": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	keys, err = redisClient.Keys(context.Background(), "calovate:entries:*").Result()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
