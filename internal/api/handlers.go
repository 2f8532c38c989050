package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calovate/backend/internal/middleware"
	"github.com/calovate/backend/internal/nutrition"
	"github.com/calovate/backend/internal/service"
)

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return id, true
}

// currentFoodLog resolves the request to a session and its food log, loading
// the log from the store on first use.
func currentFoodLog(c *gin.Context, auth *service.AuthService, sessions *service.SessionManager) (*service.FoodLog, *service.Session, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, nil, false
	}

	sess, err := auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve session"})
		return nil, nil, false
	}

	log := sessions.Log(sess)
	if !log.Loaded() {
		if err := log.Load(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load food log"})
			return nil, nil, false
		}
	}
	return log, sess, true
}

// statusFromError maps service and aggregation errors to HTTP statuses.
func statusFromError(err error) int {
	var pe *service.PersistenceError
	switch {
	case errors.Is(err, service.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, nutrition.ErrInvalidEntry):
		return http.StatusBadRequest
	case errors.As(err, &pe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
