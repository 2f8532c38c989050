package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calovate/backend/internal/service"
)

// AuthHandler serves signup, login and the profile/goals surface.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	profile := protected.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("/goals", h.UpdateGoals)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, token, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(statusFromError(err), gin.H{"error": "failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user_id": sess.UserID,
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(statusFromError(err), gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": sess.UserID,
		"token":   token,
	})
}

// GetProfile returns the current user and their nutrition goals.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sess, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    sess.UserID,
		"email": sess.Email,
		"name":  sess.Name,
		"goals": sess.Goals,
	})
}

func (h *AuthHandler) UpdateGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req GoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Calories < 0 || req.Protein < 0 || req.Carbs < 0 || req.Sugar < 0 || req.Fat < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goals must not be negative"})
		return
	}

	goals, err := h.auth.UpdateGoals(c.Request.Context(), userID, req.Calories, req.Protein, req.Carbs, req.Sugar, req.Fat)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": "failed to update goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}
