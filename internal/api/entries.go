package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calovate/backend/internal/service"
)

// EntryHandler serves the food log CRUD surface.
type EntryHandler struct {
	auth     *service.AuthService
	sessions *service.SessionManager
}

func NewEntryHandler(auth *service.AuthService, sessions *service.SessionManager) *EntryHandler {
	return &EntryHandler{
		auth:     auth,
		sessions: sessions,
	}
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	entries := router.Group("/entries")
	{
		entries.GET("", h.ListEntries)
		entries.POST("", limit, h.CreateEntry)
		entries.PUT("/:id", limit, h.UpdateEntry)
		entries.DELETE("/:id", limit, h.DeleteEntry)
	}
}

// ListEntries returns the user's entries, scoped to one day with ?day=YYYY-MM-DD.
// ?refresh=true re-reads from the store first; when that fails the mirror the
// user has already seen is served instead of an error.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	log, _, ok := currentFoodLog(c, h.auth, h.sessions)
	if !ok {
		return
	}

	if c.Query("refresh") == "true" {
		if err := log.Load(c.Request.Context()); err != nil {
			c.Header("X-Data-Stale", "true")
		}
	}

	if day := c.Query("day"); day != "" {
		date, err := time.ParseInLocation("2006-01-02", day, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day, want YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": log.EntriesForDay(date)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": log.Entries()})
}

func (h *EntryHandler) CreateEntry(c *gin.Context) {
	log, _, ok := currentFoodLog(c, h.auth, h.sessions)
	if !ok {
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := log.Add(c.Request.Context(), service.EntryInput{
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Sugar:    req.Sugar,
		Fat:      req.Fat,
	})
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	log, _, ok := currentFoodLog(c, h.auth, h.sessions)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := log.Edit(c.Request.Context(), id, service.EntryInput{
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Sugar:    req.Sugar,
		Fat:      req.Fat,
		Date:     req.Date,
	})
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	log, _, ok := currentFoodLog(c, h.auth, h.sessions)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := log.Remove(c.Request.Context(), id); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "entry deleted",
		"id":      id,
	})
}
