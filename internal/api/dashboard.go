package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/calovate/backend/internal/models"
	"github.com/calovate/backend/internal/nutrition"
	"github.com/calovate/backend/internal/service"
)

// DashboardHandler serves the derived daily and monthly views.
type DashboardHandler struct {
	auth     *service.AuthService
	sessions *service.SessionManager
}

func NewDashboardHandler(auth *service.AuthService, sessions *service.SessionManager) *DashboardHandler {
	return &DashboardHandler{
		auth:     auth,
		sessions: sessions,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/today", h.GetToday)
		dashboard.GET("/monthly", h.GetMonthly)
	}
}

// GetToday returns today's totals with goal progress and the macro-calorie
// composition split.
func (h *DashboardHandler) GetToday(c *gin.Context) {
	log, sess, ok := currentFoodLog(c, h.auth, h.sessions)
	if !ok {
		return
	}

	now := time.Now()
	entries := log.EntriesForDay(now)
	totals, err := nutrition.Sum(entries)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         models.DayKey(now),
		"totals":       totals,
		"progress":     nutrition.ProgressReport(totals, sess.Goals),
		"macro_shares": nutrition.MacroCalorieShare(totals),
	})
}

// GetMonthly returns one zero-filled record per calendar day of the requested
// month (?month=YYYY-MM, default current month).
func (h *DashboardHandler) GetMonthly(c *gin.Context) {
	log, _, ok := currentFoodLog(c, h.auth, h.sessions)
	if !ok {
		return
	}

	ref := time.Now()
	if month := c.Query("month"); month != "" {
		parsed, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month, want YYYY-MM"})
			return
		}
		ref = parsed
	}

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, 0).Add(-time.Nanosecond)
	entries := log.EntriesForRange(first, last)

	series, err := nutrition.DailySeries(entries, ref)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month": ref.Format("2006-01"),
		"days":  series,
	})
}
