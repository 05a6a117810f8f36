package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/socialsched/goscheduler/scheduler/domain"
)

const monthLayout = "2006-01"

// Calendar returns the 42-cell month grid with posts bucketed by date.
// The month query parameter takes YYYY-MM and defaults to the current
// month.
func (h *handlers) Calendar(c *gin.Context) {
	anchor := time.Now()
	if month := c.Query("month"); month != "" {
		parsed, err := time.ParseInLocation(monthLayout, month, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be formatted as YYYY-MM"})
			return
		}
		anchor = parsed
	}

	cells, err := h.service.MonthGrid(c.Request.Context(), anchor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build calendar"})
		return
	}

	c.JSON(http.StatusOK, cells)
}

// DailyLimit reports quota usage for the platform and date query
// parameters, so the creation form can render "N/3 used".
func (h *handlers) DailyLimit(c *gin.Context) {
	platform, ok := domain.ParsePlatform(c.Query("platform"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown platform"})
		return
	}

	date := c.Query("date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	limit, err := h.service.DailyLimit(c.Request.Context(), platform, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check daily limit"})
		return
	}

	c.JSON(http.StatusOK, limit)
}
