package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialsched/goscheduler/scheduler/domain"
)

// GetPreferences returns the stored user preferences, or defaults.
func (h *handlers) GetPreferences(c *gin.Context) {
	prefs, err := h.service.Preferences(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load preferences"})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences overwrites the stored user preferences.
func (h *handlers) UpdatePreferences(c *gin.Context) {
	prefs := domain.Preferences{}
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdatePreferences(c.Request.Context(), prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, prefs)
}
