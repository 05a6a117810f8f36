package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialsched/goscheduler/api"
	"github.com/socialsched/goscheduler/scheduler/domain"
)

// PlatformStatus reports connection state for every platform.
func (h *handlers) PlatformStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.gateway.Status(c.Request.Context()))
}

// ConnectPlatform marks a platform connected and returns the OAuth URL
// a real integration would redirect to.
func (h *handlers) ConnectPlatform(c *gin.Context) {
	platform, ok := domain.ParsePlatform(c.Param("platform"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown platform"})
		return
	}

	authURL := h.gateway.Connect(c.Request.Context(), platform)
	c.JSON(http.StatusOK, api.ConnectResponse{AuthURL: authURL})
}

// DisconnectPlatform marks a platform disconnected.
func (h *handlers) DisconnectPlatform(c *gin.Context) {
	platform, ok := domain.ParsePlatform(c.Param("platform"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown platform"})
		return
	}

	h.gateway.Disconnect(c.Request.Context(), platform)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Analytics returns the simulated engagement report for the start and
// end query parameters.
func (h *handlers) Analytics(c *gin.Context) {
	report := h.gateway.Analytics(c.Request.Context(), c.Query("start"), c.Query("end"))
	c.JSON(http.StatusOK, report)
}
