package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socialsched/goscheduler/api"
	"github.com/socialsched/goscheduler/scheduler/application"
	"github.com/socialsched/goscheduler/scheduler/domain"
)

// ListPosts returns the stored posts narrowed by the q, platform, and
// status query parameters. Absent parameters are identity filters.
func (h *handlers) ListPosts(c *gin.Context) {
	filter := application.Filter{
		Query:    c.Query("q"),
		Platform: c.Query("platform"),
		Status:   c.Query("status"),
	}

	posts, err := h.service.ListPosts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost validates and stores a new post. Validation failures come
// back as 422 with the structured result; a daily-limit rejection is a
// 409 carrying the quota status.
func (h *handlers) CreatePost(c *gin.Context) {
	draft := application.PostDraft{}
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, rejection, err := h.service.CreatePost(c.Request.Context(), draft)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	if rejection != nil {
		if rejection.Limit != nil {
			c.JSON(http.StatusConflict, rejection)
			return
		}
		c.JSON(http.StatusUnprocessableEntity, rejection)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// DeletePost removes one post from the stored sequence.
func (h *handlers) DeletePost(c *gin.Context) {
	postID := c.Param("postId")

	err := h.service.DeletePost(c.Request.Context(), postID)
	if errors.Is(err, domain.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ReschedulePost accepts a reschedule request. The schedule itself is
// not moved yet; the service logs the request and acknowledges.
func (h *handlers) ReschedulePost(c *gin.Context) {
	postID := c.Param("postId")

	req := api.RescheduleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.service.ReschedulePost(c.Request.Context(), postID, req.Date, req.Time)
	if errors.Is(err, domain.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reschedule post"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"success": true})
}

// UpcomingPosts returns the next posts scheduled after now.
func (h *handlers) UpcomingPosts(c *gin.Context) {
	posts, err := h.service.UpcomingPosts(c.Request.Context(), 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list upcoming posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Stats returns post counts by status for the dashboard cards.
func (h *handlers) Stats(c *gin.Context) {
	counts, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, counts)
}
