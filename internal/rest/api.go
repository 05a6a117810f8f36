package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/socialsched/goscheduler/scheduler/application"
)

// handlers carries the wired service layer into the route functions.
type handlers struct {
	service *application.ScheduleService
	gateway *application.PlatformGateway
}

func NewApi(router *gin.Engine, service *application.ScheduleService, gateway *application.PlatformGateway) {
	h := &handlers{
		service: service,
		gateway: gateway,
	}

	postsV1 := router.Group("posts/v1")
	{
		postsV1.GET("/", h.ListPosts)
		postsV1.POST("/", h.CreatePost)
		postsV1.DELETE("/:postId", h.DeletePost)
		postsV1.PUT("/:postId/reschedule", h.ReschedulePost)
		postsV1.GET("/upcoming", h.UpcomingPosts)
		postsV1.GET("/calendar", h.Calendar)
		postsV1.GET("/limit", h.DailyLimit)
		postsV1.GET("/stats", h.Stats)
		postsV1.POST("/export", h.Export)
	}

	platformsV1 := router.Group("platforms/v1")
	{
		platformsV1.GET("/status", h.PlatformStatus)
		platformsV1.POST("/:platform/connect", h.ConnectPlatform)
		platformsV1.POST("/:platform/disconnect", h.DisconnectPlatform)
	}

	preferencesV1 := router.Group("preferences/v1")
	{
		preferencesV1.GET("/", h.GetPreferences)
		preferencesV1.PUT("/", h.UpdatePreferences)
	}

	analyticsV1 := router.Group("analytics/v1")
	{
		analyticsV1.GET("/", h.Analytics)
	}
}
