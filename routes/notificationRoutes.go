package routes

import (
	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/Kariqs/farmlink-api/middlewares"
	"github.com/Kariqs/farmlink-api/models"
	"github.com/gin-gonic/gin"
)

func NotificationRoutes(server *gin.Engine, notifications *controllers.NotificationController, requireAuth gin.HandlerFunc) {
	group := server.Group("/notifications", requireAuth, middlewares.RequireRole(models.RoleFarmer))
	{
		group.GET("", notifications.GetNotifications)
		group.GET("/analytics", notifications.GetSalesAnalytics)
		group.PATCH("/read-all", notifications.MarkAllNotificationsRead)
		group.PATCH("/:id/read", notifications.MarkNotificationRead)
	}
}
