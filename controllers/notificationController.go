package controllers

import (
	"net/http"

	"github.com/Kariqs/farmlink-api/stores"
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Notifications *stores.NotificationStore
}

func NewNotificationController(notifications *stores.NotificationStore) *NotificationController {
	return &NotificationController{Notifications: notifications}
}

func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	notifications, err := c.Notifications.ListForFarmer(ctx.Request.Context(), actor.ID)
	if err != nil {
		respondWithStoreError(ctx, "Unable to fetch notifications", err)
		return
	}
	unread, err := c.Notifications.UnreadCount(ctx.Request.Context(), actor.ID)
	if err != nil {
		respondWithStoreError(ctx, "Unable to fetch notifications", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

func (c *NotificationController) MarkNotificationRead(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.Notifications.MarkRead(ctx.Request.Context(), actor.ID, ctx.Param("id")); err != nil {
		respondWithStoreError(ctx, "Unable to update notification", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (c *NotificationController) MarkAllNotificationsRead(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	updated, err := c.Notifications.MarkAllRead(ctx.Request.Context(), actor.ID)
	if err != nil {
		respondWithStoreError(ctx, "Unable to update notifications", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": updated})
}

func (c *NotificationController) GetSalesAnalytics(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	summary, err := c.Notifications.SalesSummary(ctx.Request.Context(), actor.ID)
	if err != nil {
		respondWithStoreError(ctx, "Unable to compute sales analytics", err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}
