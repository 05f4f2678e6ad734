package routes

import (
	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/Kariqs/farmlink-api/middlewares"
	"github.com/Kariqs/farmlink-api/models"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine, orders *controllers.OrderController, ratings *controllers.RatingController, requireAuth gin.HandlerFunc) {
	group := server.Group("/orders", requireAuth)
	{
		group.POST("", orders.CreateOrder)
		group.GET("", orders.GetOrders)
		group.GET("/:orderId", orders.GetOrderByID)
		group.GET("/:orderId/ratings", ratings.GetOrderRatings)
		group.PATCH("/:orderId/status", middlewares.RequireRole(models.RoleFarmer), orders.UpdateOrderStatus)
	}
	server.POST("/ratings", requireAuth, ratings.SubmitRating)
}
