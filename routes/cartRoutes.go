package routes

import (
	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, cart *controllers.CartController, requireAuth gin.HandlerFunc) {
	group := server.Group("/cart", requireAuth)
	{
		group.GET("", cart.GetCart)
		group.POST("", cart.CreateCartItem)
		group.PATCH("/:productId", cart.UpdateCartItem)
		group.DELETE("/:productId", cart.RemoveCartItem)
		group.DELETE("", cart.ClearCart)
	}
}
