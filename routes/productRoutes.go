package routes

import (
	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/Kariqs/farmlink-api/middlewares"
	"github.com/Kariqs/farmlink-api/models"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, products *controllers.ProductController, requireAuth gin.HandlerFunc) {
	server.GET("/products", products.GetProducts)
	server.GET("/products/:id", products.GetProduct)
	server.GET("/products/:id/ratings", products.GetProductRatings)

	farmer := server.Group("/products", requireAuth, middlewares.RequireRole(models.RoleFarmer))
	{
		farmer.POST("", products.CreateProduct)
		farmer.GET("/mine", products.GetMyProducts)
		farmer.PUT("/:id", products.UpdateProduct)
		farmer.PATCH("/:id/quantity", products.AdjustProductQuantity)
		farmer.POST("/:id/image", products.UploadProductImage)
	}
}
