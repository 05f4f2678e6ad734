package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to FarmLink API. Fresh produce, straight from the farm.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create a customer or farmer account
- POST "/auth/login" - Log in with email, password and role
- GET "/auth/me" - Current user

PRODUCTS
- GET "/products" - Browse products (page, limit, search, category, farmerId)
- GET "/products/:id" - Get product by ID
- GET "/products/:id/ratings" - Ratings for a product
- POST "/products" - Add a product (farmer)
- GET "/products/mine" - Your products (farmer)
- PUT "/products/:id" - Edit your product (farmer)
- PATCH "/products/:id/quantity" - Restock or write off units (farmer)
- POST "/products/:id/image" - Upload a product image (farmer)

CART
- GET "/cart" - Your cart
- POST "/cart" - Add a product to your cart
- PATCH "/cart/:productId" - Change a line quantity
- DELETE "/cart/:productId" - Remove a line
- DELETE "/cart" - Empty the cart

ORDERS
- POST "/orders" - Check out your cart
- GET "/orders" - Your orders, newest first
- GET "/orders/:orderId" - Order by ID
- GET "/orders/:orderId/ratings" - Your ratings for an order
- PATCH "/orders/:orderId/status" - Update order status (farmer)
- POST "/ratings" - Rate a product from a delivered order

NOTIFICATIONS (farmer)
- GET "/notifications" - Sale notifications and unread count
- GET "/notifications/analytics" - Sales totals per product and per day
- PATCH "/notifications/:id/read" - Mark one as read
- PATCH "/notifications/read-all" - Mark all as read

AI (farmer)
- POST "/ai/voice-product" - Extract a product from a voice transcript
- POST "/ai/weather-advice" - Weather based farming advice
- POST "/ai/farming-news" - Regional farming news
- POST "/ai/price-prediction" - Price suggestion
- POST "/ai/sales-insights" - Sales analysis
- POST "/ai/flows/:flow" - Run a flow by name`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
