package routes

import (
	"time"

	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/Kariqs/farmlink-api/middlewares"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth          *controllers.AuthController
	Products      *controllers.ProductController
	Cart          *controllers.CartController
	Orders        *controllers.OrderController
	Ratings       *controllers.RatingController
	Notifications *controllers.NotificationController
	AI            *controllers.AIController
}

type Options struct {
	JWTSecret   string
	AIRateLimit int
}

// Register mounts every route group on server.
func Register(server *gin.Engine, h Handlers, opts Options) {
	requireAuth := middlewares.RequireAuth(opts.JWTSecret)
	limit := opts.AIRateLimit
	if limit < 1 {
		limit = 20
	}

	DefaultRoutes(server)
	AuthRoutes(server, h.Auth, requireAuth)
	ProductRoutes(server, h.Products, requireAuth)
	CartRoutes(server, h.Cart, requireAuth)
	OrderRoutes(server, h.Orders, h.Ratings, requireAuth)
	NotificationRoutes(server, h.Notifications, requireAuth)
	AIRoutes(server, h.AI, requireAuth, middlewares.RateLimit(limit, time.Minute))
}
