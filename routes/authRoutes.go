package routes

import (
	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController, requireAuth gin.HandlerFunc) {
	group := server.Group("/auth")
	{
		group.POST("/signup", auth.Signup)
		group.POST("/login", auth.Login)
		group.GET("/me", requireAuth, auth.Me)
	}
}
