package routes

import (
	"github.com/Kariqs/farmlink-api/controllers"
	"github.com/Kariqs/farmlink-api/middlewares"
	"github.com/Kariqs/farmlink-api/models"
	"github.com/gin-gonic/gin"
)

func AIRoutes(server *gin.Engine, ai *controllers.AIController, requireAuth, rateLimit gin.HandlerFunc) {
	group := server.Group("/ai", requireAuth, middlewares.RequireRole(models.RoleFarmer), rateLimit)
	{
		group.POST("/voice-product", ai.VoiceProductUpload)
		group.POST("/weather-advice", ai.WeatherAdvice)
		group.POST("/farming-news", ai.FarmingNews)
		group.POST("/price-prediction", ai.PricePrediction)
		group.POST("/sales-insights", ai.SalesInsights)
		group.POST("/flows/:flow", ai.RunFlow)
	}
}
