package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func RequireRole(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userClaims, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		claims, ok := userClaims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid user claims"})
			return
		}
		if claimRole, _ := claims["role"].(string); claimRole != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": role + " access required"})
			return
		}

		ctx.Next()
	}
}
