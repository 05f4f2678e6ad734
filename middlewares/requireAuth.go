package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kariqs/farmlink-api/stores"
	"github.com/Kariqs/farmlink-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// RequireAuth verifies the bearer token and stores its claims under "user".
func RequireAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Please login"})
			return
		}

		claims, err := utils.ParseToken(tokenString, secret)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		ctx.Set("user", claims)
		ctx.Next()
	}
}

// CurrentActor returns the caller recorded by RequireAuth.
func CurrentActor(ctx *gin.Context) (stores.Actor, bool) {
	value, exists := ctx.Get("user")
	if !exists {
		return stores.Actor{}, false
	}
	claims, ok := value.(jwt.MapClaims)
	if !ok {
		return stores.Actor{}, false
	}

	id, _ := claims["user_id"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return stores.Actor{}, false
	}
	return stores.Actor{ID: id, Name: name, Role: role}, true
}
