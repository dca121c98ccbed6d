package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foodtruckos/backend/utils"
)

// AuthMiddleware validates the admin bearer token. The token's tenant claim
// must match the tenant resolved for the request, so a token issued for one
// truck can never act on another.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		if tenantID := TenantID(c); tenantID == "" || claims.TenantID != tenantID {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
