package middleware

import (
	"net/http"
	"strings"

	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthMiddleware authenticates Bearer tokens for the given role. The token
// must carry the role in its claims and its hash must match the stored auth
// session. On success the account ID is set in context as "accountID".
func JWTAuthMiddleware(role string, tokens *utils.TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		accountID, tokenRole, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || accountID == "" || tokenRole != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		ok, err := tokens.Validate(c.Request.Context(), role, accountID, utils.HashToken(tokenString))
		if err != nil || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		c.Set("accountID", accountID)
		c.Next()
	}
}
