package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/placedir/backend/internal/utils"
)

const UserIDKey = "user_id"

// Auth requires a valid bearer token and stores the user id it carries
// on the request context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw := strings.TrimPrefix(header, "Bearer ")
		if header == "" || raw == header {
			abortUnauthorized(c, "Missing bearer token")
			return
		}
		userID, err := utils.ParseToken(secret, raw)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
