package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetCurrentUserIsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    40301,
				"message": "admin only",
				"data":    nil,
			})
			return
		}
		c.Next()
	}
}
