package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotel-backoffice/services"
)

const ActorHeader = "X-User-ID"

// Actor puts the acting user on the request context. Without the header the
// configured system user acts.
func Actor(systemUserID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := systemUserID
		if raw := strings.TrimSpace(c.GetHeader(ActorHeader)); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || n == 0 {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{
					"code":    "error.invalidActor",
					"message": ActorHeader + " must be a positive integer",
				}})
				return
			}
			id = uint(n)
		}
		if id != 0 {
			c.Request = c.Request.WithContext(services.WithActor(c.Request.Context(), id))
		}
		c.Next()
	}
}
