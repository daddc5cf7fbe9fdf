package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/MaxTecnology/rede-trade-back/internal/core/ports/services"
)

// BlockedUserMiddleware rejects requests from users whose blocked flag is set.
// It must run after AuthMiddleware so the user ID is already in the context.
func BlockedUserMiddleware(userSvc portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := userSvc.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to load user for blocked check", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
			return
		}

		if user.Blocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User is blocked"})
			return
		}

		c.Next()
	}
}
