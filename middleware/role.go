package middleware

import (
	"net/http"

	"calmwave/models"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets only sessions with the given role through. Must run after FirebaseAuthMiddleware.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := utils.SessionFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
			return
		}
		if s.Role != role {
			utils.JSONError(c, http.StatusForbidden, "Insufficient role", "requires "+string(role))
			return
		}
		c.Next()
	}
}
