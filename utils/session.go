package utils

import (
	"calmwave/models"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// Session is the signed-in identity of a request. It is built by the auth middleware and passed
// explicitly to services.
type Session struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func (s Session) IsTherapist() bool {
	return s.Role == models.RoleTherapist
}

// SetSession stores the session on the gin context.
func SetSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
	c.Set("userID", s.UID)
}

// SessionFrom returns the session placed by the auth middleware.
func SessionFrom(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok && s.UID != ""
}
