package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "cart_session"
	SessionKey    = "session_id"

	sessionMaxAge = 60 * 60 * 24 * 30
)

// SessionMiddleware gives every browser a stable cart session ID via cookie.
// This identifies the cart only; it is not authentication.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookie, sessionID, sessionMaxAge, "/", "", false, true)
		}

		c.Set(SessionKey, sessionID)
		c.Next()
	}
}

// SessionID resolves the session set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
