package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys for gin.Context.
const (
	ContextVisitorIDKey = "visitorID"
	ContextAdminIDKey   = "adminID"
	ContextUsernameKey  = "adminUsername"
	ContextRoleKey      = "role"
)

const visitorCookieName = "visitor_id"

// visitor cookie lives for a year
const visitorCookieMaxAge = 365 * 24 * 60 * 60

// VisitorIdentity assigns every browser a stable anonymous identifier via
// an HttpOnly cookie. Visitors never register: the cookie IS the account.
func VisitorIdentity(secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID, err := c.Cookie(visitorCookieName)
		if err != nil || visitorID == "" {
			visitorID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookieName, visitorID, visitorCookieMaxAge, "/", "", secureCookies, true)
		} else if _, parseErr := uuid.Parse(visitorID); parseErr != nil {
			// A tampered cookie gets replaced rather than rejected.
			visitorID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookieName, visitorID, visitorCookieMaxAge, "/", "", secureCookies, true)
		}

		c.Set(ContextVisitorIDKey, visitorID)
		c.Next()
	}
}
