package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

const principalKey = "auth.principal"

// SetPrincipal stores the authenticated principal in the request context.
// Exported so tests can inject a caller without a real session.
func SetPrincipal(c *gin.Context, p services.Principal) {
	c.Set(principalKey, p)
}

// CurrentPrincipal returns the principal resolved by RequireSession.
func CurrentPrincipal(c *gin.Context) (services.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return services.Principal{}, false
	}
	p, ok := v.(services.Principal)
	return p, ok
}

// RequireSession resolves the session cookie once and threads the principal
// through the context; handlers pass it to services explicitly.
func RequireSession(sessions services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		p, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired session")
			c.Abort()
			return
		}

		SetPrincipal(c, p)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok || !p.IsAdmin() {
			utils.JSONError(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
