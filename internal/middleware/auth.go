package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/subhashree8125/rental-platform/internal/session"
	"github.com/subhashree8125/rental-platform/pkg/logger"
	"github.com/subhashree8125/rental-platform/prometheus"
)

// IdentityKey is the echo context key the session middleware stores the
// authenticated identity under.
const IdentityKey = "identity"

// SessionAuth returns middleware that resolves the session cookie against
// the session store and rejects requests without a live session.
func SessionAuth(sessions *session.Store, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				log.Warn("Missing session cookie")
				prometheus.RecordAuthError("no_session")
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "authentication required"})
			}

			identity, ok := sessions.Get(cookie.Value)
			if !ok {
				log.Warn("Unknown or expired session token")
				prometheus.RecordAuthError("invalid_session")
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "authentication required"})
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// IdentityFromContext returns the identity placed in the context by
// SessionAuth.
func IdentityFromContext(c echo.Context) (session.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(session.Identity)
	return identity, ok
}
