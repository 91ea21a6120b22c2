package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/policy"
)

// Context keys set by Identity.
const (
	identityKey = "identity"
	userIDKey   = "user_id"
)

// Authenticator turns a raw bearer token into an identity, or nil.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) *policy.Identity
}

// Identity resolves the Authorization header on every request.  It never
// rejects: a missing, malformed or expired token leaves the request
// anonymous, and each operation decides whether that is acceptable.
func Identity(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw != "" {
				if ident := auth.Authenticate(c.Request().Context(), raw); ident != nil {
					c.Set(identityKey, ident)
					c.Set(userIDKey, ident.ID)
				}
			}
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// CurrentIdentity returns the identity attached by Identity, or nil for
// anonymous requests.
func CurrentIdentity(c echo.Context) *policy.Identity {
	ident, _ := c.Get(identityKey).(*policy.Identity)
	return ident
}
