package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/HarisNvr/test-case-shop/internal/logging"
	"github.com/HarisNvr/test-case-shop/internal/tokens"
)

const (
	AccessCookie = "accessToken"
	ContextUser  = "user_id"
	ContextRole  = "role"
)

// RequireAuth accepts an access token from the accessToken cookie or an
// Authorization: Bearer header and stores its subject under "user_id".
// Tokens are issued and refreshed by the auth service.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
			}

			claims, err := tokens.AccessClaimsFromToken(raw, secret)
			if err != nil {
				logging.FromContext(c.Request().Context()).Warn("access_token_rejected", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			c.Set(ContextUser, claims.Subject)
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(AccessCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if v, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
