package ratelimit

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/HarisNvr/test-case-shop/internal/logging"
)

// Middleware limits requests per authenticated user, falling back to the
// client ip. Limiter errors let the request through.
func Middleware(l Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			key, _ := c.Get("user_id").(string)
			if key == "" {
				key = "ip:" + c.RealIP()
			}

			allowed, retryAfter, err := l.Allow(ctx, key)
			if err != nil {
				logging.FromContext(ctx).Warn("rate_limit_unavailable", "error", err)
				return next(c)
			}
			if !allowed {
				secs := int(math.Ceil(retryAfter.Seconds()))
				if secs < 1 {
					secs = 1
				}
				c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(secs))
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"code":   "rate_limited",
					"detail": "too many requests",
				})
			}
			return next(c)
		}
	}
}
