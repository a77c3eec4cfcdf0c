package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HarisNvr/test-case-shop/internal/logging"
	"github.com/HarisNvr/test-case-shop/internal/middleware/auth"
	"github.com/HarisNvr/test-case-shop/internal/middleware/csrf"
	"github.com/HarisNvr/test-case-shop/internal/middleware/ratelimit"
)

type Deps struct {
	CartHandler *CartHTTP
	JWTSecret   []byte
	// Limiter guards mutating routes. Nil disables rate limiting.
	Limiter ratelimit.Limiter
	// Ready backs /health/ready. Nil reports ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx := c.Request().Context()
		if err := d.Ready(ctx); err != nil {
			logging.FromContext(ctx).Warn("not_ready", "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	v1 := e.Group("/api/v1")

	cart := v1.Group("/shopping_cart", auth.RequireAuth(d.JWTSecret), csrf.Middleware(csrf.DefaultConfig()))

	var mutate []echo.MiddlewareFunc
	if d.Limiter != nil {
		mutate = append(mutate, ratelimit.Middleware(d.Limiter))
	}

	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart, mutate...)
	cart.DELETE("/clear", d.CartHandler.DeleteAllFromCart, mutate...)
	cart.PATCH("/:product_id", d.CartHandler.UpdateQuantity, mutate...)
	cart.DELETE("/:product_id", d.CartHandler.DeleteOneFromCart, mutate...)
}
