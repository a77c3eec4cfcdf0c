package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HarisNvr/test-case-shop/internal/service"
	"github.com/HarisNvr/test-case-shop/internal/transport"
)

func badRequest(c echo.Context, field, detail string) error {
	return c.JSON(http.StatusBadRequest, transport.ErrorResponse{
		Code:   "validation_error",
		Detail: detail,
		Field:  field,
	})
}

// writeError maps service errors onto the structured error body. Unknown
// errors are logged and reported as 500 without detail.
func writeError(c echo.Context, l *slog.Logger, event string, err error) error {
	var (
		vErr     *service.ValidationError
		limitErr *service.LimitExceededError
	)

	switch {
	case errors.As(err, &vErr):
		l.Warn(event, "status", http.StatusBadRequest, "error", err)
		return badRequest(c, vErr.Field, vErr.Message)

	case errors.As(err, &limitErr):
		l.Warn(event, "status", http.StatusBadRequest, "error", err)
		return c.JSON(http.StatusBadRequest, transport.ErrorResponse{
			Code:      "limit_exceeded",
			Detail:    limitErr.Error(),
			Remaining: limitErr.Remaining.StringFixed(1),
		})

	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", http.StatusNotFound, "error", err)
		return c.JSON(http.StatusNotFound, transport.ErrorResponse{
			Code:   "not_found",
			Detail: "not found",
		})

	default:
		l.Error(event, "status", http.StatusInternalServerError, "error", err)
		return c.JSON(http.StatusInternalServerError, transport.ErrorResponse{
			Code:   "internal_error",
			Detail: "internal server error",
		})
	}
}
