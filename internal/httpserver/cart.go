package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/HarisNvr/test-case-shop/internal/logging"
	"github.com/HarisNvr/test-case-shop/internal/service"
	"github.com/HarisNvr/test-case-shop/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetID(c echo.Context) (uuid.UUID, error) {
	s, ok := c.Get("user_id").(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	userID, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return userID, nil
}

func productIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 0)
	if err != nil || id == 0 {
		return 0, errors.New("product_id must be a positive integer")
	}
	return uint(id), nil
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	userID, err := h.GetID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	view, err := h.Svc.List(ctx, userID)
	if err != nil {
		return writeError(c, l, "get_cart_error", err)
	}

	l.Info("cart_listed", "count", view.Count)
	return c.JSON(http.StatusOK, transport.NewCartResponse(*view))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	userID, err := h.GetID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return badRequest(c, "", "invalid body")
	}
	if req.Product == nil || *req.Product == 0 {
		l.Warn("add_to_cart_error", "status", 400)
		return badRequest(c, "product", "product is required")
	}

	line, err := h.Svc.AddOrMerge(ctx, userID, *req.Product, req.Quantity)
	if err != nil {
		return writeError(c, l, "add_to_cart_error", err)
	}

	l.Info("cart_item_added", "product_id", line.ProductID, "quantity", line.Quantity.String())
	return c.JSON(http.StatusCreated, transport.NewLineResponse(*line))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart")

	userID, err := h.GetID(c)
	if err != nil {
		l.Warn("update_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := productIDParam(c)
	if err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return badRequest(c, "product_id", err.Error())
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return badRequest(c, "", "invalid body")
	}

	line, err := h.Svc.SetQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		return writeError(c, l, "update_cart_error", err)
	}

	l.Info("cart_item_updated", "product_id", productID, "quantity", line.Quantity.String())
	return c.JSON(http.StatusOK, transport.NewLineResponse(*line))
}

func (h *CartHTTP) DeleteOneFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.one.from.cart")

	userID, err := h.GetID(c)
	if err != nil {
		l.Warn("delete_one_from_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := productIDParam(c)
	if err != nil {
		l.Warn("delete_one_from_cart_error", "status", 400, "error", err)
		return badRequest(c, "product_id", err.Error())
	}

	if err := h.Svc.Remove(ctx, userID, productID); err != nil {
		return writeError(c, l, "delete_one_from_cart_error", err)
	}

	l.Info("cart_item_removed", "product_id", productID)
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) DeleteAllFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.all.from.cart")

	userID, err := h.GetID(c)
	if err != nil {
		l.Warn("delete_all_from_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	n, err := h.Svc.ClearAll(ctx, userID)
	if err != nil {
		return writeError(c, l, "delete_all_from_cart_error", err)
	}

	l.Info("cart_cleared", "removed", n)
	return c.NoContent(http.StatusNoContent)
}
