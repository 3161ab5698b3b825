package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_demo/internal/logging"
	authmw "github.com/Skotchmaster/shop_demo/internal/middleware/auth"
	"github.com/Skotchmaster/shop_demo/internal/service"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "reason", "bad product id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to add item to the cart")
	}

	item, err := h.Svc.AddToCart(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_to_cart_error", "status", 400, "reason", "unknown user or product", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to add item to the cart")
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return internalError()
	}

	l.Info("add_to_cart_success", "product_id", productID, "quantity", item.Quantity)
	return message(c, "Item added to the cart successfully")
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "reason", "bad product id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to remove item from the cart")
	}

	_, removed, err := h.Svc.RemoveFromCart(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("remove_from_cart_error", "status", 400, "reason", "item not in cart", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to remove item from the cart")
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return internalError()
	}

	l.Info("remove_from_cart_success", "product_id", productID, "row_deleted", removed)
	return message(c, "Item removed from the cart successfully")
}

func (h *CartHTTP) ViewCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.view")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("view_cart_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	items, err := h.Svc.ViewCart(ctx, userID)
	if err != nil {
		l.Error("view_cart_error", "status", 500, "error", err)
		return internalError()
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	userID, err := authmw.UserID(c)
	if err != nil {
		l.Warn("checkout_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	n, err := h.Svc.Checkout(ctx, userID)
	if err != nil {
		l.Error("checkout_error", "status", 500, "error", err)
		return internalError()
	}

	l.Info("checkout_success", "removed", n)
	return message(c, "Checkout successful. Cart has been cleared.")
}
