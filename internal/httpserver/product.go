package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_demo/internal/logging"
	"github.com/Skotchmaster/shop_demo/internal/service"
	"github.com/Skotchmaster/shop_demo/internal/transport"
)

type ProductHTTP struct {
	Svc *service.CatalogService
}

func (h *ProductHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.add")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product data")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_product_error", "status", 400, "reason", "missing or invalid fields", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product data")
	}

	prod, err := h.Svc.AddProduct(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("add_product_error", "status", 400, "reason", "missing fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid product data")
		}
		l.Error("add_product_error", "status", 500, "reason", "cannot add product to db", "error", err)
		return internalError()
	}

	l.Info("add_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, transport.CreatedResponse{
		Message: "Product added successfully",
		ID:      prod.ID,
	})
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("get_product_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}

	prod, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("get_product_error", "status", 500, "reason", "cannot get product", "error", err)
		return internalError()
	}

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("list_products_error", "status", 500, "reason", "cannot list products", "error", err)
		return internalError()
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}

	var req transport.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product data")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("update_product_error", "status", 400, "reason", "invalid fields", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product data")
	}

	if _, err := h.Svc.UpdateProduct(ctx, id, req); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_product_error", "status", 400, "reason", "invalid fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid product data")
		default:
			l.Error("update_product_error", "status", 500, "reason", "cannot update product", "error", err)
			return internalError()
		}
	}

	l.Info("update_product_success", "product_id", id)
	return message(c, "Product updated successfully")
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := parseID(c, "id")
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "bad id", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_product_error", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		}
		l.Error("delete_product_error", "status", 500, "reason", "cannot delete product", "error", err)
		return internalError()
	}

	l.Info("delete_product_success", "product_id", id)
	return message(c, "Product deleted successfully")
}
