package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"shopbackend/internal/models"
	"shopbackend/internal/search"
	"shopbackend/internal/service"
	"shopbackend/pkg/logging"
)

type ProductHTTP struct {
	Svc    *service.CatalogService
	Search *search.ES
}

func productDocs(products []models.Product) []map[string]any {
	docs := make([]map[string]any, len(products))
	for i := range products {
		docs[i] = products[i].Document()
	}
	return docs
}

func (h *ProductHTTP) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var attrs map[string]any
	if err := c.Bind(&attrs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	product, err := h.Svc.Create(ctx, attrs)
	if err != nil {
		return failJSON(c, err)
	}

	l.Info("product_created", "productID", product.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product added successfully",
		"product": product.Document(),
		"success": true,
	})
}

func (h *ProductHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.Svc.ListAll(ctx)
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Fetched all products",
		"products": productDocs(products),
		"success":  true,
	})
}

func (h *ProductHTTP) GetByID(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.Svc.GetByID(ctx, c.Param("id"))
	if err != nil {
		return failJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Fetched specific product",
		"product": product.Document(),
		"success": true,
	})
}

func (h *ProductHTTP) UpdateByID(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	var attrs map[string]any
	if err := c.Bind(&attrs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	product, err := h.Svc.UpdateByID(ctx, c.Param("id"), attrs)
	if err != nil {
		return failJSON(c, err)
	}

	l.Info("product_updated", "productID", product.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product updated successfully",
		"product": product.Document(),
		"success": true,
	})
}

func (h *ProductHTTP) DeleteByID(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id := c.Param("id")
	if err := h.Svc.DeleteByID(ctx, id); err != nil {
		return failJSON(c, err)
	}

	l.Info("product_deleted", "productID", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
		"success": true,
	})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()

	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "query is required", "success": false})
	}
	if h.Search == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "search is not configured", "success": false})
	}

	from, _ := strconv.Atoi(c.QueryParam("from"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = 20
	}

	total, products, err := h.Search.Search(ctx, q, from, size)
	if err != nil {
		logging.FromContext(ctx).Error("search_error", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error", "success": false})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"total":    total,
		"products": products,
		"success":  true,
	})
}
