package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "shopbackend/internal/middleware/auth"
	"shopbackend/internal/service"
	"shopbackend/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) userID(c echo.Context) (uint, error) {
	user, ok := authmw.UserFromContext(c)
	if !ok {
		return 0, errors.New("unauthorized")
	}
	return user.ID, nil
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	userID, err := h.userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized", "success": false})
	}

	var req struct {
		ProductID string  `json:"productId"`
		Title     string  `json:"title"`
		Price     float64 `json:"price"`
		Qty       uint    `json:"qty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	cart, err := h.Svc.AddItem(ctx, userID, req.ProductID, req.Title, req.Price, req.Qty)
	if err != nil {
		return failJSON(c, err)
	}

	l.Info("cart_item_added", "userID", userID, "productID", req.ProductID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Items added to cart",
		"cart":    cart,
		"success": true,
	})
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := h.userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized", "success": false})
	}

	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		// A missing cart is a normal response here, not an error.
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "Cart was not found"})
		}
		return failJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User Cart",
		"cart":    cart,
	})
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	userID, err := h.userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized", "success": false})
	}

	productID := c.Param("productId")
	if err := h.Svc.RemoveItem(ctx, userID, productID); err != nil {
		return failJSON(c, err)
	}

	l.Info("cart_item_removed", "userID", userID, "productID", productID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product has been removed from cart",
	})
}

func (h *CartHTTP) DecreaseQty(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrease_qty")

	userID, err := h.userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized", "success": false})
	}

	var req struct {
		ProductID string `json:"productId"`
		Qty       uint   `json:"qty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body", "success": false})
	}

	cart, err := h.Svc.DecreaseQty(ctx, userID, req.ProductID, req.Qty)
	if err != nil {
		return failJSON(c, err)
	}

	l.Info("cart_item_decreased", "userID", userID, "productID", req.ProductID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Items qty decreased",
		"cart":    cart,
		"success": true,
	})
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	userID, err := h.userID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized", "success": false})
	}

	if err := h.Svc.ClearCart(ctx, userID); err != nil {
		return failJSON(c, err)
	}

	l.Info("cart_cleared", "userID", userID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User cart cleared",
	})
}
