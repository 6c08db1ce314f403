package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopbackend/internal/models"
	"shopbackend/internal/repo"
	"shopbackend/pkg/logging"
)

type CartService struct {
	Repo     *repo.GormRepo
	Producer Publisher
}

// AddItem merges qty and accumulated line cost into an existing line, or
// appends a new line priced at unit price times quantity. The cart is
// created lazily on first add.
func (s *CartService) AddItem(ctx context.Context, userID uint, productID, title string, price float64, qty uint) (*models.Cart, error) {
	if productID == "" {
		return nil, fail(ErrValidation, "productId is required")
	}
	if qty == 0 {
		return nil, fail(ErrValidation, "qty must be greater than zero")
	}

	cart, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	if i := findItem(cart.Items, productID); i >= 0 {
		cart.Items[i].Qty += qty
		cart.Items[i].Price += price * float64(qty)
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Title:     title,
			Price:     price * float64(qty),
			Qty:       qty,
		})
	}

	if err := s.Repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
		"qty":       qty,
	})

	return cart, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrNotFound, "Cart was not found")
		}
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the whole line matching productID, whatever its quantity.
func (s *CartService) RemoveItem(ctx context.Context, userID uint, productID string) error {
	cart, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(ErrNotFound, "Cart was not found")
		}
		return err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.Repo.SaveCart(ctx, cart); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})

	return nil
}

// DecreaseQty lowers a line's quantity, deriving the unit price from the
// stored line total. A decrease covering the whole quantity removes the
// line. An unknown product leaves the cart untouched.
func (s *CartService) DecreaseQty(ctx context.Context, userID uint, productID string, qty uint) (*models.Cart, error) {
	cart, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrValidation, "Invalid product id")
		}
		return nil, err
	}

	i := findItem(cart.Items, productID)
	if i < 0 {
		return nil, fail(ErrValidation, "Invalid product id")
	}

	item := &cart.Items[i]
	if item.Qty > qty {
		unitPrice := item.Price / float64(item.Qty)
		item.Qty -= qty
		item.Price -= unitPrice * float64(qty)
	} else {
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
	}

	if err := s.Repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_decreased",
		"userID":    userID,
		"productID": productID,
		"qty":       qty,
	})

	return cart, nil
}

// ClearCart empties an existing cart, or lazily creates an empty one keyed
// to the user.
func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	cart, err := s.Repo.FindCartByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		cart = &models.Cart{UserID: userID}
	}
	cart.Items = []models.CartItem{}

	if err := s.Repo.SaveCart(ctx, cart); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":   "cart_cleared",
		"userID": userID,
	})

	return nil
}

func findItem(items []models.CartItem, productID string) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *CartService) publish(ctx context.Context, userID uint, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(pubCtx, "cart_events", fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("publish_error", "topic", "cart_events", "error", err)
	}
}
