package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopbackend/internal/models"
)

func (r *GormRepo) FindCartByUser(ctx context.Context, userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// SaveCart writes the whole cart document back. Concurrent mutations of the
// same cart are last-write-wins at the row level; the unique index on
// user_id keeps concurrent first-adds from creating duplicate carts.
func (r *GormRepo) SaveCart(ctx context.Context, cart *models.Cart) error {
	return r.DB.WithContext(ctx).Save(cart).Error
}
