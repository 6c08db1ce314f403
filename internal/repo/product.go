package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shopbackend/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, attrs map[string]any) (*models.Product, error) {
	product := models.Product{
		ID:         uuid.NewString(),
		Attributes: attrs,
	}
	if product.Attributes == nil {
		product.Attributes = map[string]any{}
	}
	if err := r.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) FindProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// UpdateProduct merges the given fields into the stored document, leaving
// absent fields untouched.
func (r *GormRepo) UpdateProduct(ctx context.Context, id string, attrs map[string]any) (*models.Product, error) {
	product, err := r.FindProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Attributes == nil {
		product.Attributes = map[string]any{}
	}
	for k, v := range attrs {
		product.Attributes[k] = v
	}
	if err := r.DB.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
