package service

import (
	"context"
	"errors"
	"time"

	"shopbackend/internal/models"
	"shopbackend/internal/repo"
	"shopbackend/pkg/logging"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Index    Indexer
	Producer Publisher
}

func (s *CatalogService) Create(ctx context.Context, attrs map[string]any) (*models.Product, error) {
	product, err := s.Repo.CreateProduct(ctx, attrs)
	if err != nil {
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, product.ID, map[string]any{
		"type":      "product_created",
		"productID": product.ID,
	})

	return product, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrNotFound, "Invalid Id")
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) UpdateByID(ctx context.Context, id string, attrs map[string]any) (*models.Product, error) {
	product, err := s.Repo.UpdateProduct(ctx, id, attrs)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fail(ErrNotFound, "Invalid Id")
		}
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, product.ID, map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
	})

	return product, nil
}

func (s *CatalogService) DeleteByID(ctx context.Context, id string) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(ErrNotFound, "Invalid Id")
		}
		return err
	}

	if err := s.Index.Delete(ctx, id); err != nil {
		logging.FromContext(ctx).Error("index_delete_error", "productID", id, "error", err)
	}
	s.publish(ctx, id, map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return nil
}

// index mirrors the document into the search index. The catalog stays the
// source of truth, so index failures are logged and the request proceeds.
func (s *CatalogService) index(ctx context.Context, product *models.Product) {
	if err := s.Index.Index(ctx, product); err != nil {
		logging.FromContext(ctx).Error("index_error", "productID", product.ID, "error", err)
	}
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(pubCtx, "product_events", key, event); err != nil {
		logging.FromContext(ctx).Error("publish_error", "topic", "product_events", "error", err)
	}
}
