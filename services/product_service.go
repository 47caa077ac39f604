package services

import (
	"context"
	"errors"

	apperrors "canteen-backend/common/errors"
	"canteen-backend/models"
	"canteen-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService exposes read-only catalog operations.
type ProductService interface {
	ListProducts(ctx context.Context, params repository.ListProductsParams) ([]models.Product, int64, *apperrors.Error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *apperrors.Error)
}

type productService struct {
	repo  repository.ProductRepository
	cache *CacheManager
}

// NewProductService wires the catalog repository with an optional cache.
func NewProductService(repo repository.ProductRepository, cache *CacheManager) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) ListProducts(ctx context.Context, params repository.ListProductsParams) ([]models.Product, int64, *apperrors.Error) {
	if s.cache != nil {
		if products, total, ok := s.cache.GetProductList(ctx, params); ok {
			return products, total, nil
		}
	}

	products, total, err := s.repo.List(ctx, params)
	if err != nil {
		zap.L().Error("Failed to list products", zap.Error(err))
		return nil, 0, apperrors.ErrInternalServer.Wrap(err)
	}

	if s.cache != nil {
		s.cache.SetProductListAsync(params, products, total)
	}
	return products, total, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *apperrors.Error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		zap.L().Error("Failed to fetch product", zap.String("id", id.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return product, nil
}
