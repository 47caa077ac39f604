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

// CartService maintains the authoritative per-user cart prior to checkout.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, *apperrors.Error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, *apperrors.Error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartItem, *apperrors.Error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *apperrors.Error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart returns the user's cart lines with current catalog data. Prices
// here are display-only; the order total is pinned at checkout, not now.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, *apperrors.Error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to list cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return items, nil
}

// AddItem adds quantity of a product to the cart, merging with an existing
// line for the same product.
func (s *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, *apperrors.Error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		zap.L().Error("Failed to verify product", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	item, err := s.cartRepo.Add(ctx, userID, productID, quantity)
	if err != nil {
		zap.L().Error("Failed to add cart item", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return item, nil
}

// UpdateItem replaces the quantity of a cart line the user owns.
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartItem, *apperrors.Error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	item, err := s.cartRepo.UpdateQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrCartItemNotFound
		}
		zap.L().Error("Failed to update cart item", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	return item, nil
}

// RemoveItem deletes a cart line the user owns.
func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *apperrors.Error {
	if err := s.cartRepo.Remove(ctx, userID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrCartItemNotFound
		}
		zap.L().Error("Failed to remove cart item", zap.String("user_id", userID.String()), zap.Error(err))
		return apperrors.ErrInternalServer.Wrap(err)
	}
	return nil
}
