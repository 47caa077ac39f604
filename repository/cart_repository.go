package repository

import (
	"context"
	"errors"

	"canteen-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartRepository defines the interface for cart data access. Every operation
// is scoped to the owning user; lookups always filter on (id, user_id) so a
// foreign row is indistinguishable from an absent one.
type CartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartItem, error)
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
}

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// ListByUser returns the user's cart lines joined with current product data.
func (r *GormCartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Add creates a cart line for (userID, productID) or increments the quantity
// of the existing one. The unique index on (user_id, product_id) backs the
// one-row-per-product invariant.
func (r *GormCartRepository) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, error) {
	var result models.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			result = models.CartItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  quantity,
			}
			return tx.Create(&result).Error
		}
		if err != nil {
			return err
		}

		existing.Quantity += quantity
		if err := tx.Model(&existing).Update("quantity", existing.Quantity).Error; err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Preload("Product").First(&result, "id = ?", result.ID).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateQuantity replaces the quantity of a cart line owned by the user.
func (r *GormCartRepository) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	var item models.CartItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Model(&item).Update("quantity", quantity).Error
	})
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	return &item, nil
}

// Remove deletes a cart line owned by the user.
func (r *GormCartRepository) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
