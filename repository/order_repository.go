package repository

import (
	"context"
	"errors"
	"fmt"

	"canteen-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyCart is returned by Checkout when the user has no cart lines. A
// concurrent checkout that loses the race sees the same error: the winner's
// transaction deletes the rows while the loser waits on the row locks.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInvalidTransition is returned by UpdateStatus in strict mode when the
// requested status is not a valid successor of the current one.
var ErrInvalidTransition = errors.New("status transition not allowed")

// ListOrdersParams narrows an order listing.
type ListOrdersParams struct {
	Status models.OrderStatus // empty means all
	Limit  int
	Offset int
}

// OrderRepository defines the interface for order data access, including the
// checkout transaction that converts a cart into an order.
type OrderRepository interface {
	Checkout(ctx context.Context, userID uuid.UUID, paymentMethod string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, params ListOrdersParams) ([]models.Order, int64, error)
	FindAll(ctx context.Context, params ListOrdersParams) ([]models.AdminOrder, int64, error)
	FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus, strict bool) (*models.Order, models.OrderStatus, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Checkout converts the user's cart into an order as a single all-or-nothing
// unit: lock and read the cart lines, pin current prices into order items,
// insert the order, delete the cart. If any step fails nothing is visible
// and the cart stays intact for retry.
func (r *GormOrderRepository) Checkout(ctx context.Context, userID uuid.UUID, paymentMethod string) (*models.Order, error) {
	var created models.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// FOR UPDATE serializes concurrent checkouts on the same cart. The
		// loser blocks here and re-reads an empty set once the winner commits.
		var items []models.CartItem
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Order("created_at ASC").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		productIDs := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			productIDs = append(productIDs, it.ProductID)
		}
		var products []models.Product
		if err := tx.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return err
		}
		prices := make(map[uuid.UUID]int, len(products))
		for _, p := range products {
			prices[p.ID] = p.Price
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			price, ok := prices[it.ProductID]
			if !ok {
				return fmt.Errorf("cart references missing product %s", it.ProductID)
			}
			orderItems = append(orderItems, models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				Price:     price,
			})
		}

		order := models.Order{
			UserID:        userID,
			Total:         ComputeTotal(orderItems),
			Status:        models.StatusPending,
			PaymentMethod: paymentMethod,
			OrderItems:    orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return tx.Preload("OrderItems.Product").First(&created, "id = ?", order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ComputeTotal sums pinned unit price times quantity over the order lines.
// Integer arithmetic only; prices are in the smallest currency unit.
func ComputeTotal(items []models.OrderItem) int {
	total := 0
	for _, it := range items {
		total += it.Price * it.Quantity
	}
	return total
}

// FindByUserID retrieves the user's orders with optional status filter,
// newest first.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, params ListOrdersParams) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("user_id = ?", userID)
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// FindAll retrieves all orders across users, enriched with the owning user's
// display name and email.
func (r *GormOrderRepository) FindAll(ctx context.Context, params ListOrdersParams) ([]models.AdminOrder, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("OrderItems.Product").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	userIDs := make([]uuid.UUID, 0, len(orders))
	seen := make(map[uuid.UUID]bool, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			userIDs = append(userIDs, o.UserID)
		}
	}

	users := make(map[uuid.UUID]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var rows []models.User
		if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return nil, 0, err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	enriched := make([]models.AdminOrder, 0, len(orders))
	for _, o := range orders {
		u := users[o.UserID]
		enriched = append(enriched, models.AdminOrder{
			Order:     o,
			UserName:  u.Name,
			UserEmail: u.Email,
		})
	}

	return enriched, total, nil
}

// FindByIDAndUserID retrieves a specific order owned by the user.
func (r *GormOrderRepository) FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems.Product").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByID retrieves an order regardless of owner (admin paths only).
func (r *GormOrderRepository) FindByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems.Product").
		First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// UpdateStatus transitions an order to the given status. The row is locked
// for the read-check-write so concurrent updates on the same order
// serialize. In strict mode the lifecycle state machine is enforced; legacy
// mode allows any overwrite. Returns the updated order and the previous
// status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus, strict bool) (*models.Order, models.OrderStatus, error) {
	var updated models.Order
	var oldStatus models.OrderStatus

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		oldStatus = order.Status
		if strict && !order.Status.CanTransitionTo(status) {
			return ErrInvalidTransition
		}

		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}

		return tx.Preload("OrderItems.Product").First(&updated, "id = ?", orderID).Error
	})
	if err != nil {
		return nil, oldStatus, err
	}
	return &updated, oldStatus, nil
}
