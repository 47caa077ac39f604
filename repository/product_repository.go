package repository

import (
	"context"
	"errors"

	"canteen-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an entity is absent or not owned by the
// requesting user.
var ErrNotFound = errors.New("record not found")

// ListProductsParams narrows the catalog listing.
type ListProductsParams struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	List(ctx context.Context, params ListProductsParams) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// List retrieves products filtered by name substring and category, newest
// first.
func (r *GormProductRepository) List(ctx context.Context, params ListProductsParams) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindByID retrieves a single product.
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}
