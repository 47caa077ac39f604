package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the identity records issued by the external auth provider.
// The backend never authenticates credentials itself; it only resolves
// display data and roles for verified user IDs.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Product is a catalog entry. Prices are integers in the smallest currency
// unit; products are immutable after seeding.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Price       int       `gorm:"not null" json:"price"`
	Description string    `json:"description"`
	Emoji       string    `gorm:"type:varchar(8)" json:"emoji"`
	Category    string    `gorm:"type:varchar(50);not null;index" json:"category"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CartItem is one line of a user's not-yet-committed selection. A user has
// at most one row per product; repeat adds merge into the quantity.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// Order is a durable record of a completed checkout. Total is computed
// server-side at creation and never changes afterwards; only Status and
// UpdatedAt are mutable.
type Order struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Total         int         `gorm:"not null" json:"total"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod string      `gorm:"type:varchar(30);not null;default:'cash'" json:"payment_method"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is a frozen snapshot of one cart line at checkout time. Price is
// the unit price pinned when the order was placed, not a live reference to
// the catalog.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int       `gorm:"not null" json:"price"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// AdminOrder is an Order enriched with the owning user's display data for
// the admin listing.
type AdminOrder struct {
	Order
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
