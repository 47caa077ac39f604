package models

import (
	"time"

	"github.com/google/uuid"
)

// Event names published to the order events stream.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload published (best-effort) to Kafka and SNS when an
// order is created or its status changes. Consumers such as a notification
// service subscribe to these; the core never delivers notifications itself.
type OrderEvent struct {
	Event     string      `json:"event"`
	OrderID   uuid.UUID   `json:"order_id"`
	UserID    uuid.UUID   `json:"user_id"`
	Status    OrderStatus `json:"status"`
	OldStatus OrderStatus `json:"old_status,omitempty"`
	Total     int         `json:"total,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
