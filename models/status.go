package models

// OrderStatus is the lifecycle state of an order. Orders start as
// StatusPending and move forward along the kitchen flow; cancellation is
// only possible before food preparation starts.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReady},
	StatusReady:          {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	_, ok := allowedTransitions[st]
	return st, ok
}

// IsValid reports whether the status is one of the defined lifecycle states.
func (s OrderStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether moving from s to next is allowed by the
// lifecycle state machine.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, n := range allowedTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// CurrentLocation maps a status to the display location shown on the order
// tracking view.
func (s OrderStatus) CurrentLocation() string {
	switch s {
	case StatusPending:
		return "Order received at Madras Engineering College Canteen"
	case StatusConfirmed:
		return "Order confirmed - Kitchen Queue"
	case StatusPreparing:
		return "Kitchen - Being prepared by our chefs"
	case StatusReady:
		return "Ready for pickup at Canteen Counter"
	case StatusOutForDelivery:
		return "En route to your location"
	case StatusDelivered:
		return "Delivered successfully"
	default:
		return "Madras Engineering College Canteen"
	}
}
