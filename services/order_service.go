package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	apperrors "canteen-backend/common/errors"
	"canteen-backend/kafka"
	"canteen-backend/models"
	awspkg "canteen-backend/pkg/aws"
	"canteen-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPaymentMethod = "cash"
	idempotencyTTL       = 24 * time.Hour
)

// OrderView is an order as rendered to clients, with the tracking location
// derived from the status.
type OrderView struct {
	models.Order
	CurrentLocation string `json:"current_location"`
}

// AdminOrderView additionally carries the owning user's display data.
type AdminOrderView struct {
	models.AdminOrder
	CurrentLocation string `json:"current_location"`
}

type MetaData struct {
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"has_more"`
}

type OrderListResponse struct {
	Orders []OrderView `json:"orders"`
	Meta   MetaData    `json:"meta"`
}

type AdminOrderListResponse struct {
	Orders []AdminOrderView `json:"orders"`
	Meta   MetaData         `json:"meta"`
}

// CheckoutResult reports the committed order and whether it was replayed
// from an idempotency key instead of newly created.
type CheckoutResult struct {
	Order    OrderView
	Replayed bool
}

// OrderService owns the checkout transaction, the order lifecycle and the
// order listings.
type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, paymentMethod, idempotencyKey string) (*CheckoutResult, *apperrors.Error)
	GetUserOrders(ctx context.Context, userID uuid.UUID, status string, limit, offset int) (*OrderListResponse, *apperrors.Error)
	GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, *apperrors.Error)
	GetAllOrders(ctx context.Context, status string, limit, offset int) (*AdminOrderListResponse, *apperrors.Error)
	SetStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderView, *apperrors.Error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	idemStore repository.IdempotencyStore
	producer  kafka.ProducerAPI
	snsClient awspkg.SNSPublisher
	snsTopic  string
	strict    bool
}

// NewOrderService wires the order repository with the optional idempotency
// store and event publishers. producer, idemStore and snsClient may be nil.
func NewOrderService(
	orderRepo repository.OrderRepository,
	idemStore repository.IdempotencyStore,
	producer kafka.ProducerAPI,
	snsClient awspkg.SNSPublisher,
	snsTopic string,
	strictStatusFlow bool,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		idemStore: idemStore,
		producer:  producer,
		snsClient: snsClient,
		snsTopic:  snsTopic,
		strict:    strictStatusFlow,
	}
}

func newOrderView(o models.Order) OrderView {
	return OrderView{Order: o, CurrentLocation: o.Status.CurrentLocation()}
}

// Checkout converts the user's cart into an order. The multi-step write is a
// single transaction in the repository; this layer adds idempotency-key
// replay and best-effort event publication.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, paymentMethod, idempotencyKey string) (*CheckoutResult, *apperrors.Error) {
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	if idempotencyKey != "" && s.idemStore != nil {
		if orderIDStr, err := s.idemStore.Get(ctx, idempotencyKey); err != nil {
			zap.L().Warn("Idempotency lookup failed, proceeding", zap.Error(err))
		} else if orderIDStr != "" {
			orderID, parseErr := uuid.Parse(orderIDStr)
			if parseErr != nil {
				return nil, apperrors.ErrConflict.WithMessage("Idempotency key maps to an invalid order")
			}
			existing, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
			if err != nil {
				// The key was used by a different user or the order vanished.
				return nil, apperrors.ErrConflict.WithMessage("Idempotency key already used")
			}
			return &CheckoutResult{Order: newOrderView(*existing), Replayed: true}, nil
		}
	}

	order, err := s.orderRepo.Checkout(ctx, userID, paymentMethod)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyCart) {
			return nil, apperrors.ErrCartEmpty
		}
		zap.L().Error("Checkout failed", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	if idempotencyKey != "" && s.idemStore != nil {
		if err := s.idemStore.Set(ctx, idempotencyKey, order.ID.String(), idempotencyTTL); err != nil {
			zap.L().Warn("Failed to record idempotency key", zap.Error(err))
		}
	}

	s.publishEvent(ctx, models.OrderEvent{
		Event:     models.EventOrderCreated,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total,
		Timestamp: time.Now(),
	})

	zap.L().Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("total", order.Total))

	return &CheckoutResult{Order: newOrderView(*order)}, nil
}

// GetUserOrders retrieves the user's own orders, newest first.
func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID, status string, limit, offset int) (*OrderListResponse, *apperrors.Error) {
	params, appErr := buildListParams(status, limit, offset)
	if appErr != nil {
		return nil, appErr
	}

	orders, total, err := s.orderRepo.FindByUserID(ctx, userID, params)
	if err != nil {
		zap.L().Error("Failed to fetch orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}

	return &OrderListResponse{
		Orders: views,
		Meta:   buildMeta(params, total),
	}, nil
}

// GetOrderByID retrieves one of the user's own orders. Orders owned by other
// users are reported as not found.
func (s *orderService) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, *apperrors.Error) {
	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		zap.L().Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}
	view := newOrderView(*order)
	return &view, nil
}

// GetAllOrders retrieves orders across all users with owner display data.
// Callers must already hold the elevated capability.
func (s *orderService) GetAllOrders(ctx context.Context, status string, limit, offset int) (*AdminOrderListResponse, *apperrors.Error) {
	params, appErr := buildListParams(status, limit, offset)
	if appErr != nil {
		return nil, appErr
	}

	orders, total, err := s.orderRepo.FindAll(ctx, params)
	if err != nil {
		zap.L().Error("Failed to fetch all orders", zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	views := make([]AdminOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, AdminOrderView{
			AdminOrder:      o,
			CurrentLocation: o.Status.CurrentLocation(),
		})
	}

	return &AdminOrderListResponse{
		Orders: views,
		Meta:   buildMeta(params, total),
	}, nil
}

// SetStatus transitions an order's lifecycle state. Callers must already
// hold the elevated capability.
func (s *orderService) SetStatus(ctx context.Context, orderID uuid.UUID, status string) (*OrderView, *apperrors.Error) {
	newStatus, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, apperrors.ErrInvalidStatus
	}

	order, oldStatus, err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus, s.strict)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		if errors.Is(err, repository.ErrInvalidTransition) {
			return nil, apperrors.ErrInvalidTransition.WithMessage(
				"Cannot transition order from " + string(oldStatus) + " to " + status)
		}
		zap.L().Error("Failed to update order status", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	s.publishEvent(ctx, models.OrderEvent{
		Event:     models.EventOrderStatusChanged,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		OldStatus: oldStatus,
		Timestamp: time.Now(),
	})

	zap.L().Info("Order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("from", string(oldStatus)),
		zap.String("to", string(order.Status)))

	view := newOrderView(*order)
	return &view, nil
}

// publishEvent sends the event to Kafka and SNS, best-effort. Failures are
// logged and never fail the request; delivery is a downstream concern.
func (s *orderService) publishEvent(ctx context.Context, evt models.OrderEvent) {
	if s.producer != nil {
		_ = s.producer.SendOrderEvent(evt)
	}

	if s.snsClient != nil && s.snsTopic != "" {
		data, err := json.Marshal(evt)
		if err != nil {
			zap.L().Warn("Failed to marshal order event for SNS", zap.Error(err))
			return
		}
		if err := s.snsClient.Publish(ctx, s.snsTopic, data); err != nil {
			zap.L().Warn("SNS publish failed", zap.String("event", evt.Event), zap.Error(err))
		}
	}
}

func buildListParams(status string, limit, offset int) (repository.ListOrdersParams, *apperrors.Error) {
	params := repository.ListOrdersParams{Limit: limit, Offset: offset}
	if status != "" {
		st, ok := models.ParseOrderStatus(status)
		if !ok {
			return params, apperrors.ErrInvalidStatus
		}
		params.Status = st
	}
	return params, nil
}

func buildMeta(params repository.ListOrdersParams, total int64) MetaData {
	return MetaData{
		Limit:   params.Limit,
		Offset:  params.Offset,
		Total:   total,
		HasMore: total > int64(params.Offset+params.Limit),
	}
}
