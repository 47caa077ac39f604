package controllers

import (
	"net/http"

	apperrors "canteen-backend/common/errors"
	"canteen-backend/middleware"
	"canteen-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type updateStatusRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// Checkout converts the authenticated user's cart into an order.
func (oc *OrderController) Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	// The body is optional; an empty one means default payment method.
	var req checkoutRequest
	_ = c.ShouldBindJSON(&req)

	idempotencyKey := c.GetHeader("X-Idempotency-Key")

	result, appErr := oc.orderService.Checkout(c.Request.Context(), userID, req.PaymentMethod, idempotencyKey)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, result.Order)
}

// GetOrders returns the authenticated user's orders, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	limit, offset := parseListParams(c, 50)

	result, appErr := oc.orderService.GetUserOrders(c.Request.Context(), userID, c.Query("status"), limit, offset)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetOrderByID returns one of the authenticated user's orders with items.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidID.WithMessage("Valid order ID is required"))
		return
	}

	order, appErr := oc.orderService.GetOrderByID(c.Request.Context(), userID, orderID)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, order)
}

// GetAllOrders returns orders across all users, enriched with owner display
// data. Reachable only through the admin route group.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	limit, offset := parseListParams(c, 50)

	result, appErr := oc.orderService.GetAllOrders(c.Request.Context(), c.Query("status"), limit, offset)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateOrderStatus transitions an order's lifecycle state. Reachable only
// through the admin route group.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("order_id and status are required"))
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidID.WithMessage("Valid order_id is required"))
		return
	}

	order, appErr := oc.orderService.SetStatus(c.Request.Context(), orderID, req.Status)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}
