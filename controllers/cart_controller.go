package controllers

import (
	"net/http"

	apperrors "canteen-backend/common/errors"
	"canteen-backend/middleware"
	"canteen-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartController struct {
	cartService services.CartService
}

func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the current cart for the authenticated user.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	items, appErr := cc.cartService.GetCart(c.Request.Context(), userID)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddItem adds a product to the cart, merging quantities on repeat adds.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.WithMessage("product_id and quantity are required"))
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidID.WithMessage("Valid product_id is required"))
		return
	}
	if req.Quantity <= 0 {
		apperrors.Respond(c, apperrors.ErrInvalidQuantity)
		return
	}

	item, appErr := cc.cartService.AddItem(c.Request.Context(), userID, productID, req.Quantity)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem replaces the quantity of a cart line owned by the user.
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidID)
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidQuantity)
		return
	}
	if req.Quantity <= 0 {
		apperrors.Respond(c, apperrors.ErrInvalidQuantity)
		return
	}

	item, appErr := cc.cartService.UpdateItem(c.Request.Context(), userID, itemID, req.Quantity)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveItem deletes a cart line owned by the user.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidID)
		return
	}

	if appErr := cc.cartService.RemoveItem(c.Request.Context(), userID, itemID); appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}
