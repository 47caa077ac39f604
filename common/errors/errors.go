package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with a stable machine-readable code.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the error as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// New creates a new Error
func New(status int, code, message string) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// WithMessage returns a copy of the error with a different human message.
func (e *Error) WithMessage(message string) *Error {
	clone := *e
	clone.Message = message
	return &clone
}

// Wrap returns a copy of the error carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// Common error types
var (
	ErrUnauthorized   = New(http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
	ErrForbidden      = New(http.StatusForbidden, "FORBIDDEN", "Forbidden")
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL", "Internal server error")
)

// Validation error types
var (
	ErrValidation      = New(http.StatusBadRequest, "VALIDATION_ERROR", "Validation error")
	ErrInvalidID       = New(http.StatusBadRequest, "INVALID_ID", "Valid ID is required")
	ErrInvalidQuantity = New(http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be a positive integer")
	ErrInvalidStatus   = New(http.StatusBadRequest, "INVALID_STATUS", "Invalid order status")
)

// Not-found error types. Ownership failures use the same codes as absence so
// the existence of other users' data never leaks.
var (
	ErrProductNotFound  = New(http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	ErrCartItemNotFound = New(http.StatusNotFound, "CART_ITEM_NOT_FOUND", "Cart item not found")
	ErrOrderNotFound    = New(http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
)

// Business logic error types
var (
	ErrCartEmpty         = New(http.StatusBadRequest, "CART_EMPTY", "Cart is empty")
	ErrConflict          = New(http.StatusConflict, "CONFLICT", "Conflicting request")
	ErrInvalidTransition = New(http.StatusConflict, "INVALID_TRANSITION", "Status transition not allowed")
)

// From converts any error into an *Error, defaulting to ErrInternalServer.
func From(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return ErrInternalServer.Wrap(err)
}

// Respond writes the error as a JSON response on the gin context.
func Respond(c *gin.Context, err error) {
	appErr := From(err)
	c.JSON(appErr.Status, appErr)
}

// ErrorMiddleware converts errors attached to the gin context into JSON
// responses.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			appErr := From(c.Errors.Last().Err)
			c.JSON(appErr.Status, appErr)
			c.Abort()
		}
	}
}
