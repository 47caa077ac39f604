package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	apperrors "canteen-backend/common/errors"
	"canteen-backend/middleware"
	"canteen-backend/models"
	"canteen-backend/repository"
	"canteen-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testAuth injects a verified identity the way the real auth middleware does,
// skipping token parsing.
func testAuth(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, userID)
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func assertErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d (body %s)", status, w.Code, w.Body.String())
	}
	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, w, &body)
	if body.Code != code {
		t.Fatalf("expected error code %s, got %s", code, body.Code)
	}
}

// --- fake services ---

type fakeCartService struct {
	items     []models.CartItem
	addErr    *apperrors.Error
	updateErr *apperrors.Error
	removeErr *apperrors.Error

	lastUserID    uuid.UUID
	lastProductID uuid.UUID
	lastItemID    uuid.UUID
	lastQuantity  int
}

func (f *fakeCartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, *apperrors.Error) {
	f.lastUserID = userID
	return f.items, nil
}

func (f *fakeCartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartItem, *apperrors.Error) {
	f.lastUserID, f.lastProductID, f.lastQuantity = userID, productID, quantity
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &models.CartItem{ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: quantity}, nil
}

func (f *fakeCartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartItem, *apperrors.Error) {
	f.lastUserID, f.lastItemID, f.lastQuantity = userID, itemID, quantity
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.CartItem{ID: itemID, UserID: userID, Quantity: quantity}, nil
}

func (f *fakeCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *apperrors.Error {
	f.lastUserID, f.lastItemID = userID, itemID
	return f.removeErr
}

type fakeOrderService struct {
	checkoutResult *services.CheckoutResult
	checkoutErr    *apperrors.Error
	order          *services.OrderView
	orderErr       *apperrors.Error
	list           *services.OrderListResponse
	adminList      *services.AdminOrderListResponse
	setStatusErr   *apperrors.Error

	lastUserID        uuid.UUID
	lastOrderID       uuid.UUID
	lastPayment       string
	lastIdempotency   string
	lastStatus        string
	lastLimit         int
	lastOffset        int
	lastStatusFilter  string
	setStatusOrderIDs []uuid.UUID
}

func (f *fakeOrderService) Checkout(ctx context.Context, userID uuid.UUID, paymentMethod, idempotencyKey string) (*services.CheckoutResult, *apperrors.Error) {
	f.lastUserID, f.lastPayment, f.lastIdempotency = userID, paymentMethod, idempotencyKey
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return f.checkoutResult, nil
}

func (f *fakeOrderService) GetUserOrders(ctx context.Context, userID uuid.UUID, status string, limit, offset int) (*services.OrderListResponse, *apperrors.Error) {
	f.lastUserID, f.lastStatusFilter, f.lastLimit, f.lastOffset = userID, status, limit, offset
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return f.list, nil
}

func (f *fakeOrderService) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*services.OrderView, *apperrors.Error) {
	f.lastUserID, f.lastOrderID = userID, orderID
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return f.order, nil
}

func (f *fakeOrderService) GetAllOrders(ctx context.Context, status string, limit, offset int) (*services.AdminOrderListResponse, *apperrors.Error) {
	f.lastStatusFilter, f.lastLimit, f.lastOffset = status, limit, offset
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return f.adminList, nil
}

func (f *fakeOrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status string) (*services.OrderView, *apperrors.Error) {
	f.lastOrderID, f.lastStatus = orderID, status
	f.setStatusOrderIDs = append(f.setStatusOrderIDs, orderID)
	if f.setStatusErr != nil {
		return nil, f.setStatusErr
	}
	return f.order, nil
}

type fakeProductService struct {
	products []models.Product
	total    int64
	product  *models.Product
	err      *apperrors.Error

	lastParams repository.ListProductsParams
}

func (f *fakeProductService) ListProducts(ctx context.Context, params repository.ListProductsParams) ([]models.Product, int64, *apperrors.Error) {
	f.lastParams = params
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.products, f.total, nil
}

func (f *fakeProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *apperrors.Error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

var _ services.CartService = (*fakeCartService)(nil)
var _ services.OrderService = (*fakeOrderService)(nil)
var _ services.ProductService = (*fakeProductService)(nil)

func sampleOrderView(userID uuid.UUID, total int) services.OrderView {
	o := models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Total:  total,
		Status: models.StatusPending,
	}
	return services.OrderView{Order: o, CurrentLocation: o.Status.CurrentLocation()}
}
