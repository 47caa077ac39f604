package controllers

import (
	"net/http"
	"testing"

	apperrors "canteen-backend/common/errors"
	"canteen-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newProductRouter(svc *fakeProductService) *gin.Engine {
	r := gin.New()
	pc := NewProductController(svc)
	r.GET("/products", pc.GetProducts)
	r.GET("/products/:id", pc.GetProductByID)
	return r
}

func TestGetProducts(t *testing.T) {
	svc := &fakeProductService{
		products: []models.Product{
			{ID: uuid.New(), Name: "Idli", Price: 30, Category: "breakfast"},
			{ID: uuid.New(), Name: "Masala Tea", Price: 20, Category: "beverages"},
		},
		total: 2,
	}
	r := newProductRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/products?search=idli&category=breakfast", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if svc.lastParams.Search != "idli" || svc.lastParams.Category != "breakfast" {
		t.Fatalf("filters not forwarded: %+v", svc.lastParams)
	}

	var body struct {
		Products []models.Product `json:"products"`
		Meta     struct {
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	decodeBody(t, w, &body)
	if len(body.Products) != 2 || body.Meta.Total != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGetProductsClampsLimit(t *testing.T) {
	svc := &fakeProductService{}
	r := newProductRouter(svc)

	doJSON(t, r, http.MethodGet, "/products?limit=9999", nil, nil)
	if svc.lastParams.Limit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", svc.lastParams.Limit)
	}
}

func TestGetProductsIgnoresBadPagination(t *testing.T) {
	svc := &fakeProductService{}
	r := newProductRouter(svc)

	doJSON(t, r, http.MethodGet, "/products?limit=abc&offset=-3", nil, nil)
	if svc.lastParams.Limit != 100 || svc.lastParams.Offset != 0 {
		t.Fatalf("expected defaults for bad pagination, got %+v", svc.lastParams)
	}
}

func TestGetProductByID(t *testing.T) {
	id := uuid.New()
	svc := &fakeProductService{product: &models.Product{ID: id, Name: "Samosa", Price: 15}}
	r := newProductRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/products/"+id.String(), nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var p models.Product
	decodeBody(t, w, &p)
	if p.Name != "Samosa" || p.Price != 15 {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestGetProductByIDMalformed(t *testing.T) {
	r := newProductRouter(&fakeProductService{})

	w := doJSON(t, r, http.MethodGet, "/products/banana", nil, nil)
	assertErrorCode(t, w, http.StatusBadRequest, "INVALID_ID")
}

func TestGetProductByIDNotFound(t *testing.T) {
	svc := &fakeProductService{err: apperrors.ErrProductNotFound}
	r := newProductRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/products/"+uuid.New().String(), nil, nil)
	assertErrorCode(t, w, http.StatusNotFound, "PRODUCT_NOT_FOUND")
}
