package controllers

import (
	"net/http"
	"strconv"

	apperrors "canteen-backend/common/errors"
	"canteen-backend/repository"
	"canteen-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductController struct {
	productService services.ProductService
}

func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// GetProducts returns the catalog, filtered by search term and category.
func (pc *ProductController) GetProducts(c *gin.Context) {
	limit, offset := parseListParams(c, 100)

	params := repository.ListProductsParams{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	}

	products, total, appErr := pc.productService.ListProducts(c.Request.Context(), params)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"meta": gin.H{
			"limit":  limit,
			"offset": offset,
			"total":  total,
		},
	})
}

// GetProductByID returns a single catalog entry.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrInvalidID)
		return
	}

	product, appErr := pc.productService.GetProduct(c.Request.Context(), id)
	if appErr != nil {
		apperrors.Respond(c, appErr)
		return
	}

	c.JSON(http.StatusOK, product)
}

// parseListParams extracts limit/offset query params, clamping limit to 100.
func parseListParams(c *gin.Context, defaultLimit int) (int, int) {
	const maxLimit = 100

	limit := defaultLimit
	offset := 0

	if l, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && l > 0 {
		limit = l
		if limit > maxLimit {
			limit = maxLimit
		}
	}
	if o, err := strconv.Atoi(c.DefaultQuery("offset", "")); err == nil && o > 0 {
		offset = o
	}

	return limit, offset
}
