package routes

import (
	"canteen-backend/controllers"
	"canteen-backend/middleware"

	"github.com/gin-gonic/gin"
)

// RouterConfig carries the auth settings routes need.
type RouterConfig struct {
	JWTSecret    string
	AdminAnyUser bool
}

// RegisterRoutes wires all application routes. The catalog is public; cart
// and order routes require an authenticated identity; admin routes
// additionally require the elevated capability.
func RegisterRoutes(
	r *gin.Engine,
	cfg RouterConfig,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	orderController *controllers.OrderController,
) {
	products := r.Group("/products")
	{
		products.GET("", productController.GetProducts)
		products.GET("/:id", productController.GetProductByID)
	}

	auth := middleware.AuthMiddleware(cfg.JWTSecret)

	cart := r.Group("/cart")
	cart.Use(auth)
	{
		cart.GET("", cartController.GetCart)
		cart.POST("", cartController.AddItem)
		cart.PUT("/:id", cartController.UpdateItem)
		cart.DELETE("/:id", cartController.RemoveItem)
	}

	orders := r.Group("/orders")
	orders.Use(auth)
	{
		orders.POST("", orderController.Checkout)
		orders.GET("", orderController.GetOrders)
		orders.GET("/:id", orderController.GetOrderByID)
	}

	admin := r.Group("/admin")
	admin.Use(auth, middleware.AdminOnly(cfg.AdminAnyUser))
	{
		admin.GET("/orders", orderController.GetAllOrders)
		admin.PUT("/orders", orderController.UpdateOrderStatus)
	}
}
