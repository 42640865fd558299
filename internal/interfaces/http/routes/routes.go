// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
)

// Handlers groups every API handler
type Handlers struct {
	Product *handlers.ProductHandler
	Review  *handlers.ReviewHandler
	Cart    *handlers.CartHandler
	Order   *handlers.OrderHandler
	Auth    *handlers.AuthHandler
}

// SetupRoutes registers the whole API on rg
func SetupRoutes(rg *gin.RouterGroup, h *Handlers) {
	SetupAuthRoutes(rg, h.Auth)
	SetupProductRoutes(rg, h.Product, h.Review)
	SetupCartRoutes(rg, h.Cart)
	SetupOrderRoutes(rg, h.Order)
}

// SetupAuthRoutes sets up guest authentication routes
func SetupAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/guest", authHandler.GuestToken)
	}
}

// SetupProductRoutes sets up catalog and review routes
func SetupProductRoutes(rg *gin.RouterGroup, productHandler *handlers.ProductHandler, reviewHandler *handlers.ReviewHandler) {
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	rg.GET("/categories", productHandler.GetCategories)
	rg.POST("/init-data", productHandler.InitData)

	reviews := rg.Group("/reviews")
	{
		reviews.GET("/:productId", reviewHandler.GetReviews)
		reviews.POST("", reviewHandler.CreateReview)
	}
}

// SetupCartRoutes sets up cart routes
func SetupCartRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler) {
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/add", cartHandler.AddToCart)
		cart.POST("/update", cartHandler.UpdateCartItem)
		cart.DELETE("/remove/:productId", cartHandler.RemoveFromCart)
		cart.DELETE("/clear", cartHandler.ClearCart)
	}
}

// SetupOrderRoutes sets up order routes
func SetupOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orders := rg.Group("/orders")
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", orderHandler.GetInvoice)
	}
}
