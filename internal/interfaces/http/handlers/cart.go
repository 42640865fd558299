// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CartService is the cart behavior the cart handler needs
type CartService interface {
	GetCart(ctx context.Context, userID string) (*cart.Cart, error)
	AddToCart(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error)
	UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error)
	RemoveFromCart(ctx context.Context, userID, productID string) error
	ClearCart(ctx context.Context, userID string) error
}

// CartItemRequest is the body of cart add and update calls
type CartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

// quantity returns the requested quantity, defaulting to 1
func (r CartItemRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService CartService
	logger      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userCart, err := h.cartService.GetCart(c.Request.Context(), middleware.GetUserIDFromContext(c))
	if err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to retrieve cart", err)
		return
	}

	c.JSON(http.StatusOK, userCart)
}

// AddToCart handles POST /cart/add
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid cart item")
		return
	}

	userCart, err := h.cartService.AddToCart(c.Request.Context(), middleware.GetUserIDFromContext(c), req.ProductID, req.quantity())
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			respondError(c, http.StatusUnprocessableEntity, "Quantity must be at least 1")
			return
		}
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to add to cart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Added to cart",
		"items":   userCart.Items,
	})
}

// UpdateCartItem handles POST /cart/update
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid cart item")
		return
	}

	userCart, err := h.cartService.UpdateCartItem(c.Request.Context(), middleware.GetUserIDFromContext(c), req.ProductID, req.quantity())
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			respondError(c, http.StatusNotFound, "Cart not found")
			return
		}
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to update cart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"items":   userCart.Items,
	})
}

// RemoveFromCart handles DELETE /cart/remove/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	if err := h.cartService.RemoveFromCart(c.Request.Context(), middleware.GetUserIDFromContext(c), c.Param("productId")); err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to remove from cart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from cart"})
}

// ClearCart handles DELETE /cart/clear
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), middleware.GetUserIDFromContext(c)); err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to clear cart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
