// internal/client/cart/sync.go
package cart

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/client/gateway"
)

// Gateway is the part of the REST gateway the synchronizer needs
type Gateway interface {
	GetCart(ctx context.Context) (*gateway.Cart, error)
	AddToCart(ctx context.Context, productID string, quantity int) (*gateway.CartUpdate, error)
	UpdateCartItem(ctx context.Context, productID string, quantity int) (*gateway.CartUpdate, error)
	RemoveFromCart(ctx context.Context, productID string) (*gateway.CartUpdate, error)
	ClearCart(ctx context.Context) error
}

// Synchronizer keeps a Model in step with the server cart. Every mutation is
// sent to the gateway first and applied locally only once it succeeded.
type Synchronizer struct {
	model   *Model
	gateway Gateway
	logger  *logrus.Logger
}

// NewSynchronizer creates a synchronizer for model
func NewSynchronizer(model *Model, gw Gateway, logger *logrus.Logger) *Synchronizer {
	return &Synchronizer{
		model:   model,
		gateway: gw,
		logger:  logger,
	}
}

// Load replaces the local state with the authoritative server cart
func (s *Synchronizer) Load(ctx context.Context) error {
	cart, err := s.gateway.GetCart(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Error loading cart")
		return fmt.Errorf("failed to load cart: %w", err)
	}

	s.model.SetAll(cart.Items)
	return nil
}

// Add adds quantity of productID to the cart
func (s *Synchronizer) Add(ctx context.Context, productID string, quantity int) error {
	update, err := s.gateway.AddToCart(ctx, productID, quantity)
	if err != nil {
		s.logFailure(err, "Error adding to cart", productID)
		return fmt.Errorf("failed to add to cart: %w", err)
	}

	s.model.Add(productID, quantity)
	s.reconcile(update)
	return nil
}

// Update sets the quantity of productID; zero or less removes it
func (s *Synchronizer) Update(ctx context.Context, productID string, quantity int) error {
	update, err := s.gateway.UpdateCartItem(ctx, productID, quantity)
	if err != nil {
		s.logFailure(err, "Error updating quantity", productID)
		return fmt.Errorf("failed to update quantity: %w", err)
	}

	s.model.SetQuantity(productID, quantity)
	s.reconcile(update)
	return nil
}

// Remove removes productID from the cart
func (s *Synchronizer) Remove(ctx context.Context, productID string) error {
	update, err := s.gateway.RemoveFromCart(ctx, productID)
	if err != nil {
		s.logFailure(err, "Error removing item", productID)
		return fmt.Errorf("failed to remove item: %w", err)
	}

	s.model.Remove(productID)
	s.reconcile(update)
	return nil
}

// Clear empties both the server and the local cart
func (s *Synchronizer) Clear(ctx context.Context) error {
	if err := s.gateway.ClearCart(ctx); err != nil {
		s.logger.WithError(err).Error("Error clearing cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.model.Clear()
	return nil
}

// reconcile adopts the server's item list when the gateway returned one
func (s *Synchronizer) reconcile(update *gateway.CartUpdate) {
	if update == nil || update.Items == nil {
		return
	}
	s.model.SetAll(update.Items)
}

func (s *Synchronizer) logFailure(err error, msg, productID string) {
	s.logger.WithError(err).WithField("product_id", productID).Error(msg)
}
