// internal/client/checkout/submission.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/client/cart"
	"github.com/your-org/storefront/internal/client/gateway"
	"github.com/your-org/storefront/internal/config"
)

// State is the checkout form state
type State int

const (
	Editing State = iota
	Submitting
	Succeeded
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ServerCartPolicy decides whether the client clears the server cart after
// an order was accepted
type ServerCartPolicy int

const (
	// AssumeServerCleared trusts order creation to empty the server cart
	AssumeServerCleared ServerCartPolicy = iota
	// ClearServerCart issues an explicit cart clear after success
	ClearServerCart
)

// ParseServerCartPolicy maps a configuration value to a policy
func ParseServerCartPolicy(s string) (ServerCartPolicy, error) {
	switch s {
	case config.ServerCartAssume, "":
		return AssumeServerCleared, nil
	case config.ServerCartExplicit:
		return ClearServerCart, nil
	default:
		return AssumeServerCleared, fmt.Errorf("unknown server-cart policy %q", s)
	}
}

var (
	// ErrSubmitting is returned when a submission is already in flight
	ErrSubmitting = errors.New("order submission already in progress")
	// ErrAlreadyPlaced is returned when the checkout already produced an order
	ErrAlreadyPlaced = errors.New("order already placed")
)

// OrderPlacer is the part of the gateway checkout needs
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*gateway.Order, error)
	ClearCart(ctx context.Context) error
}

// Checkout drives one order placement: Editing -> Submitting -> Succeeded,
// or back to Editing on failure with the shipping fields kept.
type Checkout struct {
	mu      sync.Mutex
	state   State
	address gateway.ShippingAddress
	lastErr error
	order   *gateway.Order

	model      *cart.Model
	placer     OrderPlacer
	serverCart ServerCartPolicy
	logger     *logrus.Logger
}

// New creates a checkout that clears model once an order is placed
func New(model *cart.Model, placer OrderPlacer, policy ServerCartPolicy, logger *logrus.Logger) *Checkout {
	return &Checkout{
		state:      Editing,
		model:      model,
		placer:     placer,
		serverCart: policy,
		logger:     logger,
	}
}

// State returns the current state
func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetAddress replaces the shipping fields. Only allowed while editing.
func (c *Checkout) SetAddress(addr gateway.ShippingAddress) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}
	c.address = addr
	return nil
}

// Address returns the shipping fields as entered
func (c *Checkout) Address() gateway.ShippingAddress {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.address
}

// Err returns the error of the last failed submission, if any
func (c *Checkout) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Order returns the placed order once the checkout succeeded
func (c *Checkout) Order() *gateway.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

// Submit validates the shipping fields and items, places the order and, on
// success, clears the local cart. Validation failures never reach the gateway.
func (c *Checkout) Submit(ctx context.Context, items []LineItem) (*gateway.Order, error) {
	c.mu.Lock()
	if err := c.editableLocked(); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	draft, err := NewDraft(items, c.address)
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		return nil, err
	}

	c.state = Submitting
	c.lastErr = nil
	c.mu.Unlock()

	order, err := c.placer.CreateOrder(ctx, draft.Request())

	c.mu.Lock()
	if err != nil {
		c.logger.WithError(err).Error("Error placing order")
		c.state = Editing
		c.lastErr = fmt.Errorf("failed to place order: %w", err)
		c.mu.Unlock()
		return nil, c.lastErr
	}

	c.model.Clear()
	c.state = Succeeded
	c.order = order
	clearServer := c.serverCart == ClearServerCart
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    draft.Total.StringFixed(2),
		"items":    len(draft.Items),
	}).Info("Order placed")

	// the order stands even if the server cart could not be emptied
	if clearServer {
		if err := c.placer.ClearCart(ctx); err != nil {
			c.logger.WithError(err).WithField("order_id", order.ID).
				Warn("Order placed but the server cart could not be cleared")
		}
	}

	return order, nil
}

func (c *Checkout) editableLocked() error {
	switch c.state {
	case Submitting:
		return ErrSubmitting
	case Succeeded:
		return ErrAlreadyPlaced
	}
	return nil
}
