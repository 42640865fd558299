// internal/client/session/session.go
package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/client/cart"
	"github.com/your-org/storefront/internal/client/checkout"
	"github.com/your-org/storefront/internal/client/gateway"
	"github.com/your-org/storefront/internal/config"
)

// Gateway is everything a session needs from the REST gateway
type Gateway interface {
	cart.Gateway
	checkout.ProductFetcher
	checkout.OrderPlacer
}

// Session owns the single cart model shared by every screen of the app
// for the lifetime of one shopper visit.
type Session struct {
	model      *cart.Model
	sync       *cart.Synchronizer
	assembler  *checkout.Assembler
	gateway    Gateway
	serverCart checkout.ServerCartPolicy
	logger     *logrus.Logger
}

// New wires a session from configuration
func New(cfg *config.Config, gw Gateway, logger *logrus.Logger) (*Session, error) {
	missing, err := checkout.ParseMissingProductPolicy(cfg.Checkout.MissingProductPolicy)
	if err != nil {
		return nil, err
	}
	serverCart, err := checkout.ParseServerCartPolicy(cfg.Checkout.ServerCartPolicy)
	if err != nil {
		return nil, err
	}

	model := cart.NewModel()
	return &Session{
		model:      model,
		sync:       cart.NewSynchronizer(model, gw, logger),
		assembler:  checkout.NewAssembler(gw, missing, cfg.Checkout.MaxConcurrentFetches, logger),
		gateway:    gw,
		serverCart: serverCart,
		logger:     logger,
	}, nil
}

// Open loads the server cart and returns a context carrying the model
func (s *Session) Open(ctx context.Context) (context.Context, error) {
	if err := s.sync.Load(ctx); err != nil {
		return ctx, fmt.Errorf("failed to open session: %w", err)
	}

	s.logger.WithField("items", s.model.Count()).Debug("Session opened")
	return cart.WithModel(ctx, s.model), nil
}

// Close drops local cart state
func (s *Session) Close() {
	s.model.Clear()
}

// Model returns the shared cart model
func (s *Session) Model() *cart.Model {
	return s.model
}

// Cart returns the synchronizer used for gateway-backed cart edits
func (s *Session) Cart() *cart.Synchronizer {
	return s.sync
}

// CartView assembles the current cart into displayable line items
func (s *Session) CartView(ctx context.Context) (*checkout.Assembly, error) {
	return s.assembler.Assemble(ctx, s.model.Entries())
}

// NewCheckout starts a checkout against the shared model
func (s *Session) NewCheckout() *checkout.Checkout {
	return checkout.New(s.model, s.gateway, s.serverCart, s.logger)
}

var _ Gateway = (*gateway.Client)(nil)
