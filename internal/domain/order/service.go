// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/infrastructure/messaging"
	"gorm.io/gorm"
)

// CartClearer empties a user's server cart
type CartClearer interface {
	ClearCart(ctx context.Context, userID string) error
}

// CreateOrderRequest is the body of a new order
type CreateOrderRequest struct {
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// PlacedEvent is published once an order is stored
type PlacedEvent struct {
	OrderID   string          `json:"orderId"`
	UserID    string          `json:"userId"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	PlacedAt  time.Time       `json:"placedAt"`
}

// Service handles order business logic
type Service struct {
	db        *gorm.DB
	carts     CartClearer
	publisher messaging.Publisher
	topic     string
	logger    *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, carts CartClearer, publisher messaging.Publisher, logger *logrus.Logger) *Service {
	return &Service{
		db:        db,
		carts:     carts,
		publisher: publisher,
		topic:     cfg.Kafka.OrderTopic,
		logger:    logger,
	}
}

// CreateOrder stores a confirmed order, empties the user's cart and
// publishes an order-placed event. The stored total is recomputed from
// the submitted items; the client's figure is only compared against it.
func (s *Service) CreateOrder(ctx context.Context, userID string, req *CreateOrderRequest) (*Order, error) {
	order, err := s.buildOrder(userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger := s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
	})

	if err := s.carts.ClearCart(ctx, userID); err != nil {
		// the order stands even if the cart could not be emptied
		logger.WithError(err).Warn("Failed to clear cart after order creation")
	}

	event := PlacedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		Total:     order.Total,
		ItemCount: order.ItemCount(),
		PlacedAt:  order.CreatedAt,
	}
	if err := s.publisher.PublishEvent(ctx, s.topic, order.ID, event); err != nil {
		logger.WithError(err).Warn("Failed to publish order placed event")
	}

	logger.WithField("total", order.Total.StringFixed(2)).Info("Order created")
	return order, nil
}

// buildOrder validates the request and prepares the order row
func (s *Service) buildOrder(userID string, req *CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("%w: missing product id", ErrInvalidItem)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity %d for product %s", ErrInvalidItem, item.Quantity, item.ProductID)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("%w: negative price for product %s", ErrInvalidItem, item.ProductID)
		}
	}

	items := make([]OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		}
	}

	total := CalculateTotal(items)
	if !req.Total.Round(2).Equal(total) {
		s.logger.WithFields(logrus.Fields{
			"user_id":         userID,
			"submitted_total": req.Total.String(),
			"computed_total":  total.StringFixed(2),
		}).Warn("Submitted order total does not match item prices, using computed total")
	}

	return &Order{
		UserID:          userID,
		Items:           items,
		Total:           total,
		Status:          OrderStatusConfirmed,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// GetOrders returns the user's orders, newest first
func (s *Service) GetOrders(ctx context.Context, userID string) ([]Order, error) {
	orders := []Order{}
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return orders, nil
}

// GetOrder returns one of the user's orders
func (s *Service) GetOrder(ctx context.Context, userID, orderID string) (*Order, error) {
	var order Order
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	return &order, nil
}
