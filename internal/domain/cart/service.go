// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Store persists carts by user id
type Store interface {
	// Load returns the stored cart and whether one existed
	Load(ctx context.Context, userID string) (*Cart, bool, error)
	Save(ctx context.Context, cart *Cart) error
}

// RedisStore keeps each cart as a JSON document under cart:user:<id>
type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisStore creates a Redis-backed cart store. Carts expire ttl after
// their last write.
func NewRedisStore(redisClient *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// Load implements Store
func (s *RedisStore) Load(ctx context.Context, userID string) (*Cart, bool, error) {
	cartData, err := s.redisClient.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return NewCart(userID), false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(cartData), &cart); err != nil {
		return nil, false, fmt.Errorf("failed to decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []Item{}
	}

	return &cart, true, nil
}

// Save implements Store
func (s *RedisStore) Save(ctx context.Context, cart *Cart) error {
	cartData, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return s.redisClient.Set(ctx, cartKey(cart.UserID), cartData, s.ttl).Err()
}

// Service handles cart business logic
type Service struct {
	store  Store
	logger *logrus.Logger
}

// NewService creates a new cart service
func NewService(store Store, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *Service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	cart, exists, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := s.store.Save(ctx, cart); err != nil {
			return nil, fmt.Errorf("failed to create cart: %w", err)
		}
	}

	return cart, nil
}

// AddToCart adds quantity of productID to the cart
func (s *Service) AddToCart(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, _, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Add(productID, quantity)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	}).Debug("Added to cart")

	return cart, nil
}

// UpdateCartItem sets the quantity of productID; zero or less removes it
func (s *Service) UpdateCartItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	cart, exists, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCartNotFound
	}

	cart.Set(productID, quantity)
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	return cart, nil
}

// RemoveFromCart drops productID from the cart
func (s *Service) RemoveFromCart(ctx context.Context, userID, productID string) error {
	cart, exists, err := s.store.Load(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	cart.Remove(productID)
	if err := s.store.Save(ctx, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// ClearCart empties the cart
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	cart, exists, err := s.store.Load(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	cart.Clear()
	if err := s.store.Save(ctx, cart); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
