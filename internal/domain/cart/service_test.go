package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/logger"
)

type memoryStore struct {
	carts   map[string]*Cart
	saves   int
	loadErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[string]*Cart{}}
}

func (m *memoryStore) Load(ctx context.Context, userID string) (*Cart, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	c, ok := m.carts[userID]
	if !ok {
		return NewCart(userID), false, nil
	}
	cp := *c
	cp.Items = append([]Item{}, c.Items...)
	return &cp, true, nil
}

func (m *memoryStore) Save(ctx context.Context, cart *Cart) error {
	m.saves++
	cp := *cart
	cp.Items = append([]Item{}, cart.Items...)
	m.carts[cart.UserID] = &cp
	return nil
}

func TestCart_Mutations(t *testing.T) {
	c := NewCart("u1")

	c.Add("a", 2)
	c.Add("a", 3)
	c.Add("b", 1)
	assert.Equal(t, []Item{{"a", 5}, {"b", 1}}, c.Items)

	c.Set("b", 4)
	c.Set("missing", 9)
	assert.Equal(t, []Item{{"a", 5}, {"b", 4}}, c.Items)

	c.Set("a", 0)
	assert.Equal(t, []Item{{"b", 4}}, c.Items)

	c.Set("b", -1)
	assert.Empty(t, c.Items)

	c.Add("c", 1)
	c.Remove("nope")
	assert.Equal(t, 1, c.ItemCount())
	c.Remove("c")
	assert.Empty(t, c.Items)
}

func TestService_GetCartCreatesEmptyCart(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, logger.Discard())

	c, err := svc.GetCart(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, "u1", c.UserID)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
	assert.Contains(t, store.carts, "u1")
}

func TestService_AddAndUpdate(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, logger.Discard())
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", "a", 2)
	require.NoError(t, err)
	c, err := svc.AddToCart(ctx, "u1", "a", 1)
	require.NoError(t, err)
	assert.Equal(t, []Item{{"a", 3}}, c.Items)

	c, err = svc.UpdateCartItem(ctx, "u1", "a", 7)
	require.NoError(t, err)
	assert.Equal(t, []Item{{"a", 7}}, c.Items)

	c, err = svc.UpdateCartItem(ctx, "u1", "a", 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Empty(t, store.carts["u1"].Items)
}

func TestService_Validation(t *testing.T) {
	svc := NewService(newMemoryStore(), logger.Discard())
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", "a", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateCartItem(ctx, "nobody", "a", 1)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestService_RemoveAndClear(t *testing.T) {
	store := newMemoryStore()
	svc := NewService(store, logger.Discard())
	ctx := context.Background()

	// no cart yet: nothing is written
	require.NoError(t, svc.RemoveFromCart(ctx, "u1", "a"))
	require.NoError(t, svc.ClearCart(ctx, "u1"))
	assert.Equal(t, 0, store.saves)

	_, err := svc.AddToCart(ctx, "u1", "a", 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "u1", "b", 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFromCart(ctx, "u1", "a"))
	assert.Equal(t, []Item{{"b", 1}}, store.carts["u1"].Items)

	require.NoError(t, svc.ClearCart(ctx, "u1"))
	assert.Empty(t, store.carts["u1"].Items)
}

func TestService_StoreFailure(t *testing.T) {
	store := newMemoryStore()
	store.loadErr = errors.New("redis down")
	svc := NewService(store, logger.Discard())

	_, err := svc.GetCart(context.Background(), "u1")
	assert.Error(t, err)
}

func TestCartKey(t *testing.T) {
	assert.Equal(t, "cart:user:mock-user", cartKey("mock-user"))
}
