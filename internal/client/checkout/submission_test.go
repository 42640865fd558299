package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/client/cart"
	"github.com/your-org/storefront/internal/client/gateway"
	"github.com/your-org/storefront/internal/pkg/logger"
)

type fakePlacer struct {
	order    *gateway.Order
	err      error
	clearErr error

	// block, when set, holds CreateOrder until it is closed
	block   chan struct{}
	started chan struct{}

	// clearBlock, when set, holds ClearCart until it is closed
	clearBlock   chan struct{}
	clearStarted chan struct{}

	requests []gateway.CreateOrderRequest
	clears   int
}

func (f *fakePlacer) CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*gateway.Order, error) {
	f.requests = append(f.requests, req)
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.order, f.err
}

func (f *fakePlacer) ClearCart(ctx context.Context) error {
	f.clears++
	if f.clearStarted != nil {
		close(f.clearStarted)
	}
	if f.clearBlock != nil {
		<-f.clearBlock
	}
	return f.clearErr
}

func sampleItems() []LineItem {
	return []LineItem{
		{ProductID: "a", Name: "Alpha", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 2},
		{ProductID: "b", Name: "Beta", UnitPrice: decimal.RequireFromString("5.50"), Quantity: 1},
	}
}

func filledModel() *cart.Model {
	m := cart.NewModel()
	m.Add("a", 2)
	m.Add("b", 1)
	return m
}

func TestSubmit_ValidationFailureMakesNoCall(t *testing.T) {
	placer := &fakePlacer{}
	m := filledModel()
	co := New(m, placer, AssumeServerCleared, logger.Discard())

	_, err := co.Submit(context.Background(), sampleItems())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, placer.requests)
	assert.Equal(t, Editing, co.State())
	assert.Equal(t, 3, m.Count())
	assert.Equal(t, err, co.Err())
}

func TestSubmit_EmptyCartMakesNoCall(t *testing.T) {
	placer := &fakePlacer{}
	co := New(cart.NewModel(), placer, AssumeServerCleared, logger.Discard())
	require.NoError(t, co.SetAddress(validAddress()))

	_, err := co.Submit(context.Background(), nil)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, placer.requests)
}

func TestSubmit_SuccessClearsLocalCart(t *testing.T) {
	placer := &fakePlacer{order: &gateway.Order{ID: "ord-1", Status: "confirmed"}}
	m := filledModel()
	co := New(m, placer, AssumeServerCleared, logger.Discard())
	require.NoError(t, co.SetAddress(validAddress()))

	order, err := co.Submit(context.Background(), sampleItems())
	require.NoError(t, err)

	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, Succeeded, co.State())
	assert.Equal(t, 0, m.Count())
	assert.Equal(t, 0, placer.clears)
	require.Len(t, placer.requests, 1)
	assert.Equal(t, "25.50", placer.requests[0].Total.StringFixed(2))

	_, err = co.Submit(context.Background(), sampleItems())
	assert.ErrorIs(t, err, ErrAlreadyPlaced)
	assert.ErrorIs(t, co.SetAddress(validAddress()), ErrAlreadyPlaced)
}

func TestSubmit_ExplicitServerClear(t *testing.T) {
	tests := []struct {
		name     string
		clearErr error
	}{
		{name: "clear succeeds"},
		{name: "clear fails but order stands", clearErr: errors.New("timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			placer := &fakePlacer{order: &gateway.Order{ID: "ord-2"}, clearErr: tt.clearErr}
			m := filledModel()
			co := New(m, placer, ClearServerCart, logger.Discard())
			require.NoError(t, co.SetAddress(validAddress()))

			_, err := co.Submit(context.Background(), sampleItems())
			require.NoError(t, err)

			assert.Equal(t, 1, placer.clears)
			assert.Equal(t, Succeeded, co.State())
			assert.Equal(t, 0, m.Count())
		})
	}
}

func TestSubmit_FailureKeepsFields(t *testing.T) {
	placer := &fakePlacer{err: &gateway.APIError{StatusCode: 500, Message: "boom"}}
	m := filledModel()
	co := New(m, placer, AssumeServerCleared, logger.Discard())
	addr := validAddress()
	require.NoError(t, co.SetAddress(addr))

	_, err := co.Submit(context.Background(), sampleItems())
	require.Error(t, err)

	assert.Equal(t, Editing, co.State())
	assert.Equal(t, addr, co.Address())
	assert.Equal(t, 3, m.Count())
	assert.Nil(t, co.Order())

	var apiErr *gateway.APIError
	assert.True(t, errors.As(co.Err(), &apiErr))

	// a retry goes through once the gateway recovers
	placer.err = nil
	placer.order = &gateway.Order{ID: "ord-3"}
	_, err = co.Submit(context.Background(), sampleItems())
	require.NoError(t, err)
	assert.Nil(t, co.Err())
	assert.Len(t, placer.requests, 2)
}

func TestSubmit_RejectsConcurrentSubmission(t *testing.T) {
	placer := &fakePlacer{
		order:   &gateway.Order{ID: "ord-4"},
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	co := New(filledModel(), placer, AssumeServerCleared, logger.Discard())
	require.NoError(t, co.SetAddress(validAddress()))

	done := make(chan error, 1)
	go func() {
		_, err := co.Submit(context.Background(), sampleItems())
		done <- err
	}()

	<-placer.started
	assert.Equal(t, Submitting, co.State())

	_, err := co.Submit(context.Background(), sampleItems())
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.ErrorIs(t, co.SetAddress(gateway.ShippingAddress{}), ErrSubmitting)

	close(placer.block)
	require.NoError(t, <-done)
	assert.Equal(t, Succeeded, co.State())
	assert.Len(t, placer.requests, 1)
}

func TestSubmit_ServerClearDoesNotHoldState(t *testing.T) {
	placer := &fakePlacer{
		order:        &gateway.Order{ID: "ord-5"},
		clearBlock:   make(chan struct{}),
		clearStarted: make(chan struct{}),
	}
	m := filledModel()
	co := New(m, placer, ClearServerCart, logger.Discard())
	addr := validAddress()
	require.NoError(t, co.SetAddress(addr))

	done := make(chan error, 1)
	go func() {
		_, err := co.Submit(context.Background(), sampleItems())
		done <- err
	}()

	<-placer.clearStarted

	type snapshot struct {
		state State
		err   error
		addr  gateway.ShippingAddress
		order *gateway.Order
	}
	read := make(chan snapshot, 1)
	go func() {
		read <- snapshot{state: co.State(), err: co.Err(), addr: co.Address(), order: co.Order()}
	}()

	select {
	case snap := <-read:
		assert.Equal(t, Succeeded, snap.state)
		assert.NoError(t, snap.err)
		assert.Equal(t, addr, snap.addr)
		require.NotNil(t, snap.order)
		assert.Equal(t, "ord-5", snap.order.ID)
	case <-time.After(time.Second):
		t.Fatal("checkout state blocked while the server cart was being cleared")
	}
	assert.Equal(t, 0, m.Count())

	close(placer.clearBlock)
	require.NoError(t, <-done)
	assert.Equal(t, 1, placer.clears)
}

func TestParseServerCartPolicy(t *testing.T) {
	p, err := ParseServerCartPolicy("explicit")
	require.NoError(t, err)
	assert.Equal(t, ClearServerCart, p)

	p, err = ParseServerCartPolicy("assume")
	require.NoError(t, err)
	assert.Equal(t, AssumeServerCleared, p)

	_, err = ParseServerCartPolicy("sometimes")
	assert.Error(t, err)
}
