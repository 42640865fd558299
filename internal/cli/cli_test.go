package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/client/gateway"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/pkg/logger"
)

type stubGateway struct {
	mu       sync.Mutex
	items    []gateway.CartEntry
	products map[string]gateway.Product
	orders   int
	requests int
	failAll  bool
}

func (s *stubGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests++
	w.Header().Set("Content-Type", "application/json")
	if s.failAll {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"database unavailable"}`))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api")
	switch {
	case r.Method == http.MethodGet && path == "/products":
		list := make([]gateway.Product, 0, len(s.products))
		for _, id := range []string{"p1", "p2"} {
			list = append(list, s.products[id])
		}
		_ = json.NewEncoder(w).Encode(list)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/products/"):
		p, ok := s.products[strings.TrimPrefix(path, "/products/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Product not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodGet && path == "/cart":
		_ = json.NewEncoder(w).Encode(gateway.Cart{Items: s.items})
	case r.Method == http.MethodPost && path == "/cart/add":
		var body struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.items = append(s.items, gateway.CartEntry{ProductID: body.ProductID, Quantity: body.Quantity})
		_ = json.NewEncoder(w).Encode(gateway.CartUpdate{Message: "Added to cart", Items: s.items})
	case r.Method == http.MethodPost && path == "/orders":
		var req gateway.CreateOrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.orders++
		s.items = nil
		_ = json.NewEncoder(w).Encode(gateway.Order{ID: "ord-9", Status: "confirmed", Total: req.Total, Items: req.Items})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
	}
}

func newTestApp(t *testing.T, stub *stubGateway) (*App, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	cfg := &config.Config{Checkout: config.CheckoutConfig{
		MaxConcurrentFetches: 2,
		MissingProductPolicy: config.MissingProductDrop,
		ServerCartPolicy:     config.ServerCartAssume,
	}}
	log := logger.Discard()
	client := gateway.New(srv.URL, 5*time.Second, gateway.WithLogger(log))

	out := &bytes.Buffer{}
	app, err := New(cfg, client, log, out)
	require.NoError(t, err)
	return app, out
}

func newStub() *stubGateway {
	return &stubGateway{
		products: map[string]gateway.Product{
			"p1": {ID: "p1", Name: "Premium Laptop", Category: "Electronics", Price: decimal.RequireFromString("10.00")},
			"p2": {ID: "p2", Name: "Yoga Mat", Category: "Sports", Price: decimal.RequireFromString("5.50")},
		},
	}
}

func TestRun_Products(t *testing.T) {
	app, out := newTestApp(t, newStub())

	code := app.Run(context.Background(), []string{"products", "-sort", "price"})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "Premium Laptop")
	assert.Contains(t, out.String(), "$5.50")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"teleport"}},
		{name: "bad price", args: []string{"products", "-min", "cheap"}},
		{name: "missing id", args: []string{"product"}},
		{name: "bad quantity", args: []string{"add", "p1", "zero"}},
		{name: "bad rating", args: []string{"review", "-product", "p1", "-rating", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t, newStub())
			assert.Equal(t, ExitUsage, app.Run(context.Background(), tt.args))
		})
	}
}

func TestRun_AddAndShowCart(t *testing.T) {
	stub := newStub()
	app, out := newTestApp(t, stub)

	require.Equal(t, ExitOK, app.Run(context.Background(), []string{"add", "p1", "2"}))
	require.Equal(t, ExitOK, app.Run(context.Background(), []string{"add", "p2"}))

	out.Reset()
	require.Equal(t, ExitOK, app.Run(context.Background(), []string{"cart"}))
	assert.Contains(t, out.String(), "Items: 3  Total: $25.50")
}

func TestRun_CheckoutValidationMakesNoOrder(t *testing.T) {
	stub := newStub()
	stub.items = []gateway.CartEntry{{ProductID: "p1", Quantity: 1}}
	app, out := newTestApp(t, stub)

	code := app.Run(context.Background(), []string{"checkout", "-name", "Ada", "-city", "London"})

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out.String(), "please fill in all shipping details")
	assert.Equal(t, 0, stub.orders)
	assert.Equal(t, 0, stub.requests)
}

func TestRun_CheckoutValidationWhileGatewayDown(t *testing.T) {
	stub := newStub()
	stub.failAll = true
	app, out := newTestApp(t, stub)

	code := app.Run(context.Background(), []string{"checkout",
		"-name", "   ", "-address", "1 Row", "-city", "London", "-state", "LDN", "-zip", "N1", "-phone", "555"})

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out.String(), "please fill in all shipping details")
	assert.NotContains(t, out.String(), failureNotice)
	assert.Equal(t, 0, stub.requests)
}

func TestRun_CheckoutEmptyCart(t *testing.T) {
	stub := newStub()
	app, out := newTestApp(t, stub)

	code := app.Run(context.Background(), []string{"checkout",
		"-name", "Ada", "-address", "1 Row", "-city", "London", "-state", "LDN", "-zip", "N1", "-phone", "555"})

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out.String(), "your cart is empty")
	assert.Equal(t, 0, stub.orders)
}

func TestRun_CheckoutPlacesOrder(t *testing.T) {
	stub := newStub()
	stub.items = []gateway.CartEntry{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}}
	app, out := newTestApp(t, stub)

	code := app.Run(context.Background(), []string{"checkout",
		"-name", "Ada", "-address", "1 Row", "-city", "London", "-state", "LDN", "-zip", "N1", "-phone", "555"})

	require.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "Order ID: ord-9")
	assert.Contains(t, out.String(), "Total: $25.50")
	assert.Equal(t, 1, stub.orders)
}

func TestRun_GatewayFailureShowsGenericNotice(t *testing.T) {
	stub := newStub()
	stub.failAll = true
	app, out := newTestApp(t, stub)

	code := app.Run(context.Background(), []string{"orders"})

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, failureNotice+"\n", out.String())
}

func TestRun_NotFound(t *testing.T) {
	app, out := newTestApp(t, newStub())

	code := app.Run(context.Background(), []string{"product", "missing"})

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "Not found.\n", out.String())
}
