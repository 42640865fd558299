package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestListProducts_SendsFilter(t *testing.T) {
	minPrice := decimal.RequireFromString("10")
	maxPrice := decimal.RequireFromString("99.99")

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "Electronics", q.Get("category"))
		assert.Equal(t, "watch", q.Get("search"))
		assert.Equal(t, "10", q.Get("minPrice"))
		assert.Equal(t, "99.99", q.Get("maxPrice"))
		assert.Equal(t, "price", q.Get("sort"))

		w.Write([]byte(`[{"id":"p1","name":"Smart Watch","price":299.99,"category":"Electronics","reviewCount":2}]`))
	})

	products, err := client.ListProducts(context.Background(), ProductFilter{
		Category: "Electronics",
		Search:   "watch",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Sort:     "price",
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "p1", products[0].ID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("299.99")))
	assert.Equal(t, 2, products[0].ReviewCount)
}

func TestGetProduct_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/missing", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Product not found"}`))
	})

	_, err := client.GetProduct(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Product not found", apiErr.Message)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsClientError(err))
}

func TestAPIError_ErrorField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid request data"}`))
	})

	_, err := client.ListOrders(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid request data", apiErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestCartMutations(t *testing.T) {
	var got []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)

		switch r.URL.Path {
		case "/api/cart/add", "/api/cart/update":
			var body cartMutationRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "p1", body.ProductID)
			assert.Equal(t, 3, body.Quantity)
			w.Write([]byte(`{"message":"ok","items":[{"productId":"p1","quantity":3}]}`))
		case "/api/cart/remove/p1":
			w.Write([]byte(`{"message":"Removed from cart"}`))
		case "/api/cart/clear":
			w.Write([]byte(`{"message":"Cart cleared"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()

	update, err := client.AddToCart(ctx, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, []CartEntry{{ProductID: "p1", Quantity: 3}}, update.Items)

	_, err = client.UpdateCartItem(ctx, "p1", 3)
	require.NoError(t, err)

	update, err = client.RemoveFromCart(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, update.Items, "absent items must decode as nil")

	require.NoError(t, client.ClearCart(ctx))

	assert.Equal(t, []string{
		"POST /api/cart/add",
		"POST /api/cart/update",
		"DELETE /api/cart/remove/p1",
		"DELETE /api/cart/clear",
	}, got)
}

func TestCreateOrder_SendsBearerToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer guest-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Total.Equal(decimal.RequireFromString("25.50")))
		assert.Equal(t, "Ada Lovelace", req.ShippingAddress.FullName)

		w.Write([]byte(`{"id":"o1","status":"confirmed","total":25.5,"items":[]}`))
	})
	client.SetToken("guest-token")

	order, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		Items:           []OrderItem{{ProductID: "A", Price: decimal.RequireFromString("10"), Quantity: 2}},
		Total:           decimal.RequireFromString("25.50"),
		ShippingAddress: ShippingAddress{FullName: "Ada Lovelace"},
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, "confirmed", order.Status)
}

func TestGuestToken_StoresToken(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/api/auth/guest" {
			w.Write([]byte(`{"token":"tok","userId":"u1"}`))
			return
		}
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"categories":["Home","Sports"]}`))
	})

	token, err := client.GuestToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "Sports"}, categories)
	assert.Equal(t, 2, calls)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, time.Second)
	_, err := client.GetCart(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, IsNotFound(err))
	assert.False(t, errors.As(err, &apiErr))
}
