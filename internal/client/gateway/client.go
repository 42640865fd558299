// internal/client/gateway/client.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
)

// Client talks to the storefront REST gateway
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithToken sets the bearer token sent on every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the gateway rooted at baseURL. Requests go to
// baseURL + "/api".
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client from the gateway configuration
func NewFromConfig(cfg *config.Config, logger *logrus.Logger) *Client {
	opts := []Option{WithLogger(logger)}
	if cfg.Gateway.Token != "" {
		opts = append(opts, WithToken(cfg.Gateway.Token))
	}
	return New(cfg.Gateway.BaseURL, cfg.Gateway.Timeout, opts...)
}

// SetToken replaces the bearer token
func (c *Client) SetToken(token string) {
	c.token = token
}

// Products

// ListProducts handles GET /products
func (c *Client) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.MinPrice != nil {
		query.Set("minPrice", filter.MinPrice.String())
	}
	if filter.MaxPrice != nil {
		query.Set("maxPrice", filter.MaxPrice.String())
	}
	if filter.Sort != "" {
		query.Set("sort", filter.Sort)
	}

	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct handles GET /products/{id}
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories handles GET /categories
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// Reviews

// ListReviews handles GET /reviews/{productId}
func (c *Client) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	var reviews []Review
	if err := c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(productID), nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview handles POST /reviews
func (c *Client) CreateReview(ctx context.Context, req ReviewRequest) (*Review, error) {
	var review Review
	if err := c.do(ctx, http.MethodPost, "/reviews", nil, req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// Cart

// GetCart handles GET /cart
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart handles POST /cart/add
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (*CartUpdate, error) {
	var update CartUpdate
	body := cartMutationRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/add", nil, body, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// UpdateCartItem handles POST /cart/update
func (c *Client) UpdateCartItem(ctx context.Context, productID string, quantity int) (*CartUpdate, error) {
	var update CartUpdate
	body := cartMutationRequest{ProductID: productID, Quantity: quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/update", nil, body, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// RemoveFromCart handles DELETE /cart/remove/{productId}
func (c *Client) RemoveFromCart(ctx context.Context, productID string) (*CartUpdate, error) {
	var update CartUpdate
	if err := c.do(ctx, http.MethodDelete, "/cart/remove/"+url.PathEscape(productID), nil, nil, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// ClearCart handles DELETE /cart/clear
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil, nil)
}

// Orders

// CreateOrder handles POST /orders
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders handles GET /orders
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder handles GET /orders/{id}
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetInvoice handles GET /orders/{id}/invoice and returns the PDF bytes
func (c *Client) GetInvoice(ctx context.Context, id string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, "/orders/"+url.PathEscape(id)+"/invoice", nil, nil)
}

// Misc

// InitData handles POST /init-data
func (c *Client) InitData(ctx context.Context) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, "/init-data", nil, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// GuestToken handles POST /auth/guest, stores the issued token on the client
// and returns it
func (c *Client) GuestToken(ctx context.Context) (string, error) {
	var resp guestTokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/guest", nil, nil, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// do sends a JSON request and decodes a JSON response into out
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	respBody, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	c.logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"latency":     time.Since(start),
	}).Debug("gateway request completed")

	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}
