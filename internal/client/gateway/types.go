// internal/client/gateway/types.go
package gateway

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog product as served by the gateway
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"reviewCount"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductFilter holds the optional catalog query parameters
type ProductFilter struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string // price, rating or createdAt
}

// Review is a product review
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewRequest is the body of POST /reviews
type ReviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// CartEntry is one product/quantity pair of a cart
type CartEntry struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Cart is the authoritative server-side cart
type Cart struct {
	UserID    string      `json:"userId"`
	Items     []CartEntry `json:"items"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// CartUpdate is the response to a cart mutation. Items is nil when the
// gateway did not return the resulting item list.
type CartUpdate struct {
	Message string      `json:"message"`
	Items   []CartEntry `json:"items"`
}

type cartMutationRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// ShippingAddress is the delivery address of an order
type ShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Phone    string `json:"phone"`
}

// OrderItem is a priced line of an order
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// CreateOrderRequest is the body of POST /orders
type CreateOrderRequest struct {
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

// Order is a placed order
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Message is the generic acknowledgement body
type Message struct {
	Message       string `json:"message"`
	ProductsCount int    `json:"products_count,omitempty"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type guestTokenResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
