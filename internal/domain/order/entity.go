// internal/domain/order/entity.go
package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

// OrderStatusConfirmed is the only status the gateway stores
const OrderStatusConfirmed OrderStatus = "confirmed"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order must contain at least one item")
	ErrInvalidItem   = errors.New("invalid order item")
)

// Order represents a placed order
type Order struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	UserID          string          `gorm:"not null;size:64;index" json:"userId"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Status          OrderStatus     `gorm:"not null;size:20;default:'confirmed'" json:"status"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	CreatedAt       time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time       `json:"-"`
}

// OrderItem represents a line of an order, priced at order time
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   string          `gorm:"not null;size:36;index" json:"-"`
	ProductID string          `gorm:"not null;size:36;index" json:"productId"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Image     string          `gorm:"size:500" json:"image"`
}

// ShippingAddress is embedded in Order
type ShippingAddress struct {
	FullName string `gorm:"size:255" json:"fullName"`
	Address  string `gorm:"size:255" json:"address"`
	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	ZipCode  string `gorm:"size:20" json:"zipCode"`
	Phone    string `gorm:"size:30" json:"phone"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// BeforeCreate assigns a uuid when none is set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// Subtotal returns price times quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CalculateTotal sums the item subtotals, rounded to cents
func CalculateTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// ItemCount returns the summed quantity
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// Reference returns a short human-friendly order reference
func (o *Order) Reference() string {
	short := o.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("ORD-%s-%s", o.CreatedAt.Format("20060102"), short)
}
