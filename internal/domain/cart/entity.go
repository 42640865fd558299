// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"time"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Cart is a user's server-side cart (stored in Redis)
type Cart struct {
	UserID    string    `json:"userId"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is one product/quantity pair
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// NewCart returns an empty cart for userID
func NewCart(userID string) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     []Item{},
		UpdatedAt: time.Now().UTC(),
	}
}

// Add increases the quantity of an existing item or appends a new one
func (c *Cart) Add(productID string, quantity int) {
	if i := c.indexOf(productID); i >= 0 {
		c.Items[i].Quantity += quantity
	} else {
		c.Items = append(c.Items, Item{ProductID: productID, Quantity: quantity})
	}
	c.touch()
}

// Set replaces the quantity of an existing item; zero or less removes it.
// Unknown products are left alone.
func (c *Cart) Set(productID string, quantity int) {
	if i := c.indexOf(productID); i >= 0 {
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
	}
	c.touch()
}

// Remove deletes the item for productID if present
func (c *Cart) Remove(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	c.touch()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.touch()
}

// ItemCount returns the summed quantity
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
