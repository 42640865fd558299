// internal/client/checkout/draft.go
package checkout

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/client/gateway"
)

// ErrEmptyCart is returned when an order is attempted with no line items
var ErrEmptyCart = errors.New("your cart is empty")

// ValidationError lists the shipping fields that are missing
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "please fill in all shipping details: missing " + strings.Join(e.Fields, ", ")
}

// ValidateAddress checks that every shipping field is non-empty once trimmed
func ValidateAddress(addr gateway.ShippingAddress) error {
	fields := []struct {
		name  string
		value string
	}{
		{"fullName", addr.FullName},
		{"address", addr.Address},
		{"city", addr.City},
		{"state", addr.State},
		{"zipCode", addr.ZipCode},
		{"phone", addr.Phone},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// OrderDraft is the payload assembled right before submission
type OrderDraft struct {
	Items           []LineItem
	Total           decimal.Decimal
	ShippingAddress gateway.ShippingAddress
}

// NewDraft validates the address, then the items, and builds a draft
func NewDraft(items []LineItem, addr gateway.ShippingAddress) (*OrderDraft, error) {
	if err := ValidateAddress(addr); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	return &OrderDraft{
		Items:           append([]LineItem(nil), items...),
		Total:           Total(items),
		ShippingAddress: trimAddress(addr),
	}, nil
}

// Request converts the draft into the gateway's order creation body
func (d *OrderDraft) Request() gateway.CreateOrderRequest {
	items := make([]gateway.OrderItem, len(d.Items))
	for i, li := range d.Items {
		items[i] = gateway.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     li.UnitPrice,
			Quantity:  li.Quantity,
			Image:     li.ImageRef,
		}
	}

	return gateway.CreateOrderRequest{
		Items:           items,
		Total:           d.Total,
		ShippingAddress: d.ShippingAddress,
	}
}

func trimAddress(addr gateway.ShippingAddress) gateway.ShippingAddress {
	return gateway.ShippingAddress{
		FullName: strings.TrimSpace(addr.FullName),
		Address:  strings.TrimSpace(addr.Address),
		City:     strings.TrimSpace(addr.City),
		State:    strings.TrimSpace(addr.State),
		ZipCode:  strings.TrimSpace(addr.ZipCode),
		Phone:    strings.TrimSpace(addr.Phone),
	}
}
