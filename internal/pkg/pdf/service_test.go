package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
)

func TestGenerateHTML(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CompanyName = "Storefront Inc."
	cfg.App.CompanyEmail = "support@example.com"
	svc := NewService(cfg)

	o := &order.Order{
		ID:     "3f2b8c1a-1111-4000-8000-000000000000",
		Status: order.OrderStatusConfirmed,
		Items: []order.OrderItem{
			{ProductID: "A", Name: "Wireless <Headphones>", Price: decimal.RequireFromString("10"), Quantity: 2},
			{ProductID: "B", Name: "Mug", Price: decimal.RequireFromString("5.5"), Quantity: 1},
		},
		Total: decimal.RequireFromString("25.5"),
		ShippingAddress: order.ShippingAddress{
			FullName: "Ada Lovelace",
			Address:  "1 Analytical Way",
			City:     "London",
			State:    "LDN",
			ZipCode:  "00001",
			Phone:    "555-0100",
		},
		CreatedAt: time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC),
	}

	html, err := svc.generateHTML(svc.invoiceData(o))
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "INV-ORD-20240517-3f2b8c1a")
	assert.Contains(t, out, "May 17, 2024")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "$20.00")
	assert.Contains(t, out, "$5.50")
	assert.Contains(t, out, "$25.50")
	assert.Contains(t, out, "Wireless &lt;Headphones&gt;")
	assert.Contains(t, out, "support@example.com")
}
