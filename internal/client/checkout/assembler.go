// internal/client/checkout/assembler.go
package checkout

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/client/cart"
	"github.com/your-org/storefront/internal/client/gateway"
	"github.com/your-org/storefront/internal/config"
	"golang.org/x/sync/errgroup"
)

// MissingProductPolicy decides what happens to cart entries whose product
// detail cannot be fetched
type MissingProductPolicy int

const (
	// DropMissing leaves the entry out of the assembled view
	DropMissing MissingProductPolicy = iota
	// FailOnMissing fails the whole assembly
	FailOnMissing
)

// ParseMissingProductPolicy maps a configuration value to a policy
func ParseMissingProductPolicy(s string) (MissingProductPolicy, error) {
	switch s {
	case config.MissingProductDrop, "":
		return DropMissing, nil
	case config.MissingProductFail:
		return FailOnMissing, nil
	default:
		return DropMissing, fmt.Errorf("unknown missing-product policy %q", s)
	}
}

// ProductFetcher resolves product detail by id
type ProductFetcher interface {
	GetProduct(ctx context.Context, id string) (*gateway.Product, error)
}

// LineItem is a cart entry joined with its product data
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	ImageRef  string
}

// Subtotal returns unit price times quantity
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Assembly is the result of joining the cart with the catalog
type Assembly struct {
	Items   []LineItem
	Dropped []string // product ids whose detail could not be fetched
}

// Total returns the total of the assembled items
func (a *Assembly) Total() decimal.Decimal {
	return Total(a.Items)
}

// Count returns the summed quantity of the assembled items
func (a *Assembly) Count() int {
	n := 0
	for _, li := range a.Items {
		n += li.Quantity
	}
	return n
}

// Assembler builds line items by fetching product detail for every entry
type Assembler struct {
	products      ProductFetcher
	policy        MissingProductPolicy
	maxConcurrent int
	logger        *logrus.Logger
}

// NewAssembler creates an assembler. maxConcurrent bounds the number of
// in-flight product fetches; zero or less means 10.
func NewAssembler(products ProductFetcher, policy MissingProductPolicy, maxConcurrent int, logger *logrus.Logger) *Assembler {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Assembler{
		products:      products,
		policy:        policy,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// Assemble fetches product detail for all entries concurrently and returns
// the line items in entry order once every fetch has completed.
func (a *Assembler) Assemble(ctx context.Context, entries []cart.Entry) (*Assembly, error) {
	resolved := make([]*LineItem, len(entries))
	failures := make([]error, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrent)

	for i := range entries {
		entry := entries[i]
		g.Go(func() error {
			product, err := a.products.GetProduct(gctx, entry.ProductID)
			if err != nil {
				if a.policy == FailOnMissing {
					return fmt.Errorf("failed to load product %s: %w", entry.ProductID, err)
				}
				failures[i] = err
				return nil
			}

			resolved[i] = &LineItem{
				ProductID: entry.ProductID,
				Name:      product.Name,
				UnitPrice: product.Price,
				Quantity:  entry.Quantity,
				ImageRef:  product.Image,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	assembly := &Assembly{Items: make([]LineItem, 0, len(entries))}
	for i, li := range resolved {
		if li != nil {
			assembly.Items = append(assembly.Items, *li)
			continue
		}

		assembly.Dropped = append(assembly.Dropped, entries[i].ProductID)
		a.logger.WithError(failures[i]).
			WithField("product_id", entries[i].ProductID).
			Warn("Error loading product, dropping it from the cart view")
	}

	return assembly, nil
}

// Total sums unit price times quantity over items, rounded to cents
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return total.Round(2)
}
