// internal/client/cart/model.go
package cart

import (
	"sync"

	"github.com/your-org/storefront/internal/client/gateway"
)

// Entry is one product and its desired quantity
type Entry = gateway.CartEntry

// Model is the local working copy of the session cart. It holds at most one
// entry per product id, in insertion order. The zero value is an empty cart.
type Model struct {
	mu      sync.Mutex
	entries []Entry
}

// NewModel returns an empty cart model
func NewModel() *Model {
	return &Model{}
}

// SetAll replaces the local state wholesale. The entries are taken as given.
func (m *Model) SetAll(entries []Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append([]Entry(nil), entries...)
}

// Add increments the quantity of an existing entry or inserts a new one.
// quantity is expected to be at least 1; it is not checked here.
func (m *Model) Add(productID string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(productID); i >= 0 {
		m.entries[i].Quantity += quantity
		return
	}
	m.entries = append(m.entries, Entry{ProductID: productID, Quantity: quantity})
}

// SetQuantity sets the absolute quantity of a product. Zero or less removes it.
func (m *Model) SetQuantity(productID string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(productID)
	switch {
	case quantity <= 0:
		if i >= 0 {
			m.removeAt(i)
		}
	case i >= 0:
		m.entries[i].Quantity = quantity
	default:
		m.entries = append(m.entries, Entry{ProductID: productID, Quantity: quantity})
	}
}

// Remove deletes the entry for productID if present
func (m *Model) Remove(productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(productID); i >= 0 {
		m.removeAt(i)
	}
}

// Clear empties the cart
func (m *Model) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
}

// Count returns the sum of all quantities
func (m *Model) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, e := range m.entries {
		total += e.Quantity
	}
	return total
}

// Len returns the number of distinct entries
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Quantity returns the quantity held for productID
func (m *Model) Quantity(productID string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(productID); i >= 0 {
		return m.entries[i].Quantity, true
	}
	return 0, false
}

// Entries returns a copy of the entries in insertion order
func (m *Model) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Entry(nil), m.entries...)
}

func (m *Model) indexOf(productID string) int {
	for i := range m.entries {
		if m.entries[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (m *Model) removeAt(i int) {
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
}
