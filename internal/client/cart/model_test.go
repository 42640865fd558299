package cart

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_AddIsAdditive(t *testing.T) {
	m := NewModel()
	m.Add("p", 2)
	m.Add("p", 3)

	assert.Equal(t, []Entry{{ProductID: "p", Quantity: 5}}, m.Entries())
	assert.Equal(t, 5, m.Count())
}

func TestModel_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		initial  []Entry
		product  string
		quantity int
		want     []Entry
	}{
		{
			name:     "zero removes existing entry",
			initial:  []Entry{{ProductID: "p", Quantity: 4}, {ProductID: "q", Quantity: 1}},
			product:  "p",
			quantity: 0,
			want:     []Entry{{ProductID: "q", Quantity: 1}},
		},
		{
			name:     "negative removes existing entry",
			initial:  []Entry{{ProductID: "p", Quantity: 4}},
			product:  "p",
			quantity: -2,
			want:     nil,
		},
		{
			name:     "absolute, not additive",
			initial:  []Entry{{ProductID: "p", Quantity: 4}},
			product:  "p",
			quantity: 2,
			want:     []Entry{{ProductID: "p", Quantity: 2}},
		},
		{
			name:     "absent product with positive quantity is created",
			initial:  []Entry{{ProductID: "q", Quantity: 1}},
			product:  "p",
			quantity: 3,
			want:     []Entry{{ProductID: "q", Quantity: 1}, {ProductID: "p", Quantity: 3}},
		},
		{
			name:     "absent product with zero quantity is a no-op",
			initial:  []Entry{{ProductID: "q", Quantity: 1}},
			product:  "p",
			quantity: 0,
			want:     []Entry{{ProductID: "q", Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.SetAll(tt.initial)
			m.SetQuantity(tt.product, tt.quantity)
			assert.Equal(t, tt.want, m.Entries())
		})
	}
}

func TestModel_RemoveAbsentIsNoop(t *testing.T) {
	m := NewModel()
	m.Add("a", 1)
	m.Add("b", 2)
	before := m.Entries()

	m.Remove("missing")

	assert.Equal(t, before, m.Entries())
}

func TestModel_ClearAndSetAll(t *testing.T) {
	m := NewModel()
	m.SetAll([]Entry{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 2}})
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 3, m.Count())

	m.Clear()
	assert.Equal(t, 0, m.Count())
	assert.Empty(t, m.Entries())
}

func TestModel_SetAllCopiesInput(t *testing.T) {
	input := []Entry{{ProductID: "a", Quantity: 1}}
	m := NewModel()
	m.SetAll(input)

	input[0].Quantity = 99
	qty, ok := m.Quantity("a")
	require.True(t, ok)
	assert.Equal(t, 1, qty)

	out := m.Entries()
	out[0].Quantity = 42
	qty, _ = m.Quantity("a")
	assert.Equal(t, 1, qty)
}

// Count must equal the sum of quantities after any operation sequence.
func TestModel_CountMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	products := []string{"a", "b", "c", "d"}

	m := NewModel()
	ref := map[string]int{}

	for i := 0; i < 2000; i++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(3) {
		case 0:
			q := rng.Intn(5) + 1
			m.Add(p, q)
			ref[p] += q
		case 1:
			q := rng.Intn(7) - 2
			m.SetQuantity(p, q)
			if q <= 0 {
				delete(ref, p)
			} else {
				ref[p] = q
			}
		case 2:
			m.Remove(p)
			delete(ref, p)
		}

		want := 0
		for _, q := range ref {
			want += q
		}
		require.Equal(t, want, m.Count(), "step %d", i)
		require.Equal(t, len(ref), m.Len(), "step %d", i)
	}
}

func TestContext_CarriesModel(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	m := NewModel()
	ctx := WithModel(context.Background(), m)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, m, got)
}
